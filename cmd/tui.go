package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive record browser against the configured API.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.client == nil {
		return fmt.Errorf("%w: record client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()
	shared.ConfigureLogger(fileLogger, r.config.Log)
	r.SetLogger(fileLogger)

	r.logger.Info("starting tui", "api", r.config.Client.BaseURL, "import_mode", r.config.Client.ImportMode)

	model := ui.NewModel(ctx, r.client, r.config.Client.ImportMode)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
