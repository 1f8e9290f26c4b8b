package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Wrote %s\n", configPath)
	return nil
}

// SetupDatabase creates the configured store and runs migrations, writing a config file first when none exists.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using current settings", "error", err)
		} else if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	}

	r.logger.Info("initializing record store", "driver", config.Database.Driver)

	store, err := repositories.Open(ctx, config.Database)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close(ctx)

	if _, err := store.List(ctx); err != nil {
		return fmt.Errorf("record store is not reachable: %w", err)
	}

	switch config.Database.Driver {
	case shared.DriverSQLite:
		r.logger.Infof("setup complete for database: %v", config.Database.Path)
	case shared.DriverMongo:
		r.logger.Infof("setup complete for collection: %v.%v", config.Database.Name, config.Database.Collection)
	default:
		r.logger.Warn("memory store selected; records will not outlive the server process")
	}
	return nil
}
