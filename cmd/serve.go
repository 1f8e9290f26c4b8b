package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/roster/internal/importer"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve opens the record store and runs the API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	if host := cmd.String("host"); host != "" {
		cfg.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Server.Port = port
	}
	if driver := cmd.String("driver"); driver != "" {
		cfg.Database.Driver = driver
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}

	gateway := repositories.NewGateway(store, repositories.GatewayOpts{
		StrictBulkDelete: cfg.Records.StrictBulkDelete,
		Logger:           r.logger,
	})
	defer gateway.Close(context.Background())

	pipeline := importer.NewPipeline(gateway, r.logger)
	srv := server.New(&cfg, gateway, pipeline, r.logger)

	r.logger.Info("record store ready", "driver", cfg.Database.Driver)
	return srv.Run(ctx)
}
