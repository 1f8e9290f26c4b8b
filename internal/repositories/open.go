package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// Open connects the backend selected by cfg.Driver.
//
// SQLite databases are migrated before the store is returned.
func Open(ctx context.Context, cfg shared.DatabaseConfig) (models.RecordStore, error) {
	switch cfg.Driver {
	case shared.DriverSQLite:
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return nil, err
		}
		maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
		if cfg.Path == ":memory:" {
			maxOpen, maxIdle = 1, 1
		}
		shared.ConfigureDatabase(db, maxOpen, maxIdle)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLiteRecordRepository(db), nil

	case shared.DriverMongo:
		client, err := shared.NewMongoClient(ctx, cfg.URI)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.Name).Collection(cfg.Collection)
		return NewMongoRecordRepository(client, coll), nil

	case shared.DriverMemory:
		return NewMemoryRecordRepository(), nil

	default:
		return nil, fmt.Errorf("%w: unknown database driver %q", shared.ErrInvalidConfig, cfg.Driver)
	}
}
