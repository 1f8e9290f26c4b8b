package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// Inserter stores a decoded batch. [repositories.Gateway] satisfies it.
type Inserter interface {
	InsertMany(ctx context.Context, batch []models.RecordFields) ([]models.Record, error)
}

// Pipeline decodes uploaded spreadsheets and bulk inserts their rows.
type Pipeline struct {
	store  Inserter
	logger *log.Logger
}

// NewPipeline creates a [Pipeline] writing to store.
func NewPipeline(store Inserter, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Pipeline{store: store, logger: shared.WithLogger(logger, "component", "importer")}
}

// Import reads the whole upload, decodes it and inserts every row in one batch.
//
// Decode failures insert nothing. The returned records carry their assigned ids.
func (p *Pipeline) Import(ctx context.Context, r io.Reader, filename string) ([]models.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", shared.ErrDecode, err)
	}

	batch, err := Decode(data, filename)
	if err != nil {
		p.logger.Error("failed to decode spreadsheet", "file", filename, "format", Detect(data, filename), "error", err)
		return nil, err
	}

	p.logger.Debug("decoded spreadsheet", "file", filename, "rows", len(batch))

	records, err := p.store.InsertMany(ctx, batch)
	if err != nil {
		return nil, err
	}

	p.logger.Info("imported records", "file", filename, "count", len(records))
	return records, nil
}
