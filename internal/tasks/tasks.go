package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/services"
	"github.com/desertthunder/roster/internal/shared"
)

// FileImportResult is the outcome of uploading one spreadsheet.
type FileImportResult struct {
	Path    string          // File as given by the caller
	Records []models.Record // Records the server inserted
	Success bool
	Error   error
}

// BatchImportResult contains all data from a batch import.
type BatchImportResult struct {
	TotalFiles    int
	Succeeded     int
	Failed        int
	InsertedCount int                // Sum of records inserted across files
	Results       []FileImportResult // One entry per path, in input order
}

// ExportResult describes a written export.
type ExportResult struct {
	Path   string
	Format formatter.Format
	Count  int
}

// RecordEngine implements the batch operations over a [services.RecordService].
type RecordEngine struct {
	svc services.RecordService
}

// NewRecordEngine creates a new RecordEngine backed by svc.
func NewRecordEngine(svc services.RecordService) *RecordEngine {
	return &RecordEngine{svc: svc}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *RecordEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Export lists the whole collection and writes it to path in the given format.
//
// An empty path writes records{ext} in the working directory.
func (e *RecordEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, format formatter.Format, path string) (*ExportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: record service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(prog, fetchRecordsUpdate())
	records, err := e.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	if path == "" {
		path = "records" + format.Extension()
	}

	e.sendProgress(prog, writeExportUpdate(len(records), path))
	written, err := formatter.WriteExport(records, format, path)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Path: written, Format: format, Count: len(records)}, nil
}
