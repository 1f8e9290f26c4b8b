// package services defines the client side of the record API
package services

import (
	"context"
	"io"

	"github.com/desertthunder/roster/internal/models"
)

// RecordService defines the record operations a client can issue against the API.
type RecordService interface {
	// List fetches the whole collection.
	List(ctx context.Context) ([]models.Record, error)

	// Get fetches one record by id.
	Get(ctx context.Context, id string) (*models.Record, error)

	// Create inserts a record and returns the insert acknowledgement.
	Create(ctx context.Context, fields models.RecordFields) (*models.InsertResult, error)

	// Update replaces all three fields of a record.
	Update(ctx context.Context, id string, fields models.RecordFields) (*models.UpdateResult, error)

	// Delete removes one record.
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)

	// BulkDelete removes every listed record.
	BulkDelete(ctx context.Context, ids []string) (*models.BulkDeleteResult, error)

	// Import uploads a spreadsheet and returns the inserted records.
	Import(ctx context.Context, filename string, r io.Reader) ([]models.Record, error)
}
