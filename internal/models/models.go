// package models defines the data model for the employee roster service
package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Well known levels offered by the clients. Levels are not restricted to these values.
var Levels = []string{"Intern", "Junior", "Senior"}

// Record is one employee entry.
//
// ID is assigned by the store on insert and never changes afterwards.
type Record struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Level    string `json:"level"`
}

// Fields returns the mutable part of the record.
func (r Record) Fields() RecordFields {
	return RecordFields{Name: r.Name, Position: r.Position, Level: r.Level}
}

// RecordFields holds the three fields written by create, replace and import.
//
// Updates always rewrite all three; an absent field is stored as empty.
type RecordFields struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Level    string `json:"level" validate:"required"`
}

// WithID builds a [Record] from the fields and a store-assigned id.
func (f RecordFields) WithID(id string) Record {
	return Record{ID: id, Name: f.Name, Position: f.Position, Level: f.Level}
}

// Validate reports every missing field.
func (f RecordFields) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
}

// BulkDeleteRequest is the body of a bulk delete call.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// Validate requires the ids list to be present. An empty list is allowed.
func (b BulkDeleteRequest) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("ids is required")
	}
	return nil
}

// InsertResult acknowledges a single insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult acknowledges a replace. Zero matches is not an error.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult acknowledges a delete. Deleting an unknown id yields zero, not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// BulkDeleteResult extends [DeleteResult] with the ids skipped because they were malformed.
type BulkDeleteResult struct {
	DeleteResult
	SkippedIDs []string `json:"skippedIds"`
}

// RecordStore defines the persistence operations for records.
//
// Implementations receive ids that already passed ParseID and report raw backend errors;
// error translation happens in the gateway wrapping them.
type RecordStore interface {
	// ParseID reports whether id is well formed for this backend.
	ParseID(id string) error
	// List returns the whole collection in insertion order.
	List(ctx context.Context) ([]Record, error)
	// Get returns the record and whether it exists.
	Get(ctx context.Context, id string) (*Record, bool, error)
	// Create inserts one record and returns its id.
	Create(ctx context.Context, fields RecordFields) (string, error)
	// Replace rewrites all three fields of the record.
	Replace(ctx context.Context, id string, fields RecordFields) (UpdateResult, error)
	// Delete removes one record and returns the number removed.
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteMany removes every listed record and returns the number removed.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// InsertMany inserts a batch and returns it with assigned ids.
	InsertMany(ctx context.Context, batch []RecordFields) ([]Record, error)
	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// BulkDeleteResponse is the body of a successful bulk delete.
type BulkDeleteResponse struct {
	Message string            `json:"message"`
	Result  *BulkDeleteResult `json:"result"`
}

// ImportResponse is the body of a successful spreadsheet upload. Records holds the inserted rows with their ids.
type ImportResponse struct {
	Message       string   `json:"message"`
	InsertedCount int      `json:"insertedCount"`
	Records       []Record `json:"records"`
}
