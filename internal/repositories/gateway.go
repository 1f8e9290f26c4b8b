package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// GatewayOpts configures a [Gateway].
type GatewayOpts struct {
	StrictBulkDelete bool        // Reject a whole bulk delete when any id is malformed
	Logger           *log.Logger // Defaults to [shared.NewLogger]
}

// Gateway translates record operations into [models.RecordStore] calls.
//
// Every id is parsed before the store sees it, and every backend failure comes back wrapping
// [shared.ErrStore] unless it already belongs to the record taxonomy.
type Gateway struct {
	store  models.RecordStore
	strict bool
	logger *log.Logger
}

// NewGateway wraps store with id parsing and error translation.
func NewGateway(store models.RecordStore, opts GatewayOpts) *Gateway {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Gateway{
		store:  store,
		strict: opts.StrictBulkDelete,
		logger: shared.WithLogger(opts.Logger, "component", "gateway"),
	}
}

// List returns the entire collection. An empty collection is an empty, non-nil slice.
func (g *Gateway) List(ctx context.Context) ([]models.Record, error) {
	records, err := g.store.List(ctx)
	if err != nil {
		return nil, translate("list records", err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// Get fetches one record, failing with [shared.ErrInvalidID] or [shared.ErrRecordNotFound].
func (g *Gateway) Get(ctx context.Context, id string) (*models.Record, error) {
	if err := g.parse(id); err != nil {
		return nil, err
	}

	record, found, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, translate("get record", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}
	return record, nil
}

// Create inserts a record with exactly the three fields.
func (g *Gateway) Create(ctx context.Context, fields models.RecordFields) (*models.InsertResult, error) {
	id, err := g.store.Create(ctx, fields)
	if err != nil {
		return nil, translate("create record", err)
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Replace rewrites all three fields. An unknown id matches nothing and is not an error.
func (g *Gateway) Replace(ctx context.Context, id string, fields models.RecordFields) (*models.UpdateResult, error) {
	if err := g.parse(id); err != nil {
		return nil, err
	}

	result, err := g.store.Replace(ctx, id, fields)
	if err != nil {
		return nil, translate("replace record", err)
	}
	result.Acknowledged = true
	return &result, nil
}

// Delete removes one record. An unknown id deletes nothing and is not an error.
func (g *Gateway) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := g.parse(id); err != nil {
		return nil, err
	}

	n, err := g.store.Delete(ctx, id)
	if err != nil {
		return nil, translate("delete record", err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// DeleteMany removes every listed record.
//
// Malformed ids are skipped and reported, or in strict mode fail the whole batch before anything is deleted.
func (g *Gateway) DeleteMany(ctx context.Context, ids []string) (*models.BulkDeleteResult, error) {
	valid := make([]string, 0, len(ids))
	skipped := []string{}

	for _, id := range ids {
		if err := g.parse(id); err != nil {
			if g.strict {
				return nil, err
			}
			skipped = append(skipped, id)
			continue
		}
		valid = append(valid, id)
	}

	if len(skipped) > 0 {
		g.logger.Warn("skipping malformed ids in bulk delete", "count", len(skipped))
	}

	result := &models.BulkDeleteResult{
		DeleteResult: models.DeleteResult{Acknowledged: true},
		SkippedIDs:   skipped,
	}
	if len(valid) == 0 {
		return result, nil
	}

	n, err := g.store.DeleteMany(ctx, valid)
	if err != nil {
		return nil, translate("bulk delete records", err)
	}
	result.DeletedCount = n
	return result, nil
}

// InsertMany inserts a batch and returns the records as stored. An empty batch inserts nothing.
func (g *Gateway) InsertMany(ctx context.Context, batch []models.RecordFields) ([]models.Record, error) {
	if len(batch) == 0 {
		return []models.Record{}, nil
	}

	records, err := g.store.InsertMany(ctx, batch)
	if err != nil {
		return nil, translate("insert records", err)
	}
	return records, nil
}

// Close releases the underlying store.
func (g *Gateway) Close(ctx context.Context) error {
	return g.store.Close(ctx)
}

func (g *Gateway) parse(id string) error {
	if err := g.store.ParseID(id); err != nil {
		return fmt.Errorf("%w: %q", shared.ErrInvalidID, id)
	}
	return nil
}

func translate(op string, err error) error {
	for _, known := range []error{shared.ErrInvalidID, shared.ErrRecordNotFound, shared.ErrValidation, shared.ErrStore} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: failed to %s: %v", shared.ErrStore, op, err)
}
