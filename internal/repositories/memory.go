package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/google/uuid"
)

// MemoryRecordRepository implements [models.RecordStore] in process memory.
//
// Records keep insertion order. Contents are lost when the process exits.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records []models.Record
}

// NewMemoryRecordRepository creates an empty [MemoryRecordRepository].
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{}
}

// ParseID accepts uuid strings, matching the SQLite backend.
func (r *MemoryRecordRepository) ParseID(id string) error {
	_, err := uuid.Parse(id)
	return err
}

func (r *MemoryRecordRepository) List(context.Context) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records), nil
}

func (r *MemoryRecordRepository) Get(_ context.Context, id string) (*models.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.index(id)
	if idx < 0 {
		return nil, false, nil
	}
	record := r.records[idx]
	return &record, true, nil
}

func (r *MemoryRecordRepository) Create(_ context.Context, fields models.RecordFields) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := fields.WithID(shared.GenerateID())
	r.records = append(r.records, record)
	return record.ID, nil
}

func (r *MemoryRecordRepository) Replace(_ context.Context, id string, fields models.RecordFields) (models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(id)
	if idx < 0 {
		return models.UpdateResult{}, nil
	}

	result := models.UpdateResult{MatchedCount: 1}
	if r.records[idx].Fields() != fields {
		r.records[idx] = fields.WithID(id)
		result.ModifiedCount = 1
	}
	return result, nil
}

func (r *MemoryRecordRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.DeleteMany(ctx, []string{id})
}

func (r *MemoryRecordRepository) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.records)
	r.records = slices.DeleteFunc(r.records, func(rec models.Record) bool {
		return slices.Contains(ids, rec.ID)
	})
	return int64(before - len(r.records)), nil
}

func (r *MemoryRecordRepository) InsertMany(_ context.Context, batch []models.RecordFields) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := make([]models.Record, 0, len(batch))
	for _, fields := range batch {
		inserted = append(inserted, fields.WithID(shared.GenerateID()))
	}
	r.records = append(r.records, inserted...)
	return slices.Clone(inserted), nil
}

func (r *MemoryRecordRepository) Close(context.Context) error { return nil }

func (r *MemoryRecordRepository) index(id string) int {
	return slices.IndexFunc(r.records, func(rec models.Record) bool { return rec.ID == id })
}
