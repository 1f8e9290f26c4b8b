package repositories

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// failingStore accepts every id and fails every operation.
type failingStore struct {
	*MemoryRecordRepository
	calls int
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) ParseID(string) error { return nil }
func (f *failingStore) List(context.Context) ([]models.Record, error) {
	f.calls++
	return nil, errDiskFull
}
func (f *failingStore) DeleteMany(context.Context, []string) (int64, error) {
	f.calls++
	return 0, errDiskFull
}

func newTestGateway(t *testing.T, strict bool) (*Gateway, models.RecordStore) {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })
	store := NewSQLiteRecordRepository(db)
	return NewGateway(store, GatewayOpts{StrictBulkDelete: strict, Logger: shared.NewLogger(io.Discard)}), store
}

func TestGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		g, _ := newTestGateway(t, false)

		res, err := g.Create(ctx, ada)
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if !res.Acknowledged || res.InsertedID == "" {
			t.Fatalf("unexpected insert result %+v", res)
		}

		got, err := g.Get(ctx, res.InsertedID)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Fields() != ada {
			t.Errorf("expected %+v, got %+v", ada, got.Fields())
		}
	})

	t.Run("List Empty Is Not Nil", func(t *testing.T) {
		g, _ := newTestGateway(t, false)

		records, err := g.List(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", records)
		}
	})

	t.Run("Get Invalid And Missing", func(t *testing.T) {
		g, _ := newTestGateway(t, false)

		if _, err := g.Get(ctx, "not-an-id"); !errors.Is(err, shared.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}

		if _, err := g.Get(ctx, shared.GenerateID()); !errors.Is(err, shared.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("Unknown Ids Are No-ops", func(t *testing.T) {
		g, _ := newTestGateway(t, false)
		missing := shared.GenerateID()

		upd, err := g.Replace(ctx, missing, ada)
		if err != nil {
			t.Fatalf("replace of unknown id should not fail: %v", err)
		}
		if upd.MatchedCount != 0 || upd.ModifiedCount != 0 {
			t.Errorf("expected zero counts, got %+v", upd)
		}

		del, err := g.Delete(ctx, missing)
		if err != nil {
			t.Fatalf("delete of unknown id should not fail: %v", err)
		}
		if del.DeletedCount != 0 {
			t.Errorf("expected zero deletions, got %d", del.DeletedCount)
		}
	})

	t.Run("Malformed Ids Rejected Before Store", func(t *testing.T) {
		g, _ := newTestGateway(t, false)

		if _, err := g.Replace(ctx, "nope", ada); !errors.Is(err, shared.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID from replace, got %v", err)
		}
		if _, err := g.Delete(ctx, "nope"); !errors.Is(err, shared.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID from delete, got %v", err)
		}
	})

	t.Run("DeleteMany Skips Malformed", func(t *testing.T) {
		g, store := newTestGateway(t, false)

		a, _ := store.Create(ctx, ada)
		b, _ := store.Create(ctx, ada)
		keep, _ := store.Create(ctx, ada)

		res, err := g.DeleteMany(ctx, []string{a, "bad-id", b})
		if err != nil {
			t.Fatalf("failed to bulk delete: %v", err)
		}
		if res.DeletedCount != 2 {
			t.Errorf("expected 2 deletions, got %d", res.DeletedCount)
		}
		if len(res.SkippedIDs) != 1 || res.SkippedIDs[0] != "bad-id" {
			t.Errorf("expected bad-id to be skipped, got %v", res.SkippedIDs)
		}

		records, _ := g.List(ctx)
		if len(records) != 1 || records[0].ID != keep {
			t.Errorf("expected only %s to remain, got %+v", keep, records)
		}
	})

	t.Run("DeleteMany Strict", func(t *testing.T) {
		g, store := newTestGateway(t, true)

		a, _ := store.Create(ctx, ada)

		if _, err := g.DeleteMany(ctx, []string{a, "bad-id"}); !errors.Is(err, shared.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}

		records, _ := g.List(ctx)
		if len(records) != 1 {
			t.Errorf("strict mode must not delete anything, got %d remaining", len(records))
		}
	})

	t.Run("DeleteMany Nothing Valid Skips Store", func(t *testing.T) {
		fs := &failingStore{MemoryRecordRepository: NewMemoryRecordRepository()}
		g := NewGateway(fs, GatewayOpts{Logger: shared.NewLogger(io.Discard)})

		res, err := g.DeleteMany(ctx, []string{})
		if err != nil {
			t.Fatalf("empty bulk delete should succeed: %v", err)
		}
		if res.DeletedCount != 0 || res.SkippedIDs == nil {
			t.Errorf("unexpected result %+v", res)
		}
		if fs.calls != 0 {
			t.Errorf("store should not be called, got %d calls", fs.calls)
		}
	})

	t.Run("InsertMany Empty", func(t *testing.T) {
		g, _ := newTestGateway(t, false)

		records, err := g.InsertMany(ctx, nil)
		if err != nil {
			t.Fatalf("empty insert should succeed: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", records)
		}
	})

	t.Run("Store Errors Are Translated", func(t *testing.T) {
		fs := &failingStore{MemoryRecordRepository: NewMemoryRecordRepository()}
		g := NewGateway(fs, GatewayOpts{Logger: shared.NewLogger(io.Discard)})

		_, err := g.List(ctx)
		if !errors.Is(err, shared.ErrStore) {
			t.Errorf("expected ErrStore, got %v", err)
		}

		_, err = g.DeleteMany(ctx, []string{"x"})
		if !errors.Is(err, shared.ErrStore) {
			t.Errorf("expected ErrStore, got %v", err)
		}
	})
}
