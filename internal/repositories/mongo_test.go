package repositories

import (
	"context"
	"testing"

	"github.com/desertthunder/roster/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRecordRepository(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ParseID", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)

		if err := repo.ParseID(primitive.NewObjectID().Hex()); err != nil {
			mt.Errorf("expected valid ObjectID, got %v", err)
		}
		if err := repo.ParseID("123"); err == nil {
			mt.Error("expected short id to be rejected")
		}
	})

	mt.Run("List", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first, second := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Ada"}, {Key: "position", Value: "Engineer"}, {Key: "level", Value: "Senior"}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Grace"}},
		))

		records, err := repo.List(ctx)
		if err != nil {
			mt.Fatalf("failed to list: %v", err)
		}
		if len(records) != 2 {
			mt.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != first.Hex() || records[0].Level != "Senior" {
			mt.Errorf("unexpected first record %+v", records[0])
		}
		if records[1].Position != "" {
			mt.Errorf("absent fields should decode empty, got %+v", records[1])
		}
	})

	mt.Run("List Renders Non-String Fields", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: int32(42)}, {Key: "position", Value: 2.5}, {Key: "level", Value: int64(3)}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Ada"}, {Key: "position", Value: true}, {Key: "level", Value: nil}},
		))

		records, err := repo.List(ctx)
		if err != nil {
			mt.Fatalf("numeric cells should not fail the listing: %v", err)
		}
		if len(records) != 2 {
			mt.Fatalf("expected 2 records, got %d", len(records))
		}

		want := models.RecordFields{Name: "42", Position: "2.5", Level: "3"}
		if records[0].Fields() != want {
			mt.Errorf("expected %+v, got %+v", want, records[0].Fields())
		}
		if records[1].Position != "true" || records[1].Level != "" {
			mt.Errorf("expected bool as text and null as empty, got %+v", records[1])
		}
	})

	mt.Run("Get Missing", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, found, err := repo.Get(ctx, primitive.NewObjectID().Hex())
		if err != nil || found {
			mt.Errorf("expected not found without error, got found=%v err=%v", found, err)
		}
	})

	mt.Run("Create", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(ctx, models.RecordFields{Name: "Ada"})
		if err != nil {
			mt.Fatalf("failed to create: %v", err)
		}
		if err := repo.ParseID(id); err != nil {
			mt.Errorf("expected ObjectID hex, got %q", id)
		}
	})

	mt.Run("Replace Counts", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		res, err := repo.Replace(ctx, primitive.NewObjectID().Hex(), models.RecordFields{Name: "Ada"})
		if err != nil {
			mt.Fatalf("failed to replace: %v", err)
		}
		if res.MatchedCount != 1 || res.ModifiedCount != 0 {
			mt.Errorf("expected 1/0, got %d/%d", res.MatchedCount, res.ModifiedCount)
		}
	})

	mt.Run("DeleteMany", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		n, err := repo.DeleteMany(ctx, []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()})
		if err != nil {
			mt.Fatalf("failed to delete: %v", err)
		}
		if n != 2 {
			mt.Errorf("expected 2 deletions, got %d", n)
		}
	})

	mt.Run("InsertMany Failure", func(mt *mtest.T) {
		repo := NewMongoRecordRepository(nil, mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
		}))

		if _, err := repo.InsertMany(ctx, []models.RecordFields{{Name: "Ada"}}); err == nil {
			mt.Error("expected insert failure")
		}
	})
}
