package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/roster/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recordDocument is the stored shape of a record. Empty fields are omitted from the document.
type recordDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name,omitempty"`
	Position string             `bson:"position,omitempty"`
	Level    string             `bson:"level,omitempty"`
}

func (d recordDocument) record() models.Record {
	return models.Record{ID: d.ID.Hex(), Name: d.Name, Position: d.Position, Level: d.Level}
}

func newDocument(fields models.RecordFields) recordDocument {
	return recordDocument{ID: primitive.NewObjectID(), Name: fields.Name, Position: fields.Position, Level: fields.Level}
}

// scannedDocument is the read shape. Spreadsheet imports may have stored numbers or booleans,
// so each field is decoded raw and rendered as text.
type scannedDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     bson.RawValue      `bson:"name"`
	Position bson.RawValue      `bson:"position"`
	Level    bson.RawValue      `bson:"level"`
}

func (d scannedDocument) record() models.Record {
	return models.Record{ID: d.ID.Hex(), Name: text(d.Name), Position: text(d.Position), Level: text(d.Level)}
}

// text renders a scalar BSON value the way it reads in a spreadsheet cell. Absent and null values are empty.
func text(v bson.RawValue) string {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return ""
	case bsontype.String:
		return v.StringValue()
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case bsontype.Boolean:
		return strconv.FormatBool(v.Boolean())
	case bsontype.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// MongoRecordRepository implements [models.RecordStore] on a MongoDB collection.
type MongoRecordRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoRecordRepository creates a repository over coll. The client may be nil when its lifetime is managed elsewhere.
func NewMongoRecordRepository(client *mongo.Client, coll *mongo.Collection) *MongoRecordRepository {
	return &MongoRecordRepository{client: client, coll: coll}
}

// ParseID accepts 24 character ObjectID hex strings.
func (r *MongoRecordRepository) ParseID(id string) error {
	_, err := primitive.ObjectIDFromHex(id)
	return err
}

// List returns every document in natural order.
func (r *MongoRecordRepository) List(ctx context.Context) ([]models.Record, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []scannedDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.record())
	}
	return records, nil
}

// Get finds one document by ObjectID.
func (r *MongoRecordRepository) Get(ctx context.Context, id string) (*models.Record, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, err
	}

	var doc scannedDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find record: %w", err)
	}

	record := doc.record()
	return &record, true, nil
}

// Create inserts one document with a client generated ObjectID.
func (r *MongoRecordRepository) Create(ctx context.Context, fields models.RecordFields) (string, error) {
	doc := newDocument(fields)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}
	return doc.ID.Hex(), nil
}

// Replace sets all three fields; empty fields are unset so they stay absent.
func (r *MongoRecordRepository) Replace(ctx context.Context, id string, fields models.RecordFields) (models.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	set, unset := bson.D{}, bson.D{}
	for _, kv := range []struct{ key, value string }{
		{"name", fields.Name},
		{"position", fields.Position},
		{"level", fields.Level},
	} {
		if kv.value == "" {
			unset = append(unset, bson.E{Key: kv.key, Value: ""})
		} else {
			set = append(set, bson.E{Key: kv.key, Value: kv.value})
		}
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update record: %w", err)
	}

	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete removes one document by ObjectID.
func (r *MongoRecordRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete record: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every listed document with a single $in filter.
func (r *MongoRecordRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, err
		}
		oids = append(oids, oid)
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return res.DeletedCount, nil
}

// InsertMany inserts the batch with one ordered insertMany call.
func (r *MongoRecordRepository) InsertMany(ctx context.Context, batch []models.RecordFields) ([]models.Record, error) {
	docs := make([]any, 0, len(batch))
	records := make([]models.Record, 0, len(batch))

	for _, fields := range batch {
		doc := newDocument(fields)
		docs = append(docs, doc)
		records = append(records, doc.record())
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert records: %w", err)
	}
	return records, nil
}

// Close disconnects the client when the repository owns it.
func (r *MongoRecordRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
