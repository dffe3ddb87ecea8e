package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medipred/internal/model"
	"medipred/pkg/pagination"
)

// PredictionRepo persists prediction records. Lookups return nil, nil when
// the record does not exist.
type PredictionRepo interface {
	Create(ctx context.Context, record *model.PredictionRecord) (string, error)
	ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error)
	GetByID(ctx context.Context, id string) (*model.PredictionRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)
	SummaryByOwner(ctx context.Context, ownerID string) ([]model.ConditionSummary, error)
}

type predictionRepo struct {
	collection *mongo.Collection
}

// NewPredictionRepo creates a MongoDB-backed prediction repository
func NewPredictionRepo(db *mongo.Database) PredictionRepo {
	return &predictionRepo{
		collection: db.Collection("predictions"),
	}
}

// EnsurePredictionIndexes creates the owner listing index
func EnsurePredictionIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("predictions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("userId_createdAt"),
	})
	return err
}

func (r *predictionRepo) Create(ctx context.Context, record *model.PredictionRecord) (string, error) {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = record.CreatedAt

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return record.ID, nil
}

func (r *predictionRepo) ListByOwner(ctx context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error) {
	filter := bson.M{"userId": ownerID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	records := []*model.PredictionRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *predictionRepo) GetByID(ctx context.Context, id string) (*model.PredictionRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil // Not an id this store could have issued
	}

	var record model.PredictionRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *predictionRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *predictionRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *predictionRepo) SummaryByOwner(ctx context.Context, ownerID string) ([]model.ConditionSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$predictionType",
			"total":          bson.M{"$sum": 1},
			"elevated":       bson.M{"$sum": bson.M{"$cond": bson.A{"$result.prediction", 1, 0}}},
			"lastAssessedAt": bson.M{"$max": "$createdAt"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []model.ConditionSummary{}
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
