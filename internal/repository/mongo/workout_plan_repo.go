package mongo

import (
	"context"
	"errors"
	"time"

	"hooplogs/workout-service/internal/domain"
	"hooplogs/workout-service/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository.
// Documents are keyed by user id (_id), one per user.
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new workout plan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Get retrieves the user's plan document.
func (r *mongoWorkoutPlanRepository) Get(ctx context.Context, userID string) (*domain.WorkoutPlanDocument, error) {
	var doc domain.WorkoutPlanDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Set replaces the user's document wholesale, creating it if absent.
func (r *mongoWorkoutPlanRepository) Set(ctx context.Context, doc *domain.WorkoutPlanDocument) error {
	if doc.UserID == "" {
		return errors.New("workout plan document requires a user id")
	}
	doc.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.UserID}, doc, opts)
	return err
}

// UpdateFields applies a partial $set update, creating the document if
// absent, and stamps updatedAt.
func (r *mongoWorkoutPlanRepository) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	if userID == "" {
		return errors.New("user id is required for update")
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Recency queries for maintenance jobs (stale plan cleanup).
			Keys:    bson.D{{Key: "updatedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "focusKey", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %s", collection.Name(), err)
	}
}
