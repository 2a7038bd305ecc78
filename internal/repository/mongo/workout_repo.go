package mongo

import (
	"context"
	"errors"
	"time"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
// Entries live inside the plan document, so a plan and its entries are
// written by one InsertOne and can never be half-created.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a plan with all of its entries.
func (r *mongoWorkoutRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" || len(plan.Entries) == 0 {
		return errors.Join(repository.ErrInvalidInput, errors.New("workout requires ownerId, name and at least one entry"))
	}

	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.ScheduledAt = plan.ScheduledAt.UTC()
	for i := range plan.Entries {
		plan.Entries[i].Position = i
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		plan.ID = primitive.NilObjectID
		return err
	}
	if _, ok := result.InsertedID.(primitive.ObjectID); !ok {
		return errors.New("failed to convert inserted workout ID")
	}
	return nil
}

// ListByOwner retrieves the owner's plans, latest schedule first.
func (r *mongoWorkoutRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	filter := bson.M{"ownerId": ownerID}
	// ObjectIDs grow with insertion time, so _id desc breaks ties by creation order.
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.WorkoutPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Serves ListByOwner's filter and sort in one index scan
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "scheduledAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
