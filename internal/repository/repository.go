package repository

import (
	"context"
	"workouttracker/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository gives read access to the exercise catalog.
// Upsert is only used by the seeding tool.
type ExerciseRepository interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	// GetByIDs returns the exercises that exist among ids, in no particular order.
	// Unknown ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Exercise, error)
	Upsert(ctx context.Context, exercise *domain.Exercise) error
}

// WorkoutRepository persists workout plans together with their entries.
type WorkoutRepository interface {
	// Create stores the plan and all of its entries as one unit and sets
	// plan.ID and plan.CreatedAt.
	Create(ctx context.Context, plan *domain.WorkoutPlan) error
	// ListByOwner returns the owner's plans ordered by scheduledAt descending,
	// most recently created first on ties.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error)
}

// UserRepository stores accounts created through OAuth sign-in.
type UserRepository interface {
	// UpsertByProvider creates the user on first sign-in and refreshes the profile
	// fields afterwards. user.ID is set on return.
	UpsertByProvider(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
