package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrUnknownExercise is a validation failure: an entry references an exercise
	// that is not in the catalog.
	ErrUnknownExercise = fmt.Errorf("%w: unknown exercise", ErrValidationFailed)
	ErrMissingOwner    = errors.New("workout owner is required")
)

// CreateWorkoutInput is everything a caller may choose about a new plan.
// The owner is deliberately absent: it comes from the session.
type CreateWorkoutInput struct {
	Name        string
	ScheduledAt time.Time
	Entries     []EntryInput
}

// EntryInput is one requested exercise entry.
type EntryInput struct {
	ExerciseID string
	Sets       int
	Reps       int
	Weight     float64
	Comments   string
}

// WorkoutDetails is a plan with each entry's exercise resolved from the catalog.
type WorkoutDetails struct {
	domain.WorkoutPlan
	Entries []EntryDetails
}

// EntryDetails combines an entry with its exercise definition.
type EntryDetails struct {
	domain.WorkoutExerciseEntry
	Exercise *domain.Exercise
}

type WorkoutService interface {
	CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, input CreateWorkoutInput) (*WorkoutDetails, error)
	ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]WorkoutDetails, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateWorkout validates the input, checks that every referenced exercise exists
// and then stores the plan with all entries in one write. Nothing is written when
// any check fails.
func (s *workoutService) CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, input CreateWorkoutInput) (*WorkoutDetails, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		ScheduledAt: input.ScheduledAt,
		Entries:     make([]domain.WorkoutExerciseEntry, len(input.Entries)),
	}
	for i, e := range input.Entries {
		plan.Entries[i] = domain.WorkoutExerciseEntry{
			ExerciseID: strings.TrimSpace(e.ExerciseID),
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Comments:   e.Comments,
		}
	}

	catalog, err := s.resolveExercises(ctx, plan.ExerciseIDs())
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range plan.ExerciseIDs() {
		if _, ok := catalog[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExercise, strings.Join(missing, ", "))
	}

	if err := s.workoutRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	details := buildDetails(*plan, catalog)
	return &details, nil
}

// ListWorkouts returns the owner's plans, latest schedule first, with exercises resolved.
func (s *workoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]WorkoutDetails, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}

	plans, err := s.workoutRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	var ids []string
	seen := make(map[string]bool)
	for i := range plans {
		for _, id := range plans[i].ExerciseIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	catalog, err := s.resolveExercises(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]WorkoutDetails, len(plans))
	for i, p := range plans {
		result[i] = buildDetails(p, catalog)
	}
	return result, nil
}

func (s *workoutService) resolveExercises(ctx context.Context, ids []string) (map[string]domain.Exercise, error) {
	catalog := make(map[string]domain.Exercise, len(ids))
	if len(ids) == 0 {
		return catalog, nil
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}
	for _, ex := range exercises {
		catalog[ex.ID] = ex
	}
	return catalog, nil
}

func buildDetails(plan domain.WorkoutPlan, catalog map[string]domain.Exercise) WorkoutDetails {
	details := WorkoutDetails{
		WorkoutPlan: plan,
		Entries:     make([]EntryDetails, len(plan.Entries)),
	}
	for i, e := range plan.Entries {
		details.Entries[i] = EntryDetails{WorkoutExerciseEntry: e}
		if ex, ok := catalog[e.ExerciseID]; ok {
			details.Entries[i].Exercise = &ex
		} else {
			// The catalog is append-only, so this means data was edited by hand.
			log.Printf("WARN: workout %s references missing exercise %q", plan.ID.Hex(), e.ExerciseID)
		}
	}
	return details
}

func validateWorkoutInput(input CreateWorkoutInput) error {
	var problems []string
	if strings.TrimSpace(input.Name) == "" {
		problems = append(problems, "name is required")
	}
	if input.ScheduledAt.IsZero() {
		problems = append(problems, "scheduledAt is required")
	}
	if len(input.Entries) == 0 {
		problems = append(problems, "at least one exercise is required")
	}
	for i, e := range input.Entries {
		if strings.TrimSpace(e.ExerciseID) == "" {
			problems = append(problems, fmt.Sprintf("exercises[%d].id is required", i))
		}
		if e.Sets < 1 {
			problems = append(problems, fmt.Sprintf("exercises[%d].sets must be at least 1", i))
		}
		if e.Reps < 1 {
			problems = append(problems, fmt.Sprintf("exercises[%d].reps must be at least 1", i))
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			problems = append(problems, fmt.Sprintf("exercises[%d].weight must be non-negative", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}
