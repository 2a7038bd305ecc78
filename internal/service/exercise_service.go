package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/repository"
)

// --- Error Definitions ---

// ErrValidationFailed marks input rejected by a service before reaching storage.
var ErrValidationFailed = errors.New("validation failed")

// --- Service Interface ---
type ExerciseService interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	// ImportCatalog upserts catalog entries by id and returns how many were written.
	ImportCatalog(ctx context.Context, exercises []domain.Exercise) (int, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// ListExercises returns the full catalog. An empty catalog is an empty slice, not nil.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, nil
}

// ImportCatalog validates every entry first so a bad file writes nothing.
func (s *exerciseService) ImportCatalog(ctx context.Context, exercises []domain.Exercise) (int, error) {
	seen := make(map[string]bool, len(exercises))
	for i, ex := range exercises {
		if strings.TrimSpace(ex.ID) == "" || strings.TrimSpace(ex.Name) == "" {
			return 0, fmt.Errorf("%w: entry %d needs an id and a name", ErrValidationFailed, i+1)
		}
		if seen[ex.ID] {
			return 0, fmt.Errorf("%w: duplicate exercise id %q", ErrValidationFailed, ex.ID)
		}
		seen[ex.ID] = true
	}

	written := 0
	for i := range exercises {
		if err := s.exerciseRepo.Upsert(ctx, &exercises[i]); err != nil {
			return written, fmt.Errorf("upsert exercise %q: %w", exercises[i].ID, err)
		}
		written++
	}
	return written, nil
}
