// Package memory is an in-process persistence engine with the same semantics as
// the MongoDB repositories. It backs the "memory" database driver and the tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu        sync.RWMutex
	exercises map[string]domain.Exercise
	workouts  []storedWorkout
	users     map[primitive.ObjectID]domain.User
	seq       int64
	now       func() time.Time
}

type storedWorkout struct {
	seq  int64
	plan domain.WorkoutPlan
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		exercises: make(map[string]domain.Exercise),
		users:     make(map[primitive.ObjectID]domain.User),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Exercises returns the store as a repository.ExerciseRepository.
func (s *Store) Exercises() repository.ExerciseRepository { return exerciseRepo{s} }

// Workouts returns the store as a repository.WorkoutRepository.
func (s *Store) Workouts() repository.WorkoutRepository { return workoutRepo{s} }

// Users returns the store as a repository.UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

type exerciseRepo struct{ s *Store }

func (r exerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Exercise, 0, len(r.s.exercises))
	for _, ex := range r.s.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r exerciseRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Exercise{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if ex, ok := r.s.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r exerciseRepo) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if exercise.ID == "" || exercise.Name == "" {
		return errors.New("exercise id and name are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *exercise
	if prev, ok := r.s.exercises[exercise.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = r.s.now()
	}
	r.s.exercises[exercise.ID] = stored
	return nil
}

type workoutRepo struct{ s *Store }

func (r workoutRepo) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" || len(plan.Entries) == 0 {
		return errors.Join(repository.ErrInvalidInput, errors.New("workout requires ownerId, name and at least one entry"))
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = r.s.now()
	plan.ScheduledAt = plan.ScheduledAt.UTC()
	for i := range plan.Entries {
		plan.Entries[i].Position = i
	}

	r.s.seq++
	r.s.workouts = append(r.s.workouts, storedWorkout{seq: r.s.seq, plan: clonePlan(*plan)})
	return nil
}

func (r workoutRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	matched := make([]storedWorkout, 0)
	for _, w := range r.s.workouts {
		if w.plan.OwnerID == ownerID {
			matched = append(matched, w)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.plan.ScheduledAt.Equal(b.plan.ScheduledAt) {
			return a.plan.ScheduledAt.After(b.plan.ScheduledAt)
		}
		return a.seq > b.seq
	})

	plans := make([]domain.WorkoutPlan, len(matched))
	for i, w := range matched {
		plans[i] = clonePlan(w.plan)
	}
	return plans, nil
}

// clonePlan copies the entries slice so callers cannot mutate stored state.
func clonePlan(p domain.WorkoutPlan) domain.WorkoutPlan {
	p.Entries = append([]domain.WorkoutExerciseEntry(nil), p.Entries...)
	return p
}

type userRepo struct{ s *Store }

func (r userRepo) UpsertByProvider(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user.Provider == "" || user.Subject == "" {
		return errors.New("user provider and subject are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for id, existing := range r.s.users {
		if existing.Provider == user.Provider && existing.Subject == user.Subject {
			existing.Name = user.Name
			existing.Email = user.Email
			existing.Image = user.Image
			existing.UpdatedAt = now
			r.s.users[id] = existing
			*user = existing
			return nil
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}
