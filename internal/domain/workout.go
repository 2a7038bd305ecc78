package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a named, scheduled set of exercise entries owned by one user.
// Entries are embedded so the plan and its children are written in a single insert.
type WorkoutPlan struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID     `bson:"ownerId" json:"userId"` // Always taken from the session
	Name        string                 `bson:"name" json:"name"`
	ScheduledAt time.Time              `bson:"scheduledAt" json:"scheduledAt"`
	Entries     []WorkoutExerciseEntry `bson:"entries" json:"workoutExercises"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}

// WorkoutExerciseEntry is one exercise prescribed within a plan.
type WorkoutExerciseEntry struct {
	Position   int     `bson:"position" json:"position"`
	ExerciseID string  `bson:"exerciseId" json:"exerciseId"`
	Sets       int     `bson:"sets" json:"sets"`
	Reps       int     `bson:"reps" json:"reps"`
	Weight     float64 `bson:"weight" json:"weight"`
	Comments   string  `bson:"comments,omitempty" json:"comments,omitempty"`
}

// ExerciseIDs returns the distinct exercise ids referenced by the plan, in entry order.
func (p *WorkoutPlan) ExerciseIDs() []string {
	seen := make(map[string]struct{}, len(p.Entries))
	ids := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		if _, ok := seen[e.ExerciseID]; ok {
			continue
		}
		seen[e.ExerciseID] = struct{}{}
		ids = append(ids, e.ExerciseID)
	}
	return ids
}
