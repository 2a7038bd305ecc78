// internal/domain/exercise.go
package domain

import "time"

// Exercise is a catalog entry that workout entries point at.
// The catalog is seeded out of band and is read-only for the workout flow.
type Exercise struct {
	ID          string    `bson:"_id" json:"id"` // Stable slug, e.g. "squat-1"
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description"`
	Category    string    `bson:"category,omitempty" json:"category"`       // e.g. "strength", "core"
	MuscleGroup string    `bson:"muscleGroup,omitempty" json:"muscleGroup"` // e.g. "legs", "chest"
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
