// Package database opens the repositories for the configured driver.
package database

import (
	"context"
	"fmt"
	"log"
	"time"
	"workouttracker/app/internal/config"
	"workouttracker/app/internal/repository"
	"workouttracker/app/internal/repository/memory"
	"workouttracker/app/internal/repository/mongo"
)

// Repositories groups every repository the app uses.
type Repositories struct {
	Exercises repository.ExerciseRepository
	Workouts  repository.WorkoutRepository
	Users     repository.UserRepository

	close func() error
}

// Close releases the underlying connection. It is a no-op for the memory driver.
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open connects to the configured store. For MongoDB it also ensures indexes.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Println("INFO: Using in-memory store; data is lost on exit.")
		return &Repositories{
			Exercises: store.Exercises(),
			Workouts:  store.Workouts(),
			Users:     store.Users(),
		}, nil

	case config.DriverMongo, "":
		client, err := mongo.ConnectDB(ctx, cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		mongo.EnsureIndexes(indexCtx, db)

		return &Repositories{
			Exercises: mongo.NewMongoExerciseRepository(db),
			Workouts:  mongo.NewMongoWorkoutRepository(db),
			Users:     mongo.NewMongoUserRepository(db),
			close: func() error {
				log.Println("Disconnecting MongoDB...")
				return mongo.DisconnectDB(client)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q (want %q or %q)", cfg.Driver, config.DriverMongo, config.DriverMemory)
	}
}
