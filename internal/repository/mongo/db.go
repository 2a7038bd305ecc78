package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB connects to MongoDB and verifies the primary is reachable.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The driver connects lazily; ping so a bad URI fails at startup, not on first request.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes for every collection used by the app.
// Failures are logged, not fatal: the app still works without them, only slower.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure := map[string]func(context.Context, *mongo.Collection) error{
		exerciseCollectionName: EnsureExerciseIndexes,
		workoutCollectionName:  EnsureWorkoutIndexes,
		userCollectionName:     EnsureUserIndexes,
	}
	for name, fn := range ensure {
		if err := fn(ctx, db.Collection(name)); err != nil {
			log.Printf("WARN: Failed to create indexes for collection %s: %v", name, err)
		}
	}
}
