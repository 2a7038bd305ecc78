// Package client talks to the workout tracker HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"workouttracker/app/internal/workoutform"
)

// ErrUnauthorized is returned when the API rejects the session token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d: %s", e.Status, e.Message)
}

type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MuscleGroup string `json:"muscleGroup"`
}

type WorkoutExercise struct {
	ExerciseID string    `json:"exerciseId"`
	Sets       int       `json:"sets"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Comments   string    `json:"comments"`
	Exercise   *Exercise `json:"exercise"`
}

type WorkoutPlan struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	ScheduledAt      time.Time         `json:"scheduledAt"`
	UserID           string            `json:"userId"`
	CreatedAt        time.Time         `json:"createdAt"`
	WorkoutExercises []WorkoutExercise `json:"workoutExercises"`
}

// Client calls the API with an optional bearer session token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:8080).
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// HasToken reports whether a session token is configured.
func (c *Client) HasToken() bool { return c.token != "" }

func (c *Client) ListExercises(ctx context.Context) ([]Exercise, error) {
	var out []Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListWorkouts(ctx context.Context) ([]WorkoutPlan, error) {
	var out []WorkoutPlan
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWorkout posts payload once; it never retries.
func (c *Client) CreateWorkout(ctx context.Context, payload workoutform.Payload) (*WorkoutPlan, error) {
	var out WorkoutPlan
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(data, &apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
