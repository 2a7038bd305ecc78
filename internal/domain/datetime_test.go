package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	tests := []struct {
		name    string
		in      string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339 utc", in: "2024-01-01T10:00:00Z", want: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{name: "rfc3339 offset ignores loc", in: "2024-01-01T10:00:00+02:00", loc: berlin, want: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
		{name: "datetime-local in loc", in: "2024-01-01T10:00", loc: berlin, want: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{name: "datetime-local nil loc is utc", in: "2024-01-01T10:00:30", want: time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)},
		{name: "surrounding spaces", in: "  2024-01-01 10:00 ", want: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{name: "empty", in: "", wantErr: true},
		{name: "date only", in: "2024-01-01", wantErr: true},
		{name: "garbage", in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.in, tt.loc)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateTime) {
					t.Fatalf("expected ErrInvalidDateTime, got %v (time %v)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorkoutPlanExerciseIDs(t *testing.T) {
	plan := WorkoutPlan{Entries: []WorkoutExerciseEntry{
		{ExerciseID: "squat-1"}, {ExerciseID: "plank-1"}, {ExerciseID: "squat-1"},
	}}
	got := plan.ExerciseIDs()
	if len(got) != 2 || got[0] != "squat-1" || got[1] != "plank-1" {
		t.Errorf("ExerciseIDs() = %v, want [squat-1 plank-1]", got)
	}
}
