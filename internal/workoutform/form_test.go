package workoutform

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
	"workouttracker/app/internal/domain"
)

var testCatalog = []domain.Exercise{
	{ID: "push-up-1", Name: "Push-up"},
	{ID: "squat-1", Name: "Squat"},
	{ID: "plank-1", Name: "Plank"},
}

func validDraft() Draft {
	return Draft{
		Name:        "Leg Day",
		ScheduledAt: "2024-01-01T10:00:00Z",
		Exercises:   []EntryDraft{{ExerciseID: "squat-1", Sets: 3, Reps: 10, Weight: 40}},
	}
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	v, errs := Validate(validDraft(), testCatalog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if v.Name != "Leg Day" || !v.ScheduledAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected draft: %+v", v)
	}
	if len(v.Exercises) != 1 || v.Exercises[0].Sets != 3 || v.Exercises[0].Reps != 10 {
		t.Errorf("unexpected entries: %+v", v.Exercises)
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
		kind   ErrorKind
	}{
		{"empty name", func(d *Draft) { d.Name = "" }, "name", RequiredField},
		{"blank name", func(d *Draft) { d.Name = "   " }, "name", RequiredField},
		{"empty scheduledAt", func(d *Draft) { d.ScheduledAt = "" }, "scheduledAt", RequiredField},
		{"bad scheduledAt", func(d *Draft) { d.ScheduledAt = "next tuesday" }, "scheduledAt", RangeError},
		{"no exercises", func(d *Draft) { d.Exercises = nil }, "exercises", RequiredField},
		{"missing exercise", func(d *Draft) { d.Exercises[0].ExerciseID = "" }, "exercises.0.exerciseId", RequiredField},
		{"unknown exercise", func(d *Draft) { d.Exercises[0].ExerciseID = "deadlift-1" }, "exercises.0.exerciseId", RequiredField},
		{"zero sets", func(d *Draft) { d.Exercises[0].Sets = 0 }, "exercises.0.sets", RangeError},
		{"fractional sets", func(d *Draft) { d.Exercises[0].Sets = 2.5 }, "exercises.0.sets", RangeError},
		{"NaN sets", func(d *Draft) { d.Exercises[0].Sets = math.NaN() }, "exercises.0.sets", RangeError},
		{"zero reps", func(d *Draft) { d.Exercises[0].Reps = 0 }, "exercises.0.reps", RangeError},
		{"fractional reps", func(d *Draft) { d.Exercises[0].Reps = 1.1 }, "exercises.0.reps", RangeError},
		{"negative weight", func(d *Draft) { d.Exercises[0].Weight = -0.5 }, "exercises.0.weight", RangeError},
		{"infinite weight", func(d *Draft) { d.Exercises[0].Weight = math.Inf(1) }, "exercises.0.weight", RangeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, errs := Validate(d, testCatalog)
			fe, ok := errs.Get(tt.field)
			if !ok {
				t.Fatalf("expected an error on %s, got %v", tt.field, errs)
			}
			if fe.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", fe.Kind, tt.kind)
			}
			if len(errs) != 1 {
				t.Errorf("expected only %s to fail, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateAcceptsZeroWeightAndAnyComments(t *testing.T) {
	d := validDraft()
	d.Exercises[0].Weight = 0
	d.Exercises[0].Comments = "slow eccentric, 3s down"
	if _, errs := Validate(d, testCatalog); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateReportsEveryFailure(t *testing.T) {
	d := Draft{
		Exercises: []EntryDraft{
			{ExerciseID: "squat-1", Sets: 0, Reps: 0, Weight: -1},
			{ExerciseID: "", Sets: 1, Reps: 1},
		},
	}
	_, errs := Validate(d, testCatalog)
	for _, field := range []string{
		"name", "scheduledAt",
		"exercises.0.sets", "exercises.0.reps", "exercises.0.weight",
		"exercises.1.exerciseId",
	} {
		if !errs.Has(field) {
			t.Errorf("missing error for %s", field)
		}
	}
	if len(errs) != 6 {
		t.Errorf("got %d errors, want 6: %v", len(errs), errs)
	}
}

func TestNewStartsWithDefaultRow(t *testing.T) {
	f := New(testCatalog)
	rows := f.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := EntryDraft{Sets: 1, Reps: 1, Weight: 0, Comments: ""}
	if rows[0].EntryDraft != want || rows[0].Key == "" {
		t.Errorf("default row = %+v", rows[0])
	}
	if errs := f.Errors(); len(errs) != 0 {
		t.Errorf("untouched form shows errors: %v", errs)
	}
}

func TestAppendThenRemoveLeavesRowsUnchanged(t *testing.T) {
	f := New(testCatalog)
	mustNoErr(t, f.SetExerciseID(0, "squat-1"))
	mustNoErr(t, f.SetSets(0, 5))
	f.Append()
	mustNoErr(t, f.SetExerciseID(1, "plank-1"))
	mustNoErr(t, f.SetComments(1, "60s"))
	before := f.Rows()

	added := f.Append()
	if added.Key == "" || added.Key == before[0].Key || added.Key == before[1].Key {
		t.Fatalf("appended row key not fresh: %q", added.Key)
	}
	mustNoErr(t, f.Remove(2))

	after := f.Rows()
	if len(after) != len(before) {
		t.Fatalf("got %d rows, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("row %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRemoveMiddleKeepsOtherRows(t *testing.T) {
	f := New(testCatalog)
	f.Append()
	f.Append()
	mustNoErr(t, f.SetExerciseID(0, "push-up-1"))
	mustNoErr(t, f.SetExerciseID(1, "squat-1"))
	mustNoErr(t, f.SetExerciseID(2, "plank-1"))
	before := f.Rows()

	mustNoErr(t, f.Remove(1))
	after := f.Rows()
	if len(after) != 2 || after[0] != before[0] || after[1] != before[2] {
		t.Errorf("rows after remove = %+v", after)
	}

	if err := f.Remove(5); !errors.Is(err, ErrRowIndex) {
		t.Errorf("expected ErrRowIndex, got %v", err)
	}
}

func TestLiveErrorsFollowEditedFields(t *testing.T) {
	f := New(testCatalog)
	mustNoErr(t, f.SetEntryField(0, FieldSets, "2.5"))
	errs := f.Errors()
	if len(errs) != 1 || !errs.Has("exercises.0.sets") {
		t.Fatalf("live errors = %v, want only exercises.0.sets", errs)
	}

	mustNoErr(t, f.SetEntryField(0, FieldSets, "3"))
	if errs := f.Errors(); len(errs) != 0 {
		t.Errorf("fixed field still reported: %v", errs)
	}

	f.SetName("  ")
	if !f.Errors().Has("name") {
		t.Errorf("blank name not reported live")
	}

	// An error on row 1 moves to index 0 when row 0 is removed.
	f.Append()
	mustNoErr(t, f.SetEntryField(1, FieldWeight, "heavy"))
	if !f.Errors().Has("exercises.1.weight") {
		t.Fatalf("unparsable weight not reported")
	}
	mustNoErr(t, f.Remove(0))
	errs = f.Errors()
	if !errs.Has("exercises.0.weight") || errs.Has("exercises.1.weight") {
		t.Errorf("live errors after remove = %v", errs)
	}
}

func TestSetEntryFieldUnknownField(t *testing.T) {
	f := New(testCatalog)
	if err := f.SetEntryField(0, "tempo", "3010"); err == nil {
		t.Error("expected an error for an unknown field")
	}
	if err := f.SetEntryField(3, FieldSets, "1"); !errors.Is(err, ErrRowIndex) {
		t.Errorf("expected ErrRowIndex, got %v", err)
	}
}

func TestSubmitInvokesCallbackOnceWhenValid(t *testing.T) {
	f := New(testCatalog)
	f.SetName("Leg Day")
	f.SetScheduledAt("2024-01-01T10:00")
	mustNoErr(t, f.SetExerciseID(0, "squat-1"))
	mustNoErr(t, f.SetSets(0, 3))
	mustNoErr(t, f.SetReps(0, 10))
	mustNoErr(t, f.SetWeight(0, 40))

	calls := 0
	var got ValidatedDraft
	err := f.Submit(func(v ValidatedDraft) error {
		calls++
		got = v
		return nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback called %d times, want 1", calls)
	}
	if !got.ScheduledAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("scheduledAt = %v", got.ScheduledAt)
	}
}

func TestSubmitReturnsCallbackErrorWithoutRetry(t *testing.T) {
	f := New(testCatalog)
	f.SetName("Core")
	f.SetScheduledAt("2024-01-01T10:00:00Z")
	mustNoErr(t, f.SetExerciseID(0, "plank-1"))

	boom := errors.New("server said no")
	calls := 0
	err := f.Submit(func(ValidatedDraft) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestSubmitRefusesInvalidDraft(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Form)
		field string
	}{
		{"empty name", func(f *Form) { f.SetScheduledAt("2024-01-01T10:00:00Z") }, "name"},
		{"empty scheduledAt", func(f *Form) { f.SetName("A") }, "scheduledAt"},
		{"all rows removed", func(f *Form) {
			f.SetName("A")
			f.SetScheduledAt("2024-01-01T10:00:00Z")
			_ = f.Remove(0)
		}, "exercises"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(testCatalog)
			_ = f.SetExerciseID(0, "squat-1")
			tt.setup(f)

			called := false
			err := f.Submit(func(ValidatedDraft) error {
				called = true
				return nil
			})
			if called {
				t.Fatal("callback invoked for an invalid draft")
			}
			var errs FieldErrors
			if !errors.As(err, &errs) || !errs.Has(tt.field) {
				t.Fatalf("expected a FieldErrors containing %s, got %v", tt.field, err)
			}
			if !f.Errors().Has(tt.field) {
				t.Errorf("live errors after submit miss %s", tt.field)
			}
		})
	}
}

func TestWithLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	f := New(testCatalog, WithLocation(loc))
	f.SetName("Morning")
	f.SetScheduledAt("2024-06-01T08:00")
	mustNoErr(t, f.SetExerciseID(0, "push-up-1"))

	v, errs := f.Validate()
	if len(errs) != 0 {
		t.Fatalf("Validate: %v", errs)
	}
	if got := v.Payload().ScheduledAt; got != "2024-06-01T06:00:00Z" {
		t.Errorf("payload scheduledAt = %s", got)
	}
}

func TestPayloadShape(t *testing.T) {
	v, errs := Validate(validDraft(), testCatalog)
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	data, err := json.Marshal(v.Payload())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Leg Day","scheduledAt":"2024-01-01T10:00:00Z","exercises":[{"id":"squat-1","sets":3,"reps":10,"weight":40}]}`
	if string(data) != want {
		t.Errorf("payload = %s\nwant      %s", data, want)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
