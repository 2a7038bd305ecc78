package workoutform

import (
	"math"
	"strings"
	"time"
	"workouttracker/app/internal/domain"
)

// Entry field names.
const (
	FieldExerciseID = "exerciseId"
	FieldSets       = "sets"
	FieldReps       = "reps"
	FieldWeight     = "weight"
	FieldComments   = "comments"
)

const (
	fieldName        = "name"
	fieldScheduledAt = "scheduledAt"
	fieldExercises   = "exercises"
)

// Draft is the unvalidated form content. Numbers are float64 so that
// fractional or unparsable input can be held and reported.
type Draft struct {
	Name        string
	ScheduledAt string
	Exercises   []EntryDraft
}

// EntryDraft is one exercise row as typed by the user.
type EntryDraft struct {
	ExerciseID string
	Sets       float64
	Reps       float64
	Weight     float64
	Comments   string
}

// ValidatedDraft is a draft that passed validation.
type ValidatedDraft struct {
	Name        string
	ScheduledAt time.Time
	Exercises   []ValidatedEntry
}

type ValidatedEntry struct {
	ExerciseID string
	Sets       int
	Reps       int
	Weight     float64
	Comments   string
}

// Payload is the request body for creating a workout.
type Payload struct {
	Name        string         `json:"name"`
	ScheduledAt string         `json:"scheduledAt"`
	Exercises   []PayloadEntry `json:"exercises"`
}

type PayloadEntry struct {
	ID       string  `json:"id"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Comments string  `json:"comments,omitempty"`
}

// Payload converts the draft to its wire form. scheduledAt is sent as RFC 3339 UTC.
func (v ValidatedDraft) Payload() Payload {
	p := Payload{
		Name:        v.Name,
		ScheduledAt: v.ScheduledAt.UTC().Format(time.RFC3339),
		Exercises:   make([]PayloadEntry, len(v.Exercises)),
	}
	for i, e := range v.Exercises {
		p.Exercises[i] = PayloadEntry{
			ID:       e.ExerciseID,
			Sets:     e.Sets,
			Reps:     e.Reps,
			Weight:   e.Weight,
			Comments: e.Comments,
		}
	}
	return p
}

// Validate checks every field of draft against catalog and reports all
// failures at once. Local date-times are read as UTC.
func Validate(draft Draft, catalog []domain.Exercise) (ValidatedDraft, FieldErrors) {
	return validate(draft, catalogIDs(catalog), time.UTC)
}

func catalogIDs(catalog []domain.Exercise) map[string]bool {
	ids := make(map[string]bool, len(catalog))
	for _, ex := range catalog {
		ids[ex.ID] = true
	}
	return ids
}

func validate(draft Draft, catalog map[string]bool, loc *time.Location) (ValidatedDraft, FieldErrors) {
	var errs FieldErrors
	out := ValidatedDraft{
		Name:      strings.TrimSpace(draft.Name),
		Exercises: make([]ValidatedEntry, 0, len(draft.Exercises)),
	}

	if fe, ok := checkName(draft.Name); !ok {
		errs = append(errs, fe)
	}

	at, fe, ok := checkScheduledAt(draft.ScheduledAt, loc)
	if !ok {
		errs = append(errs, fe)
	}
	out.ScheduledAt = at

	if fe, ok := checkExerciseCount(len(draft.Exercises)); !ok {
		errs = append(errs, fe)
	}

	for i, e := range draft.Exercises {
		entryErrs := checkEntry(i, e, catalog)
		errs = append(errs, entryErrs...)
		if len(entryErrs) == 0 {
			out.Exercises = append(out.Exercises, ValidatedEntry{
				ExerciseID: e.ExerciseID,
				Sets:       int(e.Sets),
				Reps:       int(e.Reps),
				Weight:     e.Weight,
				Comments:   e.Comments,
			})
		}
	}

	if len(errs) > 0 {
		return ValidatedDraft{}, errs
	}
	return out, nil
}

func checkName(name string) (FieldError, bool) {
	if strings.TrimSpace(name) == "" {
		return FieldError{Field: fieldName, Kind: RequiredField, Message: "name is required"}, false
	}
	return FieldError{}, true
}

func checkScheduledAt(value string, loc *time.Location) (time.Time, FieldError, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, FieldError{Field: fieldScheduledAt, Kind: RequiredField, Message: "scheduled date is required"}, false
	}
	at, err := domain.ParseDateTime(value, loc)
	if err != nil {
		return time.Time{}, FieldError{Field: fieldScheduledAt, Kind: RangeError, Message: "must be a valid date-time"}, false
	}
	return at, FieldError{}, true
}

func checkExerciseCount(n int) (FieldError, bool) {
	if n == 0 {
		return FieldError{Field: fieldExercises, Kind: RequiredField, Message: "at least one exercise required"}, false
	}
	return FieldError{}, true
}

// checkEntry validates one row; comments are unconstrained.
func checkEntry(i int, e EntryDraft, catalog map[string]bool) FieldErrors {
	var errs FieldErrors
	if fe, ok := checkExerciseID(i, e.ExerciseID, catalog); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkCount(i, FieldSets, e.Sets); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkCount(i, FieldReps, e.Reps); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkWeight(i, e.Weight); !ok {
		errs = append(errs, fe)
	}
	return errs
}

func checkExerciseID(i int, id string, catalog map[string]bool) (FieldError, bool) {
	switch {
	case strings.TrimSpace(id) == "":
		return FieldError{Field: EntryField(i, FieldExerciseID), Kind: RequiredField, Message: "select an exercise"}, false
	case !catalog[id]:
		return FieldError{Field: EntryField(i, FieldExerciseID), Kind: RequiredField, Message: "unknown exercise " + id}, false
	}
	return FieldError{}, true
}

// checkCount accepts whole numbers >= 1.
func checkCount(i int, field string, v float64) (FieldError, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return FieldError{Field: EntryField(i, field), Kind: RangeError, Message: field + " must be a whole number of at least 1"}, false
	}
	return FieldError{}, true
}

func checkWeight(i int, v float64) (FieldError, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return FieldError{Field: EntryField(i, FieldWeight), Kind: RangeError, Message: "weight must be 0 or more"}, false
	}
	return FieldError{}, true
}
