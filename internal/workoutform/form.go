// Package workoutform holds the client-side state of a new workout: the
// metadata, an ordered list of exercise rows, live per-field validation and a
// single submission.
package workoutform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"workouttracker/app/internal/domain"

	"github.com/google/uuid"
)

// Row is an exercise row with a stable key. The key only identifies the row
// while the form is open and is never sent to the server.
type Row struct {
	Key string
	EntryDraft
}

// Form is a workout draft being edited. It is not safe for concurrent use.
type Form struct {
	name        string
	scheduledAt string
	rows        []Row

	catalog []domain.Exercise
	ids     map[string]bool
	loc     *time.Location

	// touched holds the fields whose errors are shown live; entry fields are
	// keyed by row key so they follow the row when others are removed.
	touched   map[string]bool
	submitted bool
}

// Option configures a Form.
type Option func(*Form)

// WithLocation sets the zone used for date-times typed without an offset.
func WithLocation(loc *time.Location) Option {
	return func(f *Form) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// New creates a form over catalog, starting with one default row.
func New(catalog []domain.Exercise, opts ...Option) *Form {
	f := &Form{
		catalog: append([]domain.Exercise(nil), catalog...),
		ids:     catalogIDs(catalog),
		loc:     time.UTC,
		touched: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Append()
	return f
}

// Catalog returns the exercises the form can reference.
func (f *Form) Catalog() []domain.Exercise {
	return append([]domain.Exercise(nil), f.catalog...)
}

func defaultEntry() EntryDraft {
	return EntryDraft{Sets: 1, Reps: 1, Weight: 0, Comments: ""}
}

// Append adds a default row at the end and returns it.
func (f *Form) Append() Row {
	row := Row{Key: uuid.NewString(), EntryDraft: defaultEntry()}
	f.rows = append(f.rows, row)
	return row
}

// Remove deletes the row at index i. The other rows keep their order, values
// and keys. Removing the last row is allowed but the form cannot be submitted
// until a row is added again.
func (f *Form) Remove(i int) error {
	if err := f.checkIndex(i); err != nil {
		return err
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	f.touched[fieldExercises] = true
	return nil
}

// Rows returns a copy of the current rows.
func (f *Form) Rows() []Row {
	return append([]Row(nil), f.rows...)
}

// Len returns the number of rows.
func (f *Form) Len() int { return len(f.rows) }

// Draft returns the current content.
func (f *Form) Draft() Draft {
	d := Draft{
		Name:        f.name,
		ScheduledAt: f.scheduledAt,
		Exercises:   make([]EntryDraft, len(f.rows)),
	}
	for i, r := range f.rows {
		d.Exercises[i] = r.EntryDraft
	}
	return d
}

// SetName sets the workout name and shows its error live.
func (f *Form) SetName(name string) {
	f.name = name
	f.touched[fieldName] = true
}

// SetScheduledAt sets the raw date-time input and shows its error live.
func (f *Form) SetScheduledAt(value string) {
	f.scheduledAt = value
	f.touched[fieldScheduledAt] = true
}

// SetExerciseID selects the catalog exercise for row i.
func (f *Form) SetExerciseID(i int, id string) error {
	return f.setEntry(i, FieldExerciseID, func(e *EntryDraft) { e.ExerciseID = strings.TrimSpace(id) })
}

// SetSets sets the set count for row i.
func (f *Form) SetSets(i int, sets float64) error {
	return f.setEntry(i, FieldSets, func(e *EntryDraft) { e.Sets = sets })
}

// SetReps sets the rep count for row i.
func (f *Form) SetReps(i int, reps float64) error {
	return f.setEntry(i, FieldReps, func(e *EntryDraft) { e.Reps = reps })
}

// SetWeight sets the weight in kilograms for row i.
func (f *Form) SetWeight(i int, weight float64) error {
	return f.setEntry(i, FieldWeight, func(e *EntryDraft) { e.Weight = weight })
}

// SetComments sets the free-text comments for row i.
func (f *Form) SetComments(i int, comments string) error {
	return f.setEntry(i, FieldComments, func(e *EntryDraft) { e.Comments = comments })
}

// SetEntryField sets a row field from text input. Numbers that do not parse
// are kept as NaN and reported as a RangeError by validation.
func (f *Form) SetEntryField(i int, field, text string) error {
	switch field {
	case FieldExerciseID:
		return f.SetExerciseID(i, text)
	case FieldComments:
		return f.SetComments(i, text)
	case FieldSets:
		return f.SetSets(i, parseNumber(text))
	case FieldReps:
		return f.SetReps(i, parseNumber(text))
	case FieldWeight:
		return f.SetWeight(i, parseNumber(text))
	default:
		return fmt.Errorf("unknown exercise field %q", field)
	}
}

func parseNumber(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (f *Form) setEntry(i int, field string, set func(*EntryDraft)) error {
	if err := f.checkIndex(i); err != nil {
		return err
	}
	set(&f.rows[i].EntryDraft)
	f.touched[rowField(f.rows[i].Key, field)] = true
	return nil
}

func (f *Form) checkIndex(i int) error {
	if i < 0 || i >= len(f.rows) {
		return fmt.Errorf("%w: %d (have %d rows)", ErrRowIndex, i, len(f.rows))
	}
	return nil
}

func rowField(key, field string) string {
	return key + "/" + field
}

// Errors returns the live errors: those of fields edited so far, or of every
// field once a submission has been attempted.
func (f *Form) Errors() FieldErrors {
	var errs FieldErrors
	show := func(touchKey string) bool { return f.submitted || f.touched[touchKey] }

	if fe, ok := checkName(f.name); !ok && show(fieldName) {
		errs = append(errs, fe)
	}
	if _, fe, ok := checkScheduledAt(f.scheduledAt, f.loc); !ok && show(fieldScheduledAt) {
		errs = append(errs, fe)
	}
	if fe, ok := checkExerciseCount(len(f.rows)); !ok && show(fieldExercises) {
		errs = append(errs, fe)
	}
	for i, r := range f.rows {
		for _, fe := range checkEntry(i, r.EntryDraft, f.ids) {
			if show(rowField(r.Key, strings.TrimPrefix(fe.Field, EntryField(i, "")))) {
				errs = append(errs, fe)
			}
		}
	}
	return errs
}

// Validate checks the whole form.
func (f *Form) Validate() (ValidatedDraft, FieldErrors) {
	return validate(f.Draft(), f.ids, f.loc)
}

// Submit validates the form and, when it is valid, calls fn exactly once with
// the validated draft and returns fn's error. When it is invalid fn is not
// called and the FieldErrors are returned.
func (f *Form) Submit(fn func(ValidatedDraft) error) error {
	f.submitted = true
	validated, errs := f.Validate()
	if len(errs) > 0 {
		return errs
	}
	return fn(validated)
}
