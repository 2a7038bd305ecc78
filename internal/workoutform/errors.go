package workoutform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a field error.
type ErrorKind string

const (
	RequiredField ErrorKind = "RequiredField"
	RangeError    ErrorKind = "RangeError"
)

// ErrRowIndex is returned for an index outside the current row list.
var ErrRowIndex = errors.New("exercise row index out of range")

// FieldError is a problem with one form field. Field is a path such as
// "name" or "exercises.2.sets".
type FieldError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors lists every failing field, in form order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Get returns the error for field, if any.
func (e FieldErrors) Get(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Has reports whether field failed.
func (e FieldErrors) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

// EntryField names the field of the entry at index i.
func EntryField(i int, field string) string {
	return fmt.Sprintf("exercises.%d.%s", i, field)
}
