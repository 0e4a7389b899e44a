package lead

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when a request lacks the anti-forgery token or the
// caller is not authorized for admin operations. Handlers surface it without
// further detail.
var ErrForbidden = errors.New("forbidden")

// ValidationError reports the first missing or malformed input field.
// Validation fails fast; errors are never aggregated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

// Required builds a ValidationError for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// PersistenceError wraps a store failure. Callers see a generic server error;
// the wrapped cause is only logged server-side.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
