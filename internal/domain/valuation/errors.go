package valuation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind of every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a rank or position the engine refuses to value.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes both the invalid-input kind and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}
