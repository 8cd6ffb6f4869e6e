package assistant

import (
	"errors"
	"fmt"
)

// Sentinel errors for assistant operations.
var (
	ErrNotFound        = errors.New("not found")
	ErrProblemNotFound = fmt.Errorf("problem %w", ErrNotFound)
	ErrPlanNotFound    = fmt.Errorf("plan %w", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
