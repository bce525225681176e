package domain

import (
	"errors"
	"strings"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrValidation is returned when input fields are missing or invalid.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence is returned when the store is unavailable or rejects a write.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotAllowed is returned when a request origin is not on the allowlist.
	ErrNotAllowed = errors.New("not allowed by CORS")
	// ErrRateLimited is returned when a client exceeds its request quota.
	ErrRateLimited = errors.New("too many requests")
)

// ValidationError carries field-level messages. It matches ErrValidation.
type ValidationError struct {
	Fields []string
}

// NewValidationError returns a ValidationError with the given field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, "; ")
}

// Details returns the field messages joined for display.
func (e *ValidationError) Details() string {
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
