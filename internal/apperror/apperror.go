// Package apperror defines the application's error taxonomy.
//
// Three kinds of failure reach the HTTP layer:
//   - ErrValidation: the client sent a bad request (400)
//   - ErrNotFound:   the identifier matched no row (404)
//   - anything else: an infrastructure failure (500, details only in logs)
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	ID      string // Optional: identifier that was looked up
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no resource matched id.
// The message is what clients see, so the id is kept out of it and stored in ID
// for logging instead.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		ID:      id,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// IsNotFound reports whether err carries ErrNotFound anywhere in its chain.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err carries ErrValidation anywhere in its chain.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
