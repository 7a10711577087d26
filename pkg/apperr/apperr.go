// Package apperr defines the error taxonomy shared by the repository and the
// HTTP layer. Callers classify failures with errors.Is against the exported
// sentinels; the message carries the human-readable detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks lookups and update targets whose id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations (duplicate artisan email).
	ErrConflict = errors.New("conflict")
	// ErrValidation marks attributes that fail a local invariant.
	ErrValidation = errors.New("validation failed")
	// ErrStore marks an unreadable or unwritable durable store.
	ErrStore = errors.New("store failure")
)

// Error pairs one of the sentinel kinds with a formatted message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

// Conflict builds an ErrConflict error.
func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

// Validation builds an ErrValidation error.
func Validation(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

// Store wraps a low-level store error, keeping the cause in the message.
func Store(op string, cause error) error {
	return &Error{kind: ErrStore, msg: fmt.Sprintf("%s: %v", op, cause)}
}

// HTTPStatus maps an error to the status code the API contract promises:
// 404 not found, 409 conflict, 400 validation, 500 everything else.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
