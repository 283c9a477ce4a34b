// Package apperr holds the error kinds shared by the geometry, ledger and
// harvest packages, and their mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrInsufficientPoints is returned when a ring has fewer than three points at closure.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrDegenerateGeometry is returned for a centroid request on a zero-area ring.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrPersistence marks any failed call into the store.
	ErrPersistence = errors.New("persistence failure")

	// ErrStaleDenormalizedState marks a field whose cached crop label lags the ledger.
	ErrStaleDenormalizedState = errors.New("stale denormalized state")

	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
)

// PersistenceError wraps a store failure with the operation that produced it.
// It matches both ErrPersistence and the underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// Persistence wraps err as a PersistenceError. A missing record becomes
// ErrNotFound instead, since that is a lookup result rather than a failure.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		return &notFoundError{op: op}
	}
	return &PersistenceError{Op: op, Err: err}
}

type notFoundError struct{ op string }

func (e *notFoundError) Error() string { return e.op + ": not found" }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

// HTTPStatus maps an error kind onto the status code the controllers answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInsufficientPoints),
		errors.Is(err, ErrDegenerateGeometry):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
