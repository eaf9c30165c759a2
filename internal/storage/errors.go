// ABOUTME: Error taxonomy for the storage layer.
// ABOUTME: InitError is fatal; QueryError carries the failed statement; sentinels for not-found and validation.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a write is rejected before reaching
	// the database (missing required field, unknown column, bad metric name).
	ErrValidation = errors.New("validation failed")
)

// InitError is returned when the store cannot be opened or its schema
// cannot be created. The store is unusable; callers should treat this as
// fatal to the session.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize store at %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// QueryError is returned when a single statement fails. It carries the
// statement for logging; the caller decides whether to retry or abort.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("statement failed: %v [%s]", e.Err, condense(e.Statement))
}

func (e *QueryError) Unwrap() error { return e.Err }

// condense collapses statement whitespace so errors stay on one log line.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
