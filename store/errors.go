// store/errors.go - Error taxonomy for the record store
package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// that want the old "empty default" behavior must opt into it explicitly.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write collides with existing state, e.g.
// closing a session that is already closed.
var ErrConflict = errors.New("conflicting record state")

// StorageError wraps failures of the storage medium itself. These are
// logged at the access point and surfaced, never silently swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError reports a malformed field in a write request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// wrapErr maps a gorm error to the store taxonomy.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	log.Printf("storage error during %s: %v", op, err)
	return &StorageError{Op: op, Err: err}
}
