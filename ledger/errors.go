/*
errors.go - Centralized error types for the bookkeeping core

ERROR CATEGORIES:
  1. Validation errors - Rejected before any write happens
  2. Storage errors    - Read/write failures against the key-value store
  3. Not-found         - Missing id/name; a silent no-op at the repository
                         level, surfaced by callers that checked first

No error is retried automatically; every failure is terminal for that one
user-initiated operation.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when required input is missing or invalid.
	// The operation is aborted before any write.
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when the key-value store fails a read or
	// write. No partial state is committed.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound is returned when a referenced record or archive month
	// does not exist. Repository delete/update treat this as a no-op;
	// HTTP handlers check first and surface it.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StorageError wraps a key-value store failure with the operation and key.
type StorageError struct {
	Op  string // "get", "set", "remove", "keys"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
