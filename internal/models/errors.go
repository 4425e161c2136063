package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// DuplicateCodeError blocks a registration whose product code is already
// active. Origin names the conflicting store so the caller can distinguish
// "already in catalog" from "already awaiting review".
type DuplicateCodeError struct {
	Code   string
	Origin string
}

func (e *DuplicateCodeError) Error() string {
	if e.Origin == StoreApproved {
		return fmt.Sprintf("product code %q is already approved", e.Code)
	}
	return fmt.Sprintf("product code %q already exists in %s", e.Code, e.Origin)
}

// ValidationError lists the required fields missing from a request. Detected
// before any store mutation.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// NotFoundError reports ids absent from the store a transition expected them in.
type NotFoundError struct {
	Store string
	IDs   []int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%d item(s) not found in %s: %v", len(e.IDs), e.Store, e.IDs)
}

// TransientStoreError wraps a transaction aborted by the backing store.
// The whole transition is safe to retry.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("transient store failure (retry the transition): %v", e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// PersistentStoreError wraps a non-retryable store failure (schema mismatch,
// permission). Surfaced verbatim to the actor.
type PersistentStoreError struct {
	Err error
}

func (e *PersistentStoreError) Error() string {
	return fmt.Sprintf("store failure: %v", e.Err)
}

func (e *PersistentStoreError) Unwrap() error { return e.Err }

// Postgres SQLSTATEs that indicate the transaction lost a race and may be
// retried as a whole.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// ClassifyStoreError maps a backing-store failure to the transient/persistent
// taxonomy. Nil passes through; already-classified errors are untouched.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	var dup *DuplicateCodeError
	var nf *NotFoundError
	var val *ValidationError
	var tr *TransientStoreError
	var ps *PersistentStoreError
	if errors.As(err, &dup) || errors.As(err, &nf) || errors.As(err, &val) ||
		errors.As(err, &tr) || errors.As(err, &ps) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected:
			return &TransientStoreError{Err: err}
		}
	}
	return &PersistentStoreError{Err: err}
}

// IsRetryable reports whether the caller may retry the whole transition.
func IsRetryable(err error) bool {
	var tr *TransientStoreError
	return errors.As(err, &tr)
}
