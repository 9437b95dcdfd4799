package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable matches every failure reported by the contact
	// backend (network or storage). It is always locally recoverable by
	// retrying the triggering action.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrStaleNavigation signals that a completed navigation was superseded
	// by a newer one. Its result is discarded and never shown.
	ErrStaleNavigation = errors.New("stale navigation")

	// ErrNotFound is returned when a contact id does not exist.
	ErrNotFound = errors.New("contact not found")
)

// BackendError records a failed backend operation and its cause.
type BackendError struct {
	Op  string
	Err error
}

// Unavailable wraps err as a BackendError for op.
// A nil err yields nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrBackendUnavailable, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrBackendUnavailable) hold for any BackendError.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}
