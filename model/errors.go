package model

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every store operation. Handlers map these
// onto HTTP statuses; callers decide retryability from the kind:
// only StorageError may be retried.

// ValidationError means the input is malformed or missing required
// fields. The caller must correct and resubmit.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means the record does not exist for the calling owner.
// Cross-owner access reports the same error so existence of another
// user's records never leaks.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError blocks a folder deletion that would affect contained
// items without an explicit policy from the caller. ItemCount carries
// how many items stand in the way.
type ConflictError struct {
	Msg       string
	ItemCount int
}

func (e *ConflictError) Error() string { return e.Msg }

func NewConflictError(itemCount int, format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...), ItemCount: itemCount}
}

// StorageError wraps an underlying read/write failure. Retryable with
// backoff, unlike every other kind.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// AsConflict returns the conflict details when err is a ConflictError.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
