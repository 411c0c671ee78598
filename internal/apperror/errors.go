package apperror

import (
	"errors"
	"fmt"
)

// NotFoundError marks a referenced session or user that does not exist.
// Surfaced as 404, never retried.
type NotFoundError struct {
	Resource string
	Id       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.Id)
}

func NewNotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, Id: id}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// PersistenceError wraps a connectivity or constraint failure during a
// write. The transaction is rolled back before this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsPersistence(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}

// ErrInsufficientHistory is the rewind refusal: fewer than two messages
// exist so there is no trailing human/assistant pair to remove. This is a
// normal outcome, not a system fault.
var ErrInsufficientHistory = errors.New("not enough messages to rewind")
