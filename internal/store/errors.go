package store

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when an add collides with an existing id.
// It should never occur under correct id generation.
var ErrDuplicateID = errors.New("duplicate id")

// ValidationError reports an empty required field. The mutation that
// produced it performed zero writes.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// PersistenceError reports a failed durable read or write. On a failed
// write the in-memory collection is still correct, but the change may
// not survive a reload.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
