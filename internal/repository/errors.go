package repository

import (
	"errors"
	"fmt"
)

// ErrPersistence matches every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError reports that the store was unreachable or a write could
// not be committed. No partial record is left behind when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("todo store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
