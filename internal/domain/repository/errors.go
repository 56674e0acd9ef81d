package repository

import (
	"errors"
	"fmt"
)

// ErrPersistence matches every IOError with errors.Is
var ErrPersistence = errors.New("persistence failure")

// IOError is returned by roster and report repositories when the underlying
// storage (file system, database) fails.
type IOError struct {
	Op     string // "load", "save", "record"
	Target string // file path, collection or table
	Err    error
}

// NewIOError wraps err as an IOError
func NewIOError(op, target string, err error) *IOError {
	return &IOError{Op: op, Target: target, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) true for any IOError
func (e *IOError) Is(target error) bool {
	return target == ErrPersistence
}
