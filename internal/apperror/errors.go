package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound covers both a missing row and a row owned by someone else;
// callers must not be able to tell the two apart.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed or out-of-range input before any side
// effect runs. Fields names the offending fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StoreError wraps a failure from the record store. It is surfaced as a
// transient failure with no automatic retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
