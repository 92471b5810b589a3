package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no record with the requested id exists.
	ErrNotFound = errors.New("record not found")

	// ErrConditionFailed reports that a conditional update found the record
	// but its current state did not match the condition.
	ErrConditionFailed = errors.New("update condition not met")
)

// StoreError wraps a backend failure with the operation, collection and id it
// occurred on. It never swallows the cause: Unwrap exposes it for errors.Is.
type StoreError struct {
	Op         string
	Collection Collection
	ID         string
	Err        error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store: %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
