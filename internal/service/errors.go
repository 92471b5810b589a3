package service

import "fmt"

// DeleteFailedError reports a cascade delete that stopped partway. Records
// deleted before the failing stage stay deleted; the caller may retry, and
// the already-removed records make the retry a no-op for them.
type DeleteFailedError struct {
	Entity string
	ID     string
	Stage  string
	Err    error
}

func (e *DeleteFailedError) Error() string {
	return fmt.Sprintf("delete %s %s failed at %s: %v", e.Entity, e.ID, e.Stage, e.Err)
}

func (e *DeleteFailedError) Unwrap() error { return e.Err }
