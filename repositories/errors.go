package repositories

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is filtered
	// out by an active-only query.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)
