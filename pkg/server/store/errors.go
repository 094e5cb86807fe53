package store

import "errors"

var (
	// ErrNotFound indicates no record or file matched the lookup.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness constraint was violated on create.
	ErrConflict = errors.New("already exists")
)
