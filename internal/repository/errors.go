package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a write loses a compare-and-swap against a
	// concurrent update, or would violate a uniqueness constraint.
	ErrConflict = errors.New("entity conflict")
)
