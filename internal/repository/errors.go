package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an entity with the same key already exists
	ErrConflict = errors.New("conflict: entity already exists")

	// ErrCapacityExceeded is returned by bounded stores that are full
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
