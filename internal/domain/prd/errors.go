package prd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a missing or out-of-bounds field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPRDNotFound indicates no active PRD has the requested ID.
	ErrPRDNotFound = errors.New("prd not found")
	// ErrCapacityExceeded indicates a bounded store is full.
	ErrCapacityExceeded = errors.New("prd capacity exceeded")
	// ErrDuplicateID indicates the ID generator produced an ID already in use.
	ErrDuplicateID = errors.New("duplicate prd id")

	// ErrInvalidStatus indicates an unknown status name. It matches ErrInvalidArgument.
	ErrInvalidStatus = fmt.Errorf("%w: unknown status", ErrInvalidArgument)
	// ErrInvalidPriority indicates an unknown priority name. It matches ErrInvalidArgument.
	ErrInvalidPriority = fmt.Errorf("%w: unknown priority", ErrInvalidArgument)
)
