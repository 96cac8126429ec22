package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated,
	// e.g. a second registration for the same user and flagship.
	ErrDuplicate = errors.New("entity already exists")
)
