package db

import "errors"

// Domain-level database error sentinels.
var (
	// Location errors
	ErrLocationNotFound = errors.New("location not found")

	// Owner errors
	ErrOwnerNotFound = errors.New("owner not found")
	ErrInvalidOwner  = errors.New("owner code is required")
)
