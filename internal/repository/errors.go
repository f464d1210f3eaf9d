package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a document is not found
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateUser is returned when a username or email is already taken
	ErrDuplicateUser = errors.New("user with this username or email already exists")

	// ErrTokenMismatch is returned by the conditional refresh-token swap when
	// the stored token no longer equals the presented one
	ErrTokenMismatch = errors.New("stored refresh token does not match")
)
