package service

import "errors"

// Service-level errors, matched by handlers to pick the HTTP status.
var (
	// ErrUnauthorized covers missing/invalid/expired/mismatched tokens and
	// wrong credentials. Deliberately uniform for login failures so callers
	// cannot distinguish "no such user" from "wrong password".
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated user is not the owner
	// of the resource they try to mutate
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput marks validation failures that bind-time checks in the
	// handlers cannot catch, such as malformed usernames after sanitization
	ErrInvalidInput = errors.New("invalid input")
)
