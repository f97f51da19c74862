package services

import "errors"

// Sentinel errors the HTTP handlers and CLI commands map onto status
// codes and exit codes. Storage errors pass through unwrapped and are
// reported generically at the boundary.
var (
	ErrNotFound        = errors.New("no user with that email was found")
	ErrUnauthorized    = errors.New("invalid password")
	ErrFeatureDisabled = errors.New("balance checking is not enabled")
	ErrConflict        = errors.New("a user with that email or username already exists")

	// ErrNoBalance means a committed transaction produced no resulting
	// balance, which indicates a storage fault.
	ErrNoBalance = errors.New("transaction produced no resulting balance")
)
