// Package common contains shared constants and sentinel errors used across
// lockbox components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage unavailable")

	// Service-level errors (generic/internal flow control).
	ErrInternal        = errors.New("internal error")
	ErrOperationFailed = errors.New("operation failed, please try again")

	// Auth errors. ErrInvalidCredentials deliberately carries the same
	// message for unknown-user and wrong-password so callers cannot
	// enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNoSession          = errors.New("no active session")

	// Codec errors (malformed ciphertext or transform key).
	ErrDecryption = errors.New("decryption failed")
)
