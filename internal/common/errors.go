// Package common defines shared constants and sentinel errors used across
// the server and CLI layers. Callers should use errors.Is to match the
// sentinels and errors.As for *InvalidPasswordError.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Gate errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors.
	ErrorInvalidEmail = errors.New("invalid email")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// InvalidPasswordError is returned when a proposed credential does not
// satisfy the configured password rules. Reason is safe to show to callers.
type InvalidPasswordError struct {
	Reason string
}

func (e *InvalidPasswordError) Error() string {
	return "invalid password: " + e.Reason
}

// NewInvalidPasswordError builds an *InvalidPasswordError with the given reason.
func NewInvalidPasswordError(reason string) *InvalidPasswordError {
	return &InvalidPasswordError{Reason: reason}
}
