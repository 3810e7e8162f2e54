package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services and repositories. The API layer maps
// each to a single HTTP status code in one place.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with a human-readable reason so that
// errors.Is(err, ErrValidation) still holds.
func ValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
