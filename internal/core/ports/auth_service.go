package ports

import (
	"context"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account registration.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

// AuthService handles registration, credential checks, and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Authenticate returns domain.ErrUserNotFound for an unknown username and
	// domain.ErrInvalidCredentials for a password mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout revokes the token identified by jti until its expiry.
	Logout(ctx context.Context, jti string, expiresAt int64) error
}
