package ports

import (
	"context"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// UpdateProfileInput is a partial profile update: nil fields are untouched.
type UpdateProfileInput struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// UserService implements the self-service account operations.
type UserService interface {
	Profile(ctx context.Context, id int64) (*domain.User, error)
	// ChangePassword returns domain.ErrInvalidCredentials when the current
	// password does not match.
	ChangePassword(ctx context.Context, id int64, current, next string) error
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (*domain.User, error)
}
