package ports

import (
	"context"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// CreateTodoInput carries the fields accepted when creating a todo.
type CreateTodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// UpdateTodoInput is a partial update: nil fields are left untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Priority    *int
	Complete    *bool
}

// TodoService implements the owner-scoped todo operations plus the
// admin-only unscoped ones.
type TodoService interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	ListAll(ctx context.Context) ([]*domain.Todo, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	Create(ctx context.Context, ownerID int64, input CreateTodoInput) (*domain.Todo, error)
	Update(ctx context.Context, id, ownerID int64, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id, ownerID int64) error
	DeleteAny(ctx context.Context, id int64) error
}
