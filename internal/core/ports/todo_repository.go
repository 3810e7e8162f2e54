package ports

import (
	"context"

	"github.com/taskhive/todo-api/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
//
// Owner-scoped methods take an ownerID and match only rows belonging to that
// owner; the Any variants ignore ownership and exist for the admin path.
type TodoRepository interface {
	// Create persists a new todo and returns it with its assigned ID.
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// ListByOwner returns every todo owned by ownerID, insertion order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	// ListAll returns every todo regardless of owner.
	ListAll(ctx context.Context) ([]*domain.Todo, error)
	// Find returns domain.ErrTodoNotFound when no row matches id+owner.
	Find(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	// Update replaces the stored row matching todo.ID+todo.OwnerID.
	// Returns domain.ErrTodoNotFound when no row matches.
	Update(ctx context.Context, todo *domain.Todo) error
	// Delete removes the row matching id+owner; ErrTodoNotFound when absent.
	Delete(ctx context.Context, id, ownerID int64) error
	// DeleteAny removes the row matching id regardless of owner.
	DeleteAny(ctx context.Context, id int64) error
}
