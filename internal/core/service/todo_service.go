package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// TodoService implements owner-scoped todo operations. The admin-only
// unscoped variants (ListAll, DeleteAny) never receive an owner filter;
// everything else matches rows by id+owner so that one user's todos are
// invisible to another.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TodoService) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return s.repo.ListAll(ctx)
}

func (s *TodoService) Get(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	return s.repo.Find(ctx, id, ownerID)
}

// Create validates the field constraints before persisting.
func (s *TodoService) Create(ctx context.Context, ownerID int64, input ports.CreateTodoInput) (*domain.Todo, error) {
	todo := &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     ownerID,
	}
	if err := todo.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create todo")
		return nil, err
	}

	s.logger.Info().Int64("todo_id", created.ID).Int64("owner_id", ownerID).Msg("todo created")
	return created, nil
}

// Update loads the owner-scoped row, applies only the fields present in the
// input, re-validates, and persists. Fields absent from the input are left
// untouched: this is a merge, not a replace.
func (s *TodoService) Update(ctx context.Context, id, ownerID int64, input ports.UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.repo.Find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.Complete != nil {
		todo.Complete = *input.Complete
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("todo_id", todo.ID).Int64("owner_id", ownerID).Msg("todo updated")
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Int64("todo_id", id).Int64("owner_id", ownerID).Msg("todo deleted")
	return nil
}

// DeleteAny removes a todo regardless of owner. Admin path only.
func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAny(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("todo_id", id).Msg("todo deleted by admin")
	return nil
}
