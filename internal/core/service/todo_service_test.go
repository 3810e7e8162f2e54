package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

type stubTodoRepo struct {
	todos  map[int64]*domain.Todo
	nextID int64
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	copy := cloneTodo(todo)
	copy.ID = r.nextID
	r.todos[copy.ID] = cloneTodo(copy)
	return copy, nil
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Todo, error) {
	out := make([]*domain.Todo, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if t, ok := r.todos[id]; ok && t.OwnerID == ownerID {
			out = append(out, cloneTodo(t))
		}
	}
	return out, nil
}

func (r *stubTodoRepo) ListAll(_ context.Context) ([]*domain.Todo, error) {
	out := make([]*domain.Todo, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if t, ok := r.todos[id]; ok {
			out = append(out, cloneTodo(t))
		}
	}
	return out, nil
}

func (r *stubTodoRepo) Find(_ context.Context, id, ownerID int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	existing, ok := r.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return domain.ErrTodoNotFound
	}
	r.todos[todo.ID] = cloneTodo(todo)
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id, ownerID int64) error {
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) DeleteAny(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func validCreateInput() ports.CreateTodoInput {
	return ports.CreateTodoInput{
		Title:       "Test Todo",
		Description: "Test Description",
		Priority:    1,
	}
}

func TestTodoService_Create_SetsOwnerAndDefaults(t *testing.T) {
	svc := NewTodoService(newStubTodoRepo(), zerolog.Nop())

	todo, err := svc.Create(context.Background(), 7, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if todo.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if todo.OwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", todo.OwnerID)
	}
	if todo.Complete {
		t.Fatalf("expected complete to default to false")
	}
}

func TestTodoService_Create_Validation(t *testing.T) {
	svc := NewTodoService(newStubTodoRepo(), zerolog.Nop())

	cases := []struct {
		name  string
		input ports.CreateTodoInput
	}{
		{"empty title", ports.CreateTodoInput{Description: "d", Priority: 1}},
		{"title too long", ports.CreateTodoInput{Title: strings.Repeat("x", 101), Description: "d", Priority: 1}},
		{"empty description", ports.CreateTodoInput{Title: "t", Priority: 1}},
		{"description too long", ports.CreateTodoInput{Title: "t", Description: strings.Repeat("x", 201), Priority: 1}},
		{"priority too low", ports.CreateTodoInput{Title: "t", Description: "d", Priority: 0}},
		{"priority too high", ports.CreateTodoInput{Title: "t", Description: "d", Priority: 6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 1, tc.input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestTodoService_Get_ScopedToOwner(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), 1, validCreateInput())

	if _, err := svc.Get(context.Background(), created.ID, 1); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID, 2); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign owner, got %v", err)
	}
}

func TestTodoService_Update_MergesOnlyProvidedFields(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), 1, ports.CreateTodoInput{
		Title:       "t",
		Description: "d",
		Priority:    1,
	})

	priority := 3
	complete := true
	updated, err := svc.Update(context.Background(), created.ID, 1, ports.UpdateTodoInput{
		Priority: &priority,
		Complete: &complete,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != "t" || updated.Description != "d" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Priority != 3 || !updated.Complete {
		t.Fatalf("provided fields not applied: %+v", updated)
	}
}

func TestTodoService_Update_ValidatesMergedResult(t *testing.T) {
	svc := NewTodoService(newStubTodoRepo(), zerolog.Nop())
	created, _ := svc.Create(context.Background(), 1, validCreateInput())

	bad := 9
	if _, err := svc.Update(context.Background(), created.ID, 1, ports.UpdateTodoInput{Priority: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTodoService_Update_ForeignOwnerNotFound(t *testing.T) {
	svc := NewTodoService(newStubTodoRepo(), zerolog.Nop())
	created, _ := svc.Create(context.Background(), 1, validCreateInput())

	title := "hijacked"
	if _, err := svc.Update(context.Background(), created.ID, 2, ports.UpdateTodoInput{Title: &title}); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign owner, got %v", err)
	}
}

// Mirrors the cross-user lifecycle: u1 creates, u2 cannot delete, an admin can.
func TestTodoService_OwnershipLifecycle(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mine, err := svc.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("expected exactly the created todo, got %+v", mine)
	}

	// Another user cannot delete it, and cannot learn it exists.
	if err := svc.Delete(ctx, created.ID, 2); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for foreign delete, got %v", err)
	}

	// Admin delete bypasses ownership.
	if err := svc.DeleteAny(ctx, created.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected row to be gone, got %+v", all)
	}
}

func TestTodoService_ListAll_SpansOwners(t *testing.T) {
	svc := NewTodoService(newStubTodoRepo(), zerolog.Nop())
	ctx := context.Background()

	_, _ = svc.Create(ctx, 1, validCreateInput())
	_, _ = svc.Create(ctx, 2, validCreateInput())

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(all))
	}
}
