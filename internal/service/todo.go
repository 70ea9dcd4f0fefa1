package service

import (
	"context"

	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// CreateTodo creates a todo owned by userID
func (s *Service) CreateTodo(ctx context.Context, userID int64, text, dueDate string) (*models.Todo, error) {
	if text == "" || dueDate == "" {
		return nil, validationf("text and due date are required")
	}
	return s.store.CreateTodo(ctx, userID, text, dueDate)
}

// ListTodos returns all todos owned by userID. Completed/incomplete
// filtering is a client concern; the full list is always returned.
func (s *Service) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	return s.store.ListTodosByUser(ctx, userID)
}

// UpdateTodo applies the non-nil fields of upd to the caller's todo.
// An absent or foreign-owned id surfaces store.ErrNotFound rather than
// echoing a stale row.
func (s *Service) UpdateTodo(ctx context.Context, id, userID int64, upd models.TodoUpdate) (*models.Todo, error) {
	return s.store.UpdateTodo(ctx, id, userID, upd)
}

// DeleteTodo deletes the caller's todo; an absent or foreign-owned id
// surfaces store.ErrNotFound
func (s *Service) DeleteTodo(ctx context.Context, id, userID int64) error {
	return s.store.DeleteTodo(ctx, id, userID)
}
