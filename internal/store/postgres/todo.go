package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// CreateTodo creates a new todo owned by userID
func (s *Store) CreateTodo(ctx context.Context, userID int64, text, dueDate string) (*models.Todo, error) {
	todo := &models.Todo{
		UserID:    userID,
		Text:      text,
		DueDate:   dueDate,
		Completed: false,
		CreatedAt: now(),
	}
	query := `
		INSERT INTO todos (user_id, text, due_date, completed, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, query, userID, text, dueDate, todo.CreatedAt).
		Scan(&todo.ID)
	if err != nil {
		return nil, wrap("create todo", err)
	}
	return todo, nil
}

// ListTodosByUser returns all todos owned by userID, newest first
func (s *Store) ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, text, due_date, completed, created_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, wrap("list todos", err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, wrap("list todos", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// UpdateTodo applies the non-nil fields of upd to the todo identified by
// (id, userID) and returns the updated row. A foreign or absent id yields
// store.ErrNotFound.
func (s *Store) UpdateTodo(ctx context.Context, id, userID int64, upd models.TodoUpdate) (*models.Todo, error) {
	todo := &models.Todo{}
	query := `
		UPDATE todos
		SET text      = COALESCE($1, text),
		    due_date  = COALESCE($2, due_date),
		    completed = COALESCE($3, completed)
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, text, due_date, completed, created_at`
	err := s.db.QueryRowContext(ctx, query, upd.Text, upd.DueDate, upd.Completed, id, userID).
		Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.DueDate, &todo.Completed, &todo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrap("update todo", err)
	}
	return todo, nil
}

// DeleteTodo deletes the todo identified by (id, userID). Zero affected
// rows yields store.ErrNotFound.
func (s *Store) DeleteTodo(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap("delete todo", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete todo", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
