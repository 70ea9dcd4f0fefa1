package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// openTestDB connects to the database named by TEST_DB_CONN. The schema
// from db/migrations is expected to be applied already.
func openTestDB(t *testing.T) *Store {
	t.Helper()
	conn := os.Getenv("TEST_DB_CONN")
	if conn == "" {
		t.Skip("TEST_DB_CONN not set")
	}
	db, err := sql.Open("postgres", conn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func uniqueUsername() string {
	return fmt.Sprintf("t-%s", uuid.New().String()[:8])
}

func TestUserUniqueness(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	name := uniqueUsername()
	if _, err := s.CreateUser(ctx, name, "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, name, "other"); !errors.Is(err, store.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSlotUniqueConstraint(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, uniqueUsername(), "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// a throwaway date keeps the test rerunnable against a shared db
	date := "2099-" + uuid.New().String()[:5]
	if _, err := s.CreateAppointment(ctx, user.ID, date, "14:00"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := s.CreateAppointment(ctx, user.ID, date, "14:00"); !errors.Is(err, store.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}

func TestTodoLifecycle(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, uniqueUsername(), "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	todo, err := s.CreateTodo(ctx, user.ID, "db task", "2025-12-01")
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}

	done := true
	updated, err := s.UpdateTodo(ctx, todo.ID, user.ID, models.TodoUpdate{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Text != "db task" {
		t.Errorf("partial update: %+v", updated)
	}

	if err := s.DeleteTodo(ctx, todo.ID, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTodo(ctx, todo.ID, user.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
