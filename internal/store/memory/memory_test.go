package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	user, err := s.CreateUser(ctx, "thomas", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateTodo(ctx, user.ID, "Aufgabe", "2025-12-01"); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if _, err := s.CreateAppointment(ctx, user.ID, "2025-12-01", "14:00"); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	// a fresh store on the same file sees everything
	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	loaded, err := s2.GetUserByUsername(ctx, "thomas")
	if err != nil {
		t.Fatalf("user after reopen: %v", err)
	}
	if loaded.ID != user.ID {
		t.Errorf("user id: got %d want %d", loaded.ID, user.ID)
	}
	todos, _ := s2.ListTodosByUser(ctx, user.ID)
	if len(todos) != 1 {
		t.Errorf("todos after reopen: got %d", len(todos))
	}
	appts, _ := s2.ListAppointmentsByUser(ctx, user.ID)
	if len(appts) != 1 {
		t.Errorf("appointments after reopen: got %d", len(appts))
	}
}

func TestPasswordHashSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	s, _ := New(path)
	if _, err := s.CreateUser(ctx, "thomas", "bcrypt-hash"); err != nil {
		t.Fatalf("create: %v", err)
	}

	s2, _ := New(path)
	user, err := s2.GetUserByUsername(ctx, "thomas")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.PasswordHash != "bcrypt-hash" {
		t.Errorf("hash lost on reload: %q", user.PasswordHash)
	}
}

func TestIDsAreMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	s, _ := New("")
	user, _ := s.CreateUser(ctx, "thomas", "hash")

	t1, _ := s.CreateTodo(ctx, user.ID, "a", "2025-12-01")
	t2, _ := s.CreateTodo(ctx, user.ID, "b", "2025-12-01")
	if t2.ID != t1.ID+1 {
		t.Fatalf("ids: %d then %d", t1.ID, t2.ID)
	}

	// deleting the highest id frees it for reuse
	if err := s.DeleteTodo(ctx, t2.ID, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	t3, _ := s.CreateTodo(ctx, user.ID, "c", "2025-12-01")
	if t3.ID != t2.ID {
		t.Errorf("expected id %d reused, got %d", t2.ID, t3.ID)
	}
}

func TestSlotConflict(t *testing.T) {
	ctx := context.Background()
	s, _ := New("")
	u1, _ := s.CreateUser(ctx, "thomas", "hash")
	u2, _ := s.CreateUser(ctx, "anna", "hash")

	if _, err := s.CreateAppointment(ctx, u1.ID, "2025-12-01", "14:00"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := s.CreateAppointment(ctx, u2.ID, "2025-12-01", "14:00"); !errors.Is(err, store.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := s.CreateAppointment(ctx, u2.ID, "2025-12-01", "14:30"); err != nil {
		t.Errorf("different slot must book: %v", err)
	}
}

func TestDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, _ := New("")

	if _, err := s.CreateUser(ctx, "thomas", "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, "thomas", "other"); !errors.Is(err, store.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDeleteAppointmentsBefore(t *testing.T) {
	ctx := context.Background()
	s, _ := New("")
	user, _ := s.CreateUser(ctx, "thomas", "hash")

	for _, d := range []string{"2025-01-10", "2025-02-10", "2025-03-10"} {
		if _, err := s.CreateAppointment(ctx, user.ID, d, "14:00"); err != nil {
			t.Fatalf("book %s: %v", d, err)
		}
	}

	n, err := s.DeleteAppointmentsBefore(ctx, "2025-02-10")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged: got %d want 1", n)
	}
	appts, _ := s.ListAppointmentsByUser(ctx, user.ID)
	if len(appts) != 2 {
		t.Errorf("remaining: got %d want 2", len(appts))
	}
	for _, a := range appts {
		if a.Date < "2025-02-10" {
			t.Errorf("appointment on %s should have been purged", a.Date)
		}
	}
}

func TestUpdateTodoPartial(t *testing.T) {
	ctx := context.Background()
	s, _ := New("")
	user, _ := s.CreateUser(ctx, "thomas", "hash")
	todo, _ := s.CreateTodo(ctx, user.ID, "original", "2025-12-01")

	newText := "renamed"
	updated, err := s.UpdateTodo(ctx, todo.ID, user.ID, models.TodoUpdate{Text: &newText})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != "renamed" {
		t.Errorf("text: got %q", updated.Text)
	}
	if updated.DueDate != "2025-12-01" {
		t.Errorf("due date must survive partial update, got %q", updated.DueDate)
	}
	if updated.Completed {
		t.Error("completed must survive partial update")
	}
}
