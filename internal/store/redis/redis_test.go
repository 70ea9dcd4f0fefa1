package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/thomaskerpen/CopilotTest/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	s, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	name := fmt.Sprintf("t-%s", uuid.New().String()[:8])
	created, err := s.CreateUser(ctx, name, "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := s.GetUserByUsername(ctx, name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ID != created.ID || fetched.PasswordHash != "hash" {
		t.Errorf("round trip mismatch: %+v", fetched)
	}

	if _, err := s.CreateUser(ctx, name, "other"); !errors.Is(err, store.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSlotConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	name := fmt.Sprintf("t-%s", uuid.New().String()[:8])
	user, err := s.CreateUser(ctx, name, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	date := "2099-" + uuid.New().String()[:5]
	if _, err := s.CreateAppointment(ctx, user.ID, date, "14:00"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := s.CreateAppointment(ctx, user.ID, date, "14:00"); !errors.Is(err, store.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}
