package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/store/memory"
)

func TestCleanupPurgesOldAppointments(t *testing.T) {
	ctx := context.Background()
	st, err := memory.New("")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	user, err := st.CreateUser(ctx, "thomas", "hash")
	if err != nil {
		t.Fatalf("user: %v", err)
	}

	old := time.Now().AddDate(0, 0, -120).Format("2006-01-02")
	recent := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	for _, d := range []string{old, recent} {
		if _, err := st.CreateAppointment(ctx, user.ID, d, "14:00"); err != nil {
			t.Fatalf("book %s: %v", d, err)
		}
	}

	NewCleanup(st, logger, 90).Run()

	appts, err := st.ListAppointmentsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment left, got %d", len(appts))
	}
	if appts[0].Date != recent {
		t.Errorf("wrong appointment kept: %s", appts[0].Date)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	st, _ := memory.New("")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if _, err := Start("not a cron spec", NewCleanup(st, logger, 90)); err == nil {
		t.Error("expected error for malformed schedule")
	}
}
