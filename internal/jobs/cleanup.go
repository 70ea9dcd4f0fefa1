package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// Cleanup purges appointments older than the retention window. It
// implements cron.Job.
type Cleanup struct {
	store         store.Store
	log           *logrus.Logger
	retentionDays int
}

func NewCleanup(st store.Store, log *logrus.Logger, retentionDays int) *Cleanup {
	return &Cleanup{store: st, log: log, retentionDays: retentionDays}
}

// Run executes one purge pass
func (c *Cleanup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -c.retentionDays).Format("2006-01-02")
	n, err := c.store.DeleteAppointmentsBefore(ctx, cutoff)
	if err != nil {
		c.log.Errorf("Appointment cleanup failed: %v", err)
		return
	}
	if n > 0 {
		c.log.Infof("Appointment cleanup removed %d appointments before %s", n, cutoff)
	}
}

// Start schedules the cleanup job on the given cron spec and starts the
// scheduler
func Start(schedule string, job *Cleanup) (*cron.Cron, error) {
	cr := cron.New()
	if _, err := cr.AddJob(schedule, job); err != nil {
		return nil, err
	}
	cr.Start()
	return cr, nil
}
