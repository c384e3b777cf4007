// Package scheduler runs the periodic jobs on cron schedules.
package scheduler

import (
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/jobs"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PurgeSchedule is when expired notifications are removed.
const PurgeSchedule = "@daily"

// Entry pairs a job with its cron expression.
type Entry struct {
	Spec    string
	Job     jobs.Job
	Timeout time.Duration
}

// Register adds every entry to c. An invalid expression aborts registration.
func Register(c *cron.Cron, entries ...Entry) error {
	for _, e := range entries {
		if _, err := c.AddFunc(e.Spec, jobs.RunWithTimeout(e.Job, e.Timeout)); err != nil {
			return fmt.Errorf("invalid schedule %q for job %s: %w", e.Spec, e.Job.Name(), err)
		}
		logger.Log.WithField("job", e.Job.Name()).WithField("schedule", e.Spec).Info("Scheduled job registered")
	}
	return nil
}

// Start registers entries on a new cron runner and starts it. Callers stop it
// with Stop on shutdown.
func Start(entries ...Entry) (*cron.Cron, error) {
	c := cron.New()
	if err := Register(c, entries...); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
