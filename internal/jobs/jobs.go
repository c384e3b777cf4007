// Package jobs holds the periodic maintenance work run by the scheduler.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// defaultTimeout bounds a single job run.
const defaultTimeout = 5 * time.Minute

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type zoneReassigner interface {
	ReassignAll(ctx context.Context) (*services.ReassignSummary, error)
}

// ZoneReassigner recomputes the zone of every geocoded property.
type ZoneReassigner struct {
	Zones zoneReassigner
}

func NewZoneReassigner(zones zoneReassigner) *ZoneReassigner {
	return &ZoneReassigner{Zones: zones}
}

func (j *ZoneReassigner) Name() string { return "zone_reassign" }

func (j *ZoneReassigner) Run(ctx context.Context) error {
	summary, err := j.Zones.ReassignAll(ctx)
	if err != nil {
		return fmt.Errorf("zone reassignment failed: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"assigned":  summary.Assigned,
		"cleared":   summary.Cleared,
		"failed":    summary.Failed,
	}).Info("Zone reassignment completed")
	return nil
}

type goalReminder interface {
	CheckGoalsEndingSoon(ctx context.Context) (int, error)
}

// GoalReminder warns owners about goals whose end date is close.
type GoalReminder struct {
	Notifications goalReminder
}

func NewGoalReminder(notifications goalReminder) *GoalReminder {
	return &GoalReminder{Notifications: notifications}
}

func (j *GoalReminder) Name() string { return "goal_reminder" }

func (j *GoalReminder) Run(ctx context.Context) error {
	sent, err := j.Notifications.CheckGoalsEndingSoon(ctx)
	if err != nil {
		return fmt.Errorf("goal reminder scan failed: %w", err)
	}
	logger.Log.WithField("sent", sent).Info("Goal reminder scan completed")
	return nil
}

type notificationPurger interface {
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

// NotificationPurge removes notifications past their expiry.
type NotificationPurge struct {
	Notifications notificationPurger
}

func NewNotificationPurge(notifications notificationPurger) *NotificationPurge {
	return &NotificationPurge{Notifications: notifications}
}

func (j *NotificationPurge) Name() string { return "notification_purge" }

func (j *NotificationPurge) Run(ctx context.Context) error {
	deleted, err := j.Notifications.DeleteExpiredNotifications(ctx)
	if err != nil {
		return fmt.Errorf("notification purge failed: %w", err)
	}
	logger.Log.WithField("deleted", deleted).Info("Expired notifications purged")
	return nil
}

// RunWithTimeout runs job with its own deadline and logs any failure. It is the
// function handed to the cron runner, so it never returns an error.
func RunWithTimeout(job Job, timeout time.Duration) func() {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			logger.Log.WithError(err).WithField("job", job.Name()).Error("Scheduled job failed")
			return
		}
		logger.Log.WithFields(logrus.Fields{
			"job":      job.Name(),
			"duration": time.Since(start).String(),
		}).Debug("Scheduled job finished")
	}
}
