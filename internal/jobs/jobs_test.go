package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubZones struct {
	summary *services.ReassignSummary
	err     error
	calls   int
}

func (s *stubZones) ReassignAll(context.Context) (*services.ReassignSummary, error) {
	s.calls++
	return s.summary, s.err
}

type stubNotifications struct {
	sent    int
	deleted int64
	err     error
	hasCtx  bool
}

func (s *stubNotifications) CheckGoalsEndingSoon(ctx context.Context) (int, error) {
	_, s.hasCtx = ctx.Deadline()
	return s.sent, s.err
}

func (s *stubNotifications) DeleteExpiredNotifications(context.Context) (int64, error) {
	return s.deleted, s.err
}

func TestZoneReassigner(t *testing.T) {
	zones := &stubZones{summary: &services.ReassignSummary{Processed: 3, Assigned: 2}}
	job := NewZoneReassigner(zones)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, zones.calls)
	assert.Equal(t, "zone_reassign", job.Name())

	zones.err = errors.New("store down")
	err := job.Run(context.Background())
	assert.ErrorIs(t, err, zones.err)
}

func TestGoalReminderAndPurge(t *testing.T) {
	notifications := &stubNotifications{sent: 2, deleted: 4}

	assert.NoError(t, NewGoalReminder(notifications).Run(context.Background()))
	assert.NoError(t, NewNotificationPurge(notifications).Run(context.Background()))

	notifications.err = errors.New("timeout")
	assert.Error(t, NewGoalReminder(notifications).Run(context.Background()))
	assert.Error(t, NewNotificationPurge(notifications).Run(context.Background()))
}

func TestRunWithTimeoutSetsDeadlineAndSwallowsErrors(t *testing.T) {
	notifications := &stubNotifications{err: errors.New("boom")}
	run := RunWithTimeout(NewGoalReminder(notifications), time.Second)

	assert.NotPanics(t, run)
	assert.True(t, notifications.hasCtx)
}
