package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/observability"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// LogActivityInput describes one user action to record.
type LogActivityInput struct {
	Type        models.ActivityType
	Description string
	RelatedID   *string
	RelatedType *string
	Metadata    *models.Metadata
	// Points defaults to 1 when zero.
	Points int
	// GoalID, when set, is the only goal the action counts toward.
	GoalID *string
}

// ProgressListener is told which user's goals may have changed.
type ProgressListener func(userID string)

// ActivityLogger records user actions and attributes them to open goals.
type ActivityLogger struct {
	activities repository.ActivityStore
	goals      repository.GoalStore
	users      repository.UserStore
	tracker    *GoalService
	now        func() time.Time

	mu        sync.RWMutex
	listeners []ProgressListener
}

func NewActivityLogger(activities repository.ActivityStore, goals repository.GoalStore, users repository.UserStore, tracker *GoalService) *ActivityLogger {
	return &ActivityLogger{
		activities: activities,
		goals:      goals,
		users:      users,
		tracker:    tracker,
		now:        time.Now,
	}
}

// OnProgress registers fn to run after every logged action.
func (l *ActivityLogger) OnProgress(fn ProgressListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// LogActivity records the action for actorID. One row is written per eligible
// goal, or a single uncounted row when none is eligible, and each touched goal is
// recomputed after its row is stored. The first row is returned.
//
// An actor that cannot be resolved to a stored user yields (nil, nil): the action
// is not recorded and that is not an error.
func (l *ActivityLogger) LogActivity(ctx context.Context, actorID string, in LogActivityInput) (*models.Activity, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return nil, nil
	}
	if _, err := l.users.GetUserByID(ctx, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.WithField("user_id", actorID).Debug("Activity actor not found, skipping")
			return nil, nil
		}
		return nil, &ActivityLoggerError{Op: "resolve actor", Err: err}
	}

	category, err := in.Type.Category()
	if err != nil {
		return nil, validationError("%v", err)
	}
	if in.Metadata != nil {
		if err := in.Metadata.Validate(); err != nil {
			return nil, validationError("%v", err)
		}
	}
	points := in.Points
	if points == 0 {
		points = 1
	}
	if points < 0 {
		return nil, validationError("points must be positive")
	}

	now := l.now()
	targets, err := l.targetGoals(ctx, actorID, category, in.GoalID, now)
	if err != nil {
		return nil, err
	}

	base := models.Activity{
		UserID:      actorID,
		Type:        in.Type,
		Description: in.Description,
		RelatedID:   in.RelatedID,
		RelatedType: in.RelatedType,
		Metadata:    in.Metadata,
		Points:      points,
		Timestamp:   now,
	}

	var first *models.Activity
	if len(targets) == 0 {
		activity := base
		if err := l.activities.CreateActivity(ctx, &activity); err != nil {
			return nil, &ActivityLoggerError{Op: "create activity", Err: err}
		}
		observability.RecordActivityCreated(string(in.Type), false)
		first = &activity
	}

	for _, goalID := range targets {
		activity := base
		id := goalID
		activity.GoalID = &id
		if err := l.activities.CreateActivity(ctx, &activity); err != nil {
			return nil, &ActivityLoggerError{Op: "create activity", Msg: "goal " + goalID, Err: err}
		}
		observability.RecordActivityCreated(string(in.Type), true)
		if first == nil {
			first = &activity
		}

		if _, err := l.tracker.RecomputeGoalProgress(ctx, goalID); err != nil {
			return nil, err
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": actorID,
		"type":    in.Type,
		"goals":   len(targets),
	}).Info("Activity logged")

	l.notify(actorID)
	return first, nil
}

func (l *ActivityLogger) targetGoals(ctx context.Context, userID string, category models.GoalCategory, explicit *string, now time.Time) ([]string, error) {
	if explicit != nil && *explicit != "" {
		goal, err := l.goals.GetGoalByID(ctx, *explicit)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && goal.UserID != userID) {
			return nil, &ActivityLoggerError{Op: "resolve goal " + *explicit, Err: ErrGoalNotFound}
		}
		if err != nil {
			return nil, &ActivityLoggerError{Op: "resolve goal " + *explicit, Err: err}
		}
		return []string{goal.ID}, nil
	}

	goals, err := l.goals.FindOpenGoals(ctx, userID, category, now)
	if err != nil {
		return nil, &ActivityLoggerError{Op: "find open goals", Err: err}
	}
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (l *ActivityLogger) notify(userID string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, fn := range l.listeners {
		fn(userID)
	}
}

// ListRecent returns the user's newest activities.
func (l *ActivityLogger) ListRecent(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return l.activities.ListUserActivities(ctx, userID, limit)
}

// DeleteActivity removes one row and recomputes the goal it counted toward.
func (l *ActivityLogger) DeleteActivity(ctx context.Context, id string) error {
	activity, err := l.activities.GetActivity(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &ActivityLoggerError{Op: "load activity", Err: err}
	}

	if err := l.activities.DeleteActivity(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return &ActivityLoggerError{Op: "delete activity", Err: err}
	}

	if activity.Counted() {
		if _, err := l.tracker.RecomputeGoalProgress(ctx, *activity.GoalID); err != nil {
			return err
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"activity_id": id,
		"user_id":     activity.UserID,
	}).Info("Activity deleted")

	l.notify(activity.UserID)
	return nil
}
