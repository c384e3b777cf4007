package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/observability"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// GoalService owns goal creation and progress recomputation.
type GoalService struct {
	goals      repository.GoalStore
	activities repository.ActivityStore
	now        func() time.Time
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(goals repository.GoalStore, activities repository.ActivityStore) *GoalService {
	return &GoalService{
		goals:      goals,
		activities: activities,
		now:        time.Now,
	}
}

// RecomputeGoalProgress sets the goal's current count to the number of activities
// attributed to it and marks it completed once the target is reached. It never
// increments, so repeated or concurrent calls converge on the same stored value.
func (s *GoalService) RecomputeGoalProgress(ctx context.Context, goalID string) (*models.Goal, error) {
	goal, err := s.goals.GetGoalByID(ctx, goalID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ActivityLoggerError{Op: "recompute " + goalID, Err: ErrGoalNotFound}
	}
	if err != nil {
		return nil, &ActivityLoggerError{Op: "recompute " + goalID, Msg: "load goal", Err: err}
	}

	count, err := s.activities.CountByGoal(ctx, goalID)
	if err != nil {
		return nil, &ActivityLoggerError{Op: "recompute " + goalID, Msg: "count activities", Err: err}
	}

	completed := count >= goal.TargetCount
	updated, err := s.goals.UpdateProgress(ctx, goalID, count, completed, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ActivityLoggerError{Op: "recompute " + goalID, Err: ErrGoalNotFound}
	}
	if err != nil {
		return nil, &ActivityLoggerError{Op: "recompute " + goalID, Msg: "update goal", Err: err}
	}

	if completed && !goal.IsCompleted {
		observability.RecordGoalCompleted(string(goal.Category))
		logger.Log.WithFields(logrus.Fields{
			"goal_id": goalID,
			"user_id": goal.UserID,
			"count":   count,
		}).Info("Goal completed")
	}

	return updated, nil
}

// ListUserGoals returns every goal owned by the user.
func (s *GoalService) ListUserGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	goals, err := s.goals.ListUserGoals(ctx, userID)
	if err != nil {
		logger.Log.WithField("user_id", userID).WithError(err).Error("Failed to fetch user goals")
		return nil, err
	}
	return goals, nil
}

// GetUserGoal returns the goal only if it belongs to userID.
func (s *GoalService) GetUserGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	goal, err := s.goals.GetGoalByID(ctx, goalID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// CreateGoalInput is the caller-controlled part of a new goal.
type CreateGoalInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    models.GoalCategory `json:"category"`
	TargetCount int                 `json:"target_count"`
	StartDate   *time.Time          `json:"start_date,omitempty"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
}

// CreateGoal validates and stores a custom goal for the user.
func (s *GoalService) CreateGoal(ctx context.Context, userID string, in CreateGoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		logger.Log.Warn("Goal title is empty during creation")
		return nil, validationError("goal title is required")
	}
	if !in.Category.Valid() {
		return nil, validationError("unknown goal category %q", in.Category)
	}
	if in.TargetCount <= 0 {
		return nil, validationError("target_count must be positive")
	}

	now := s.now()
	start := now
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	var end *time.Time
	if in.EndDate != nil {
		e := in.EndDate.UTC()
		end = &e
	}
	if end != nil && !end.After(start) {
		return nil, validationError("end_date must be after start_date")
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Category:    in.Category,
		TargetCount: in.TargetCount,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.goals.CreateGoal(ctx, goal); err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	logger.Log.WithField("goal_id", goal.ID).Info("Goal created in service layer")
	return goal, nil
}

// CreateDefaultGoals instantiates the default goal set for a new user.
func (s *GoalService) CreateDefaultGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	now := s.now()
	created := make([]models.Goal, 0, len(models.DefaultGoalTemplates))
	for i, tpl := range models.DefaultGoalTemplates {
		// distinct creation times keep the default set in template order
		at := now.Add(time.Duration(i) * time.Millisecond)
		goal := &models.Goal{
			UserID:      userID,
			Title:       tpl.Title,
			Description: tpl.Description,
			Category:    tpl.Category,
			TargetCount: tpl.TargetCount,
			StartDate:   now,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := s.goals.CreateGoal(ctx, goal); err != nil {
			return created, fmt.Errorf("failed to create default goal %s: %w", tpl.Category, err)
		}
		created = append(created, *goal)
	}
	return created, nil
}
