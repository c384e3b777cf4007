package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/sirupsen/logrus"
)

const goalReminderWindow = 24 * time.Hour

type NotificationService struct {
	repo     repository.NotificationStore
	goalRepo repository.GoalStore
	now      func() time.Time
}

func NewNotificationService(repo repository.NotificationStore, goalRepo repository.GoalStore) *NotificationService {
	return &NotificationService{
		repo:     repo,
		goalRepo: goalRepo,
		now:      time.Now,
	}
}

// CreateNotification stores a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID, notifType, title, message string, targetID *string) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns the user's unexpired notifications, newest first
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID, s.now())
}

func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, userID, notifID string) error {
	return mapNotFound(s.repo.MarkAsRead(ctx, userID, notifID))
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notifID string) error {
	return mapNotFound(s.repo.DeleteNotification(ctx, userID, notifID))
}

func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredNotifications(ctx, s.now())
}

// CheckGoalsEndingSoon notifies owners of open goals that end within the next
// 24 hours. Each goal is announced at most once.
func (s *NotificationService) CheckGoalsEndingSoon(ctx context.Context) (int, error) {
	now := s.now()
	goals, err := s.goalRepo.ListGoalsEndingBetween(ctx, now, now.Add(goalReminderWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch goals: %w", err)
	}

	sent := 0
	for _, goal := range goals {
		if !goal.Open(now) {
			continue
		}

		already, err := s.repo.HasNotificationForTarget(ctx, goal.UserID, models.NotificationGoalEndingSoon, goal.ID)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to check reminders for goal %s", goal.ID)
			continue
		}
		if already {
			continue
		}

		goalID := goal.ID
		message := fmt.Sprintf("Goal \"%s\" ends soon: %d of %d done.", goal.Title, goal.CurrentCount, goal.TargetCount)
		err = s.CreateNotification(ctx, goal.UserID, models.NotificationGoalEndingSoon, "Goal ending soon", message, &goalID)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send goal ending soon notification for goal %s", goal.ID)
			continue
		}
		sent++
	}

	return sent, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
