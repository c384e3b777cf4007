package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const notificationTTL = 7 * 24 * time.Hour

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	if notif.ID == "" {
		notif.ID = uuid.NewString()
	}
	notif.CreatedAt = time.Now().UTC()
	notif.ExpiresAt = notif.CreatedAt.Add(notificationTTL)

	if err := s.db.WithContext(ctx).Create(notif).Error; err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *NotificationStore) GetUserNotifications(ctx context.Context, userID string, now time.Time) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now.UTC()).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationStore) HasNotificationForTarget(ctx context.Context, userID, notifType, targetID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND target_id = ?", userID, notifType, targetID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to count notifications: %w", err)
	}
	return n > 0, nil
}

func (s *NotificationStore) MarkAsRead(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *NotificationStore) DeleteNotification(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Notification{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *NotificationStore) DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Notification{}, "expires_at <= ?", now.UTC())
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", res.Error)
	}
	logrus.Infof("Deleted %d expired notifications", res.RowsAffected)
	return res.RowsAffected, nil
}
