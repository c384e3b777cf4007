// Package sqlstore implements the repository interfaces on a relational database via gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityStore struct {
	db *gorm.DB
}

func NewActivityStore(db *gorm.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	activity.Timestamp = activity.Timestamp.UTC()
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (s *ActivityStore) CountByGoal(ctx context.Context, goalID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).Where("goal_id = ?", goalID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count activities for goal %s: %w", goalID, err)
	}
	return int(n), nil
}

func (s *ActivityStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	err := s.db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return &activity, nil
}

func (s *ActivityStore) ListUserActivities(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return activities, nil
}

func (s *ActivityStore) DeleteActivity(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
