package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalStore struct {
	db *gorm.DB
}

func NewGoalStore(db *gorm.DB) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	goal.StartDate = goal.StartDate.UTC()
	goal.CreatedAt = goal.CreatedAt.UTC()
	goal.UpdatedAt = goal.UpdatedAt.UTC()
	goal.EndDate = utcPtr(goal.EndDate)
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (s *GoalStore) GetGoalByID(ctx context.Context, id string) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).First(&goal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

func (s *GoalStore) FindOpenGoals(ctx context.Context, userID string, category models.GoalCategory, now time.Time) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND is_completed = ?", userID, category, false).
		Where("(end_date IS NULL OR end_date > ?)", now.UTC()).
		Order("created_at ASC, id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open goals: %w", err)
	}
	return goals, nil
}

// UpdateProgress uses a column map so zero values (count 0, completed false) are written.
func (s *GoalStore) UpdateProgress(ctx context.Context, id string, currentCount int, isCompleted bool, updatedAt time.Time) (*models.Goal, error) {
	res := s.db.WithContext(ctx).Model(&models.Goal{}).Where("id = ?", id).Updates(map[string]interface{}{
		"current_count": currentCount,
		"is_completed":  isCompleted,
		"updated_at":    updatedAt.UTC(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return s.GetGoalByID(ctx, id)
}

func (s *GoalStore) ListUserGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	return goals, nil
}

func (s *GoalStore) ListGoalsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.WithContext(ctx).
		Where("is_completed = ? AND end_date > ? AND end_date <= ?", false, from.UTC(), to.UTC()).
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals ending soon: %w", err)
	}
	return goals, nil
}
