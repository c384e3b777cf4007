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

type ZoneStore struct {
	db *gorm.DB
}

func NewZoneStore(db *gorm.DB) *ZoneStore {
	return &ZoneStore{db: db}
}

func (s *ZoneStore) CreateZone(ctx context.Context, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(zone).Error; err != nil {
		return fmt.Errorf("failed to insert zone: %w", err)
	}
	return nil
}

func (s *ZoneStore) GetZoneByID(ctx context.Context, id string) (*models.Zone, error) {
	var zone models.Zone
	err := s.db.WithContext(ctx).First(&zone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find zone: %w", err)
	}
	return &zone, nil
}

func (s *ZoneStore) ListZones(ctx context.Context) ([]models.Zone, error) {
	zones := []models.Zone{}
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch zones: %w", err)
	}
	return zones, nil
}

func (s *ZoneStore) UpdateZone(ctx context.Context, zone *models.Zone) error {
	zone.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(&models.Zone{}).Where("id = ?", zone.ID).
		Select("name", "color", "coordinates", "assigned_user_ids", "updated_at").
		Updates(zone)
	if res.Error != nil {
		return fmt.Errorf("failed to update zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *ZoneStore) DeleteZone(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Zone{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
