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

type PropertyStore struct {
	db *gorm.DB
}

func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

func (s *PropertyStore) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (s *PropertyStore) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := s.db.WithContext(ctx).First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (s *PropertyStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *PropertyStore) ListGeocodedProperties(ctx context.Context) ([]models.Property, error) {
	return s.find(s.db.WithContext(ctx).Where("latitude IS NOT NULL AND longitude IS NOT NULL"))
}

func (s *PropertyStore) SetPropertyZone(ctx context.Context, id string, zoneID *string) error {
	res := s.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(map[string]interface{}{
		"zone_id":    zoneID,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set property zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PropertyStore) SetLocated(ctx context.Context, id string, located bool) (*models.Property, error) {
	res := s.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_located": located,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return s.GetPropertyByID(ctx, id)
}

func (s *PropertyStore) find(q *gorm.DB) ([]models.Property, error) {
	properties := []models.Property{}
	if err := q.Order("created_at ASC, id ASC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}
