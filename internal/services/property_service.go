package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elduverx/gruposmCRM-sub002/internal/geo"
	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ActivityRecorder is the part of ActivityLogger other services depend on.
type ActivityRecorder interface {
	LogActivity(ctx context.Context, actorID string, in LogActivityInput) (*models.Activity, error)
}

// PropertyService manages listings. Actions that count toward goals are logged
// after the property write and never fail it.
type PropertyService struct {
	properties repository.PropertyStore
	zones      repository.ZoneStore
	activities ActivityRecorder
}

func NewPropertyService(properties repository.PropertyStore, zones repository.ZoneStore, activities ActivityRecorder) *PropertyService {
	return &PropertyService{properties: properties, zones: zones, activities: activities}
}

// PropertyInput is the payload accepted when creating a property.
type PropertyInput struct {
	Title     string   `json:"title"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (s *PropertyService) CreateProperty(ctx context.Context, userID string, in PropertyInput) (*models.Property, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("property title is required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, validationError("latitude and longitude must be set together")
	}

	property := &models.Property{
		Title:     title,
		Address:   strings.TrimSpace(in.Address),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedBy: userID,
	}
	if point, ok := property.Location(); ok {
		if err := validateLatLng(point); err != nil {
			return nil, validationError("%v", err)
		}
		zones, err := s.zones.ListZones(ctx)
		if err != nil {
			return nil, err
		}
		if zone, found := geo.FindZoneForPoint(point, zones); found {
			id := zone.ID
			property.ZoneID = &id
		}
	}

	if err := s.properties.CreateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logBestEffort(ctx, userID, models.ActivityPropertyCreated, "Property created: "+property.Title, property.ID, nil)
	return property, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	property, err := s.properties.GetPropertyByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.properties.ListProperties(ctx)
}

// SetLocated stores the located flag. Switching it on logs a TENANT_LOCATED
// activity for the caller.
func (s *PropertyService) SetLocated(ctx context.Context, userID, id string, located bool) (*models.Property, error) {
	before, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.SetLocated(ctx, id, located)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	if located && !before.IsLocated {
		s.logBestEffort(ctx, userID, models.ActivityTenantLocated, "Tenant located: "+property.Title, property.ID,
			models.NewStatusMetadata("located"))
	}
	return property, nil
}

func (s *PropertyService) logBestEffort(ctx context.Context, userID string, t models.ActivityType, description, propertyID string, metadata *models.Metadata) {
	relatedType := "property"
	_, err := s.activities.LogActivity(ctx, userID, LogActivityInput{
		Type:        t,
		Description: description,
		RelatedID:   &propertyID,
		RelatedType: &relatedType,
		Metadata:    metadata,
	})
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"user_id":     userID,
			"property_id": propertyID,
			"type":        t,
		}).Warn("Failed to log property activity")
	}
}
