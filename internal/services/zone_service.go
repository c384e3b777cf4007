package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/geo"
	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/observability"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ZoneService manages zones and resolves which zone a property belongs to.
type ZoneService struct {
	zones      repository.ZoneStore
	properties repository.PropertyStore
	now        func() time.Time
}

func NewZoneService(zones repository.ZoneStore, properties repository.PropertyStore) *ZoneService {
	return &ZoneService{zones: zones, properties: properties, now: time.Now}
}

// ZoneInput is the writable part of a zone.
type ZoneInput struct {
	Name            string          `json:"name"`
	Color           string          `json:"color"`
	Coordinates     []models.LatLng `json:"coordinates"`
	AssignedUserIDs []string        `json:"assigned_user_ids"`
}

func (in ZoneInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("zone name is required")
	}
	if len(in.Coordinates) < 3 {
		return validationError("a zone needs at least 3 vertices, got %d", len(in.Coordinates))
	}
	for i, c := range in.Coordinates {
		if err := validateLatLng(c); err != nil {
			return validationError("vertex %d: %v", i, err)
		}
	}
	return nil
}

func validateLatLng(p models.LatLng) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", p.Lng)
	}
	return nil
}

func (s *ZoneService) CreateZone(ctx context.Context, in ZoneInput) (*models.Zone, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	assigned := in.AssignedUserIDs
	if assigned == nil {
		assigned = []string{}
	}
	zone := &models.Zone{
		Name:            strings.TrimSpace(in.Name),
		Color:           in.Color,
		Coordinates:     in.Coordinates,
		AssignedUserIDs: assigned,
	}
	if err := s.zones.CreateZone(ctx, zone); err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}
	logger.Log.WithField("zone_id", zone.ID).Info("Zone created")
	return zone, nil
}

func (s *ZoneService) GetZone(ctx context.Context, id string) (*models.Zone, error) {
	zone, err := s.zones.GetZoneByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	return zone, nil
}

func (s *ZoneService) ListZones(ctx context.Context) ([]models.Zone, error) {
	return s.zones.ListZones(ctx)
}

func (s *ZoneService) UpdateZone(ctx context.Context, id string, in ZoneInput) (*models.Zone, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	zone, err := s.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	zone.Name = strings.TrimSpace(in.Name)
	zone.Color = in.Color
	zone.Coordinates = in.Coordinates
	zone.AssignedUserIDs = in.AssignedUserIDs
	if zone.AssignedUserIDs == nil {
		zone.AssignedUserIDs = []string{}
	}

	if err := s.zones.UpdateZone(ctx, zone); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update zone: %w", err)
	}
	return zone, nil
}

// DeleteZone removes the zone. Properties keep their stale zone id until the
// next re-assignment run.
func (s *ZoneService) DeleteZone(ctx context.Context, id string) error {
	if err := s.zones.DeleteZone(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	logger.Log.WithField("zone_id", id).Info("Zone deleted")
	return nil
}

// Locate returns the first stored zone containing point, or nil.
func (s *ZoneService) Locate(ctx context.Context, point models.LatLng) (*models.Zone, error) {
	if err := validateLatLng(point); err != nil {
		return nil, validationError("%v", err)
	}
	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	matches := geo.ZonesContaining(point, zones)
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		logger.Log.WithFields(logrus.Fields{
			"lat":     point.Lat,
			"lng":     point.Lng,
			"matches": len(matches),
		}).Debug("Point falls in overlapping zones, using the first")
	}
	return &matches[0], nil
}

// ReassignSummary reports what one re-assignment run changed.
type ReassignSummary struct {
	Processed int       `json:"processed"`
	Assigned  int       `json:"assigned"`
	Cleared   int       `json:"cleared"`
	Unchanged int       `json:"unchanged"`
	Failed    int       `json:"failed"`
	Finished  time.Time `json:"finished_at"`
}

// ReassignAll walks every geocoded property and stores the zone its coordinate
// falls in, clearing the zone when none matches. A failed write is logged and
// counted; the run continues with the next property.
func (s *ZoneService) ReassignAll(ctx context.Context) (*ReassignSummary, error) {
	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.ListGeocodedProperties(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ReassignSummary{}
	for i := range properties {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		p := &properties[i]
		point, ok := p.Location()
		if !ok {
			continue
		}
		summary.Processed++

		var next *string
		if zone, found := geo.FindZoneForPoint(point, zones); found {
			id := zone.ID
			next = &id
		}

		if sameZone(p.ZoneID, next) {
			summary.Unchanged++
			continue
		}
		if err := s.properties.SetPropertyZone(ctx, p.ID, next); err != nil {
			logger.Log.WithError(err).WithField("property_id", p.ID).Warn("Failed to store property zone")
			summary.Failed++
			continue
		}
		if next == nil {
			summary.Cleared++
		} else {
			summary.Assigned++
		}
	}

	summary.Finished = s.now()
	observability.RecordZoneReassignment(summary.Assigned, summary.Cleared, summary.Unchanged, summary.Finished)
	logger.Log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"assigned":  summary.Assigned,
		"cleared":   summary.Cleared,
		"unchanged": summary.Unchanged,
		"failed":    summary.Failed,
	}).Info("Zone re-assignment finished")
	return summary, nil
}

func sameZone(a, b *string) bool {
	if a == nil || *a == "" {
		return b == nil
	}
	return b != nil && *a == *b
}

// PropertiesForUser returns the geocoded properties lying inside any zone the
// user is assigned to, tested against the polygons rather than stored zone ids.
func (s *ZoneService) PropertiesForUser(ctx context.Context, userID string) ([]models.Property, error) {
	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Zone, 0, len(zones))
	for _, z := range zones {
		if z.AssignedTo(userID) {
			mine = append(mine, z)
		}
	}
	if len(mine) == 0 {
		return []models.Property{}, nil
	}

	properties, err := s.properties.ListGeocodedProperties(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Property{}
	for _, p := range properties {
		point, ok := p.Location()
		if !ok {
			continue
		}
		if _, found := geo.FindZoneForPoint(point, mine); found {
			out = append(out, p)
		}
	}
	return out, nil
}
