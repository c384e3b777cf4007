package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ZoneRepository struct {
	collection *mongo.Collection
}

func NewZoneRepository(db *mongo.Database) *ZoneRepository {
	return &ZoneRepository{
		collection: db.Collection("zones"),
	}
}

func (r *ZoneRepository) CreateZone(ctx context.Context, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = zone.CreatedAt

	if _, err := r.collection.InsertOne(ctx, zone); err != nil {
		logger.Log.WithError(err).Error("Failed to insert zone")
		return fmt.Errorf("failed to insert zone: %w", err)
	}
	return nil
}

func (r *ZoneRepository) GetZoneByID(ctx context.Context, id string) (*models.Zone, error) {
	var zone models.Zone
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&zone)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find zone: %w", err)
	}
	return &zone, nil
}

// ListZones returns all zones ordered by creation, which is the order zone
// lookups resolve overlaps in.
func (r *ZoneRepository) ListZones(ctx context.Context) ([]models.Zone, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zones: %w", err)
	}
	defer cursor.Close(ctx)

	zones := []models.Zone{}
	if err := cursor.All(ctx, &zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones: %w", err)
	}
	return zones, nil
}

func (r *ZoneRepository) UpdateZone(ctx context.Context, zone *models.Zone) error {
	zone.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":              zone.Name,
		"color":             zone.Color,
		"coordinates":       zone.Coordinates,
		"assigned_user_ids": zone.AssignedUserIDs,
		"updated_at":        zone.UpdatedAt,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": zone.ID}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("zone_id", zone.ID).Error("Failed to update zone")
		return fmt.Errorf("failed to update zone: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ZoneRepository) DeleteZone(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
