package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection("properties"),
	}
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		logrus.WithError(err).Error("Failed to insert property")
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (r *PropertyRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	return r.find(ctx, bson.M{})
}

// ListGeocodedProperties returns properties that have both coordinates set.
func (r *PropertyRepository) ListGeocodedProperties(ctx context.Context) ([]models.Property, error) {
	return r.find(ctx, bson.M{
		"latitude":  bson.M{"$ne": nil},
		"longitude": bson.M{"$ne": nil},
	})
}

func (r *PropertyRepository) SetPropertyZone(ctx context.Context, id string, zoneID *string) error {
	update := bson.M{"$set": bson.M{"zone_id": zoneID, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set property zone: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) SetLocated(ctx context.Context, id string, located bool) (*models.Property, error) {
	update := bson.M{"$set": bson.M{"is_located": located, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &property, nil
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}
