package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoStores wires every store to collections of db.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Activities:    NewActivityRepository(db),
		Goals:         NewGoalRepository(db),
		Users:         NewUserRepository(db),
		Zones:         NewZoneRepository(db),
		Properties:    NewPropertyRepository(db),
		Notifications: NewNotificationRepository(db),
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
		Close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}
