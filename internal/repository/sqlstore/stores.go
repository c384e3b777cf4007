package sqlstore

import (
	"context"

	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"gorm.io/gorm"
)

// NewSQLStores wires every store to tables of db. The schema must already be migrated.
func NewSQLStores(db *gorm.DB) *repository.Stores {
	return &repository.Stores{
		Activities:    NewActivityStore(db),
		Goals:         NewGoalStore(db),
		Users:         NewUserStore(db),
		Zones:         NewZoneStore(db),
		Properties:    NewPropertyStore(db),
		Notifications: NewNotificationStore(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
