package repository

import (
	"context"
	"errors"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
)

// ErrNotFound is returned by every store when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ActivityStore persists the activity log. Rows are never updated.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	CountByGoal(ctx context.Context, goalID string) (int, error)
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	ListUserActivities(ctx context.Context, userID string, limit int) ([]models.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// GoalStore persists goals and their derived progress.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoalByID(ctx context.Context, id string) (*models.Goal, error)
	// FindOpenGoals returns the user's goals in category that are not completed and
	// whose end date is unset or after now.
	FindOpenGoals(ctx context.Context, userID string, category models.GoalCategory, now time.Time) ([]models.Goal, error)
	UpdateProgress(ctx context.Context, id string, currentCount int, isCompleted bool, updatedAt time.Time) (*models.Goal, error)
	ListUserGoals(ctx context.Context, userID string) ([]models.Goal, error)
	// ListGoalsEndingBetween returns open goals whose end date falls in (from, to].
	ListGoalsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Goal, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastActive(ctx context.Context, id string, at time.Time) error
}

// ZoneStore persists zones. ListZones returns them in creation order.
type ZoneStore interface {
	CreateZone(ctx context.Context, zone *models.Zone) error
	GetZoneByID(ctx context.Context, id string) (*models.Zone, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeleteZone(ctx context.Context, id string) error
}

type PropertyStore interface {
	CreateProperty(ctx context.Context, property *models.Property) error
	GetPropertyByID(ctx context.Context, id string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
	ListGeocodedProperties(ctx context.Context) ([]models.Property, error)
	// SetPropertyZone writes the zone assignment; nil clears it.
	SetPropertyZone(ctx context.Context, id string, zoneID *string) error
	SetLocated(ctx context.Context, id string, located bool) (*models.Property, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID string, now time.Time) ([]models.Notification, error)
	HasNotificationForTarget(ctx context.Context, userID, notifType, targetID string) (bool, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	DeleteNotification(ctx context.Context, userID, id string) error
	DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error)
}

// Stores bundles one implementation of every store behind the selected backend.
type Stores struct {
	Activities    ActivityStore
	Goals         GoalStore
	Users         UserStore
	Zones         ZoneStore
	Properties    PropertyStore
	Notifications NotificationStore

	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}
