package models

import (
	"time"
)

// Activity is an append-only record of a unit of work performed by a user.
// A single user action may produce several rows, one per goal it counts toward.
type Activity struct {
	ID          string       `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	UserID      string       `bson:"user_id" json:"user_id" gorm:"size:36;not null;index"`
	GoalID      *string      `bson:"goal_id" json:"goal_id" gorm:"size:36;index"` // nil when the action counted toward no goal
	Type        ActivityType `bson:"type" json:"type" gorm:"size:32;not null"`
	Description string       `bson:"description" json:"description"`
	RelatedID   *string      `bson:"related_id,omitempty" json:"related_id,omitempty" gorm:"size:64"`
	RelatedType *string      `bson:"related_type,omitempty" json:"related_type,omitempty" gorm:"size:32"`
	Metadata    *Metadata    `bson:"metadata,omitempty" json:"metadata,omitempty" gorm:"serializer:json"`
	Points      int          `bson:"points" json:"points" gorm:"not null;default:1"`
	Timestamp   time.Time    `bson:"timestamp" json:"timestamp" gorm:"not null;index"`
}

// Counted reports whether the activity is attributed to a goal.
func (a *Activity) Counted() bool {
	return a.GoalID != nil && *a.GoalID != ""
}
