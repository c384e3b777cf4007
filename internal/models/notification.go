package models

import (
	"time"
)

const NotificationGoalEndingSoon = "goal_ending_soon"

type Notification struct {
	ID        string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `bson:"user_id" json:"user_id" gorm:"size:36;not null;index"`
	Type      string    `bson:"type" json:"type" gorm:"size:32;index"`                      // e.g. "goal_ending_soon"
	Title     string    `bson:"title" json:"title"`                                         // Short headline
	Message   string    `bson:"message" json:"message"`                                     // Descriptive content
	Read      bool      `bson:"read" json:"read"`                                           // True if user viewed it
	TargetID  *string   `bson:"target_id,omitempty" json:"target_id,omitempty" gorm:"size:36"` // Optional reference to a goal
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at" gorm:"index"` // For auto-deletion after 7 days
}
