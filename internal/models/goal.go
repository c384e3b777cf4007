package models

import (
	"time"
)

// Goal is a per-user target count for one category. CurrentCount and IsCompleted
// are derived from the activity log and only written by progress recomputation.
type Goal struct {
	ID           string       `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	UserID       string       `bson:"user_id" json:"user_id" gorm:"size:36;not null;index"`
	Title        string       `bson:"title" json:"title" gorm:"not null"`
	Description  string       `bson:"description" json:"description"`
	Category     GoalCategory `bson:"category" json:"category" gorm:"size:32;not null;index"`
	TargetCount  int          `bson:"target_count" json:"target_count" gorm:"not null"`
	CurrentCount int          `bson:"current_count" json:"current_count" gorm:"not null;default:0"`
	StartDate    time.Time    `bson:"start_date" json:"start_date"`
	EndDate      *time.Time   `bson:"end_date" json:"end_date,omitempty"`
	IsCompleted  bool         `bson:"is_completed" json:"is_completed" gorm:"not null;default:false;index"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

// Open reports whether the goal can still receive activities at the given time.
func (g *Goal) Open(now time.Time) bool {
	if g.IsCompleted {
		return false
	}
	return g.EndDate == nil || g.EndDate.After(now)
}

// GoalTemplate describes one of the goals every new user starts with.
type GoalTemplate struct {
	Title       string
	Description string
	Category    GoalCategory
	TargetCount int
}

// DefaultGoalTemplates is the goal set instantiated on account creation.
var DefaultGoalTemplates = []GoalTemplate{
	{Title: "Daily outreach", Description: "Calls and visits to owners and clients", Category: CategoryActivity, TargetCount: 50},
	{Title: "Valuations", Description: "Captured property valuations (DPV)", Category: CategoryDPV, TargetCount: 10},
	{Title: "Neighbourhood news", Description: "News items registered in your zones", Category: CategoryNews, TargetCount: 20},
	{Title: "Assignments", Description: "Clients assigned to properties", Category: CategoryAssignment, TargetCount: 5},
	{Title: "Located tenants", Description: "Properties whose occupant was located", Category: CategoryLocatedTenants, TargetCount: 10},
	{Title: "Phone numbers", Description: "Contact phones added to properties", Category: CategoryAddedPhones, TargetCount: 20},
	{Title: "Empty properties", Description: "Properties confirmed as empty", Category: CategoryEmptyProperties, TargetCount: 10},
	{Title: "New properties", Description: "Properties added to the portfolio", Category: CategoryNewProperties, TargetCount: 10},
	{Title: "General", Description: "Any other logged work", Category: CategoryGeneral, TargetCount: 25},
}
