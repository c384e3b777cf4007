package models

import "time"

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Zone is a named polygon used to bucket properties. Coordinates are the polygon
// vertices in order; the last vertex connects back to the first.
type Zone struct {
	ID              string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	Name            string    `bson:"name" json:"name" gorm:"not null"`
	Color           string    `bson:"color" json:"color"`
	Coordinates     []LatLng  `bson:"coordinates" json:"coordinates" gorm:"serializer:json"`
	AssignedUserIDs []string  `bson:"assigned_user_ids" json:"assigned_user_ids" gorm:"serializer:json"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// AssignedTo reports whether userID is responsible for the zone.
func (z *Zone) AssignedTo(userID string) bool {
	for _, id := range z.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
