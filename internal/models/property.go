package models

import "time"

// Property is a real-estate listing tracked by the CRM.
type Property struct {
	ID        string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	Title     string    `bson:"title" json:"title" gorm:"not null"`
	Address   string    `bson:"address" json:"address"`
	Latitude  *float64  `bson:"latitude" json:"latitude,omitempty"`
	Longitude *float64  `bson:"longitude" json:"longitude,omitempty"`
	ZoneID    *string   `bson:"zone_id" json:"zone_id,omitempty" gorm:"size:36;index"`
	IsLocated bool      `bson:"is_located" json:"is_located"`
	CreatedBy string    `bson:"created_by" json:"created_by" gorm:"size:36"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Location returns the stored coordinate; ok is false for properties that were
// never geocoded.
func (p *Property) Location() (LatLng, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *p.Latitude, Lng: *p.Longitude}, true
}
