package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a CRM agent account.
type User struct {
	ID             string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `bson:"hashed_password" json:"-"`
	Role           string    `bson:"role" json:"role" gorm:"size:16;not null"`
	LastActiveAt   time.Time `bson:"last_active_at" json:"last_active_at"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
