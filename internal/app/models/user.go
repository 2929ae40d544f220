package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"yoga@studio.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	FirstName string    `json:"firstName" db:"first_name" example:"Jane"`
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`
	Admin     bool      `json:"admin" db:"admin" example:"false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}
