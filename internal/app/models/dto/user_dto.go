package dto

import (
	"time"

	"github.com/yogastudio/yoga-app/internal/app/models"
)

// UserDto is the public view of a user. The password hash is never part of it.
type UserDto struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"yoga@studio.com"`
	LastName  string    `json:"lastName" example:"Doe"`
	FirstName string    `json:"firstName" example:"Jane"`
	Admin     bool      `json:"admin" example:"false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserDto maps a user to its DTO
func NewUserDto(u *models.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
