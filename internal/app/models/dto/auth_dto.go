package dto

import "github.com/yogastudio/yoga-app/internal/pkg/validation"

// TokenTypeBearer is the token type reported by the login endpoint
const TokenTypeBearer = "Bearer"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"yoga@studio.com"`
	Password string `json:"password" validate:"required" example:"test!1234"`
}

// Validate checks the request before any lookup happens
func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// SignupRequest represents a user registration request
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=50" example:"jane@studio.com"`
	FirstName string `json:"firstName" validate:"required,min=3,max=20" example:"Jane"`
	LastName  string `json:"lastName" validate:"required,min=3,max=20" example:"Smith"`
	Password  string `json:"password" validate:"required,min=6,max=40" example:"secret123"`
}

// Validate checks field presence and sizes
func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

// JWTResponse is returned after a successful login
type JWTResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type" example:"Bearer"`
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"yoga@studio.com"`
	FirstName string `json:"firstName" example:"Admin"`
	LastName  string `json:"lastName" example:"Admin"`
	Admin     bool   `json:"admin" example:"true"`
}
