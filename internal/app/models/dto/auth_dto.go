package dto

import (
	"time"

	"github.com/yigit/admissions/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"dean@university.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	FirstName string      `json:"first_name" binding:"required,notblank,max=100" example:"Ada"`
	LastName  string      `json:"last_name" binding:"required,notblank,max=100" example:"Lovelace"`
	Email     string      `json:"email" binding:"required,email,max=255" example:"ada@example.com"`
	Password  string      `json:"password" binding:"required,password" example:"secret123"`
	Role      models.Role `json:"role" binding:"required,oneof=dean applicant" example:"applicant"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID        int64       `json:"id" example:"1"`
	Email     string      `json:"email" example:"ada@example.com"`
	FirstName string      `json:"first_name" example:"Ada"`
	LastName  string      `json:"last_name" example:"Lovelace"`
	Role      models.Role `json:"role" example:"applicant"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse strips private fields from a user
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type" example:"Bearer"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}
