package models

import (
	"time"
)

// User is an account row from the users table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Email        string    `json:"email" db:"email" example:"dean@university.edu"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" example:"dean"`
	FirstName    string    `json:"first_name" db:"first_name" example:"Ada"`
	LastName     string    `json:"last_name" db:"last_name" example:"Lovelace"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ActorID implements auth.Actor
func (u *User) ActorID() int64 { return u.ID }

// ActorRole implements auth.Actor
func (u *User) ActorRole() Role { return u.Role }
