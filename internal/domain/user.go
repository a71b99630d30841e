package domain

import (
	"context"
	"time"
)

// User represents a principal that can authenticate against the login surface.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Password hash is not serialized to JSON
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest represents the request to login a user
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateUser creates a new user
	CreateUser(ctx context.Context, user *User) error

	// FindUserByEmail finds a user by email
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// FindUserByID finds a user by ID
	FindUserByID(ctx context.Context, id string) (*User, error)
}
