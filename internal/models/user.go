package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	return role == RoleAdmin || role == RoleDriver
}

// User represents a user in the system
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LicenseNumber string             `bson:"license_number,omitempty" json:"license_number,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	LastLogin     *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a driver registration request
type RegisterRequest struct {
	Name          string `json:"name" binding:"required,min=2"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}
