// Package models contains data models for the POS backend.
package models

import "time"

// Auth providers accepted for a user account.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Roles assignable to a user. Self-registered accounts default to OWNER.
const (
	RoleOwner   = "OWNER"
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
)

// User represents an account in the system. Local accounts carry a bcrypt
// password hash; Google accounts carry the provider subject id and a random
// placeholder hash that is never communicated.
type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string     `json:"-" gorm:"not null"`
	Role            string     `json:"role" gorm:"not null;default:OWNER"`
	AuthProvider    string     `json:"auth_provider" gorm:"not null;default:local"`
	GoogleID        *string    `json:"-" gorm:"uniqueIndex"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	Store           *Store     `json:"store,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
