package models

import "time"

// AccessToken is an opaque bearer credential. Only the SHA-256 of the
// secret half is stored; the plaintext is disclosed once at issuance.
type AccessToken struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"not null"`
	TokenHash  string     `json:"-" gorm:"uniqueIndex;not null"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName returns the database table name for the AccessToken model.
func (AccessToken) TableName() string {
	return "access_tokens"
}
