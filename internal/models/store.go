package models

import "time"

// BusinessTypes lists the accepted values for Store.BusinessType.
var BusinessTypes = []string{
	"retail", "wholesale", "service", "manufacturing", "ecommerce", "restaurant", "other",
}

// Store holds the business details a user fills in after signup.
// One-to-one with User, upserted on the owning user id.
type Store struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	Name             string    `json:"name" gorm:"not null"`
	BusinessType     string    `json:"business_type" gorm:"not null"`
	NatureOfBusiness string    `json:"nature_of_business" gorm:"not null"`
	Phone            *string   `json:"phone"`
	Address          *string   `json:"address"`
	City             *string   `json:"city"`
	State            *string   `json:"state"`
	Country          *string   `json:"country"`
	Website          *string   `json:"website"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Store model.
func (Store) TableName() string {
	return "stores"
}
