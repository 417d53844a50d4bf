package models

import "time"

// Branch is a physical location belonging to a store.
type Branch struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StoreID   int64     `json:"store_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Code      *string   `json:"code" gorm:"uniqueIndex"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	Country   *string   `json:"country"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	Store     *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Branch model.
func (Branch) TableName() string {
	return "branches"
}
