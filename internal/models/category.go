package models

import "time"

// ProductCategory groups products for catalog browsing.
type ProductCategory struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for the ProductCategory model.
func (ProductCategory) TableName() string {
	return "product_categories"
}
