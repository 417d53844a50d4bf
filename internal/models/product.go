package models

import "time"

// Product is a sellable item belonging to a store, tagged with one or
// more categories.
type Product struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	StoreID       int64             `json:"store_id" gorm:"index;not null"`
	Name          string            `json:"name" gorm:"not null"`
	SKU           *string           `json:"sku" gorm:"column:sku;uniqueIndex"`
	Description   *string           `json:"description"`
	Price         float64           `json:"price" gorm:"type:numeric(12,2);not null"`
	StockQuantity int               `json:"stock_quantity" gorm:"not null;default:0"`
	Store         *Store            `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Categories    []ProductCategory `json:"categories,omitempty" gorm:"many2many:product_category_product"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName returns the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}
