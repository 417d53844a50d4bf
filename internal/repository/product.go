package repository

import (
	"context"
	"fmt"

	"github.com/jbalums/benta-flow-api/internal/models"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product, categoryIDs []int64) error
	Update(ctx context.Context, product *models.Product, categoryIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CategoriesExist(ctx context.Context, ids []int64) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Categories").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("Categories").
		First(&product, id).Error
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, translate(err))
	}
	return &product, nil
}

// Create persists the product and its category set in one transaction.
func (r *productRepository) Create(ctx context.Context, product *models.Product, categoryIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(product).Error; err != nil {
			return err
		}
		return r.syncCategories(tx, product, categoryIDs)
	})
	if err != nil {
		return fmt.Errorf("create product: %w", translate(err))
	}
	return nil
}

// Update saves the product; a nil categoryIDs leaves the category set
// untouched, a non-nil one replaces it wholesale.
func (r *productRepository) Update(ctx context.Context, product *models.Product, categoryIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(product).Error; err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		return r.syncCategories(tx, product, categoryIDs)
	})
	if err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, translate(err))
	}
	return nil
}

func (r *productRepository) syncCategories(tx *gorm.DB, product *models.Product, ids []int64) error {
	categories := make([]models.ProductCategory, len(ids))
	for i, id := range ids {
		categories[i] = models.ProductCategory{ID: id}
	}
	return tx.Model(product).Association("Categories").Replace(categories)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Select("Categories").Delete(&models.Product{ID: id}).Error; err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// CategoriesExist reports whether every id refers to an existing category.
func (r *productRepository) CategoriesExist(ctx context.Context, ids []int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductCategory{}).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return count == int64(len(ids)), nil
}
