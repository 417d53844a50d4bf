package repository

import (
	"context"
	"fmt"

	"github.com/jbalums/benta-flow-api/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for product category data operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.ProductCategory, error)
	FindByID(ctx context.Context, id int64) (*models.ProductCategory, error)
	Create(ctx context.Context, category *models.ProductCategory) error
	Update(ctx context.Context, category *models.ProductCategory) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("find product category %d: %w", id, translate(err))
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.ProductCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create product category: %w", translate(err))
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.ProductCategory) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("update product category %d: %w", category.ID, translate(err))
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.ProductCategory{}, id).Error; err != nil {
		return fmt.Errorf("delete product category %d: %w", id, err)
	}
	return nil
}
