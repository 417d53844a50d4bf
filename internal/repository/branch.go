package repository

import (
	"context"
	"fmt"

	"github.com/jbalums/benta-flow-api/internal/models"
	"gorm.io/gorm"
)

// BranchRepository defines the interface for branch data operations.
type BranchRepository interface {
	List(ctx context.Context) ([]models.Branch, error)
	FindByID(ctx context.Context, id int64) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id int64) error
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new BranchRepository instance.
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// List returns all branches, newest first, with the owning store attached
// in a single query per association rather than per row.
func (r *branchRepository) List(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).Preload("Store").Order("created_at DESC").Find(&branches).Error
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

func (r *branchRepository) FindByID(ctx context.Context, id int64) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).Preload("Store").First(&branch, id).Error
	if err != nil {
		return nil, fmt.Errorf("find branch %d: %w", id, translate(err))
	}
	return &branch, nil
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return fmt.Errorf("create branch: %w", translate(err))
	}
	return nil
}

func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	if err := r.db.WithContext(ctx).Save(branch).Error; err != nil {
		return fmt.Errorf("update branch %d: %w", branch.ID, translate(err))
	}
	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Branch{}, id).Error; err != nil {
		return fmt.Errorf("delete branch %d: %w", id, err)
	}
	return nil
}
