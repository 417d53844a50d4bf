package repository

import (
	"context"
	"fmt"

	"github.com/jbalums/benta-flow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreRepository defines the interface for store data operations.
type StoreRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*models.Store, error)
	Upsert(ctx context.Context, store *models.Store) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new StoreRepository instance.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) FindByUserID(ctx context.Context, userID int64) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&store).Error
	if err != nil {
		return nil, fmt.Errorf("find store for user %d: %w", userID, translate(err))
	}
	return &store, nil
}

// Upsert creates or updates the store keyed on the owning user id,
// idempotent under repeated identical input.
func (r *storeRepository) Upsert(ctx context.Context, store *models.Store) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "business_type", "nature_of_business",
				"phone", "address", "city", "state", "country", "website",
				"updated_at",
			}),
		}).
		Create(store).Error
	if err != nil {
		return fmt.Errorf("upsert store for user %d: %w", store.UserID, translate(err))
	}
	// Re-read so the caller sees the row id and timestamps after an update
	// path, where gorm leaves the in-memory struct with zero values.
	var saved models.Store
	err = r.db.WithContext(ctx).Where("user_id = ?", store.UserID).First(&saved).Error
	if err != nil {
		return fmt.Errorf("reload store for user %d: %w", store.UserID, translate(err))
	}
	*store = saved
	return nil
}
