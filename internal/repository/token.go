package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jbalums/benta-flow-api/internal/models"
	"gorm.io/gorm"
)

// TokenRepository defines the interface for access token persistence.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	FindByID(ctx context.Context, id int64) (*models.AccessToken, error)
	TouchLastUsed(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create access token: %w", translate(err))
	}
	return nil
}

func (r *tokenRepository) FindByID(ctx context.Context, id int64) (*models.AccessToken, error) {
	var token models.AccessToken
	if err := r.db.WithContext(ctx).First(&token, id).Error; err != nil {
		return nil, fmt.Errorf("find access token %d: %w", id, translate(err))
	}
	return &token, nil
}

func (r *tokenRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.AccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
	if err != nil {
		return fmt.Errorf("touch access token %d: %w", id, err)
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.AccessToken{}, id).Error; err != nil {
		return fmt.Errorf("delete access token %d: %w", id, err)
	}
	return nil
}
