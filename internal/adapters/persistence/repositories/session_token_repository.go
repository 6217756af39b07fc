package repositories

import (
	"context"
	"time"

	"simplekyc/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionTokenRepository implements SessionTokenRepository interface
type sessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository creates a new session token repository
func NewSessionTokenRepository(db *gorm.DB) SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

// Create creates a new session token row
func (r *sessionTokenRepository) Create(ctx context.Context, token *models.SessionToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByTokenID gets an unrevoked session token by its jti
func (r *sessionTokenRepository) GetByTokenID(ctx context.Context, tokenID string) (*models.SessionToken, error) {
	var token models.SessionToken
	err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Where("revoked_at IS NULL").
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke revokes a session token by its jti
func (r *sessionTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionToken{}).
		Where("token_id = ?", tokenID).
		Update("revoked_at", &now).Error
}

// RevokeAllByUserID revokes all session tokens for a user
func (r *sessionTokenRepository) RevokeAllByUserID(ctx context.Context, userID int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionToken{}).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Update("revoked_at", &now).Error
}

// DeleteExpiredBefore deletes tokens expired longer than cutoffDays ago
// (cleanup job)
func (r *sessionTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoffDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -cutoffDays)
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.SessionToken{})
	return result.RowsAffected, result.Error
}
