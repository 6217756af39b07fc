package repositories

import (
	"context"

	"simplekyc/internal/adapters/persistence/models"
)

// SessionTokenRepository defines session token repository interface
type SessionTokenRepository interface {
	Create(ctx context.Context, token *models.SessionToken) error
	GetByTokenID(ctx context.Context, tokenID string) (*models.SessionToken, error)
	Revoke(ctx context.Context, tokenID string) error
	RevokeAllByUserID(ctx context.Context, userID int) error
	DeleteExpiredBefore(ctx context.Context, cutoffDays int) (int64, error)
}

// ReviewRepository defines review record repository interface
type ReviewRepository interface {
	GetAll(ctx context.Context) ([]*models.ReviewRecord, error)
	GetBySubjectID(ctx context.Context, subjectID int) (*models.ReviewRecord, error)
	Upsert(ctx context.Context, record *models.ReviewRecord) error
	DeleteAll(ctx context.Context) error
}

// KYCRepository defines KYC record repository interface
type KYCRepository interface {
	GetBySubjectID(ctx context.Context, subjectID int) (*models.KYCRecord, error)
	Upsert(ctx context.Context, record *models.KYCRecord) error
}

// PersonalInfoRepository defines personal info repository interface
type PersonalInfoRepository interface {
	GetBySubjectID(ctx context.Context, subjectID int) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, info *models.PersonalInfo) error
}
