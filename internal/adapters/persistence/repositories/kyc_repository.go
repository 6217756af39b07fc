package repositories

import (
	"context"

	"simplekyc/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kycRepository implements KYCRepository interface
type kycRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) KYCRepository {
	return &kycRepository{db: db}
}

// GetBySubjectID gets the saved KYC record for one subject
func (r *kycRepository) GetBySubjectID(ctx context.Context, subjectID int) (*models.KYCRecord, error) {
	var record models.KYCRecord
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes the KYC record for a subject
func (r *kycRepository) Upsert(ctx context.Context, record *models.KYCRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(record).Error
}
