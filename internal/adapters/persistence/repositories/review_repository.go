package repositories

import (
	"context"

	"simplekyc/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// GetAll returns every review record
func (r *reviewRepository) GetAll(ctx context.Context) ([]*models.ReviewRecord, error) {
	var records []*models.ReviewRecord
	err := r.db.WithContext(ctx).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetBySubjectID gets the review record for one subject
func (r *reviewRepository) GetBySubjectID(ctx context.Context, subjectID int) (*models.ReviewRecord, error) {
	var record models.ReviewRecord
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes the review record for a subject, replacing any
// previous decision
func (r *reviewRepository) Upsert(ctx context.Context, record *models.ReviewRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "reviewed_at", "reviewed_by"}),
		}).
		Create(record).Error
}

// DeleteAll removes every review record (reset to pending)
func (r *reviewRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.ReviewRecord{}).Error
}
