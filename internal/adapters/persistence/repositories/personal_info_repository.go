package repositories

import (
	"context"

	"simplekyc/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// personalInfoRepository implements PersonalInfoRepository interface
type personalInfoRepository struct {
	db *gorm.DB
}

// NewPersonalInfoRepository creates a new personal info repository
func NewPersonalInfoRepository(db *gorm.DB) PersonalInfoRepository {
	return &personalInfoRepository{db: db}
}

// GetBySubjectID gets the saved personal info for one subject
func (r *personalInfoRepository) GetBySubjectID(ctx context.Context, subjectID int) (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert writes the personal info for a subject
func (r *personalInfoRepository) Upsert(ctx context.Context, info *models.PersonalInfo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(info).Error
}
