package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Session Tables
// ============================================================

// SessionToken represents session_tokens table. One row per minted
// access token; logout revokes the row.
type SessionToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    int        `gorm:"index;not null" json:"user_id"`
	Username  string     `gorm:"size:50;not null" json:"username"`
	Role      string     `gorm:"size:20;not null" json:"role"`
	TokenID   string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (SessionToken) TableName() string {
	return "session_tokens"
}

func (st *SessionToken) IsRevoked() bool {
	return st.RevokedAt != nil
}

func (st *SessionToken) IsExpired() bool {
	return time.Now().After(st.ExpiresAt)
}

// ============================================================
// Review Tables
// ============================================================

// ReviewRecord represents review_records table. One row per subject;
// absence means the subject is pending.
type ReviewRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SubjectID  int            `gorm:"uniqueIndex;not null" json:"subject_id"`
	Status     string         `gorm:"size:20;not null" json:"status"`
	ReviewedAt string         `gorm:"size:40" json:"reviewed_at"`
	ReviewedBy string         `gorm:"size:50" json:"reviewed_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}

// ============================================================
// KYC Tables
// ============================================================

// KYCRecord represents kyc_records table. The submitted form is stored
// as one JSON document per subject, the shape the form works in.
type KYCRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SubjectID int            `gorm:"uniqueIndex;not null" json:"subject_id"`
	Payload   string         `gorm:"type:longtext;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (KYCRecord) TableName() string {
	return "kyc_records"
}

// PersonalInfo represents personal_infos table: locally saved overrides
// that win over the directory profile when present.
type PersonalInfo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SubjectID int            `gorm:"uniqueIndex;not null" json:"subject_id"`
	Payload   string         `gorm:"type:longtext;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PersonalInfo) TableName() string {
	return "personal_infos"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SessionToken{},
		&ReviewRecord{},
		&KYCRecord{},
		&PersonalInfo{},
	)
}
