package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/adapters/persistence/repositories"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/kyc"
	"simplekyc/internal/core/validation"

	"gorm.io/gorm"
)

// KYCService owns the KYC form lifecycle. Drafts live in memory per
// subject while being edited; only a successful submit persists.
type KYCService struct {
	kycRepo   repositories.KYCRepository
	directory DirectoryClient

	mu     sync.Mutex
	drafts map[int]*kyc.Form
}

// NewKYCService creates a new KYC service
func NewKYCService(kycRepo repositories.KYCRepository, directory DirectoryClient) *KYCService {
	return &KYCService{
		kycRepo:   kycRepo,
		directory: directory,
		drafts:    make(map[int]*kyc.Form),
	}
}

// SubmitResponse is the submit outcome. On validation failure the
// error tree and first failing section come back with the entered
// data untouched.
type SubmitResponse struct {
	State             kyc.State       `json:"state"`
	Errors            validation.Tree `json:"errors,omitempty"`
	FirstErrorSection string          `json:"first_error_section,omitempty"`
	Totals            *kyc.Totals     `json:"totals,omitempty"`
}

// LoadForm returns the form as seen by a viewer. The owner gets their
// draft slot reseeded; any other viewer gets a read-only snapshot that
// never touches the owner's draft. Saved data wins over the directory
// profile; a corrupt saved payload falls back to directory seeding.
func (s *KYCService) LoadForm(ctx context.Context, subjectID, viewerID int) (*kyc.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if viewerID != subjectID {
		return s.seedForm(ctx, subjectID, true)
	}

	form, err := s.seedForm(ctx, subjectID, false)
	if err != nil {
		return nil, err
	}
	s.drafts[subjectID] = form
	return form, nil
}

// seedForm builds a freshly seeded form without touching the draft map
func (s *KYCService) seedForm(ctx context.Context, subjectID int, readOnly bool) (*kyc.Form, error) {
	form := kyc.NewForm(subjectID, readOnly)
	form.BeginLoading()

	// 1. Saved record wins
	if stored, err := s.kycRepo.GetBySubjectID(ctx, subjectID); err == nil {
		var record kyc.Record
		if err := json.Unmarshal([]byte(stored.Payload), &record); err == nil {
			form.SeedFromRecord(record)
			return form, nil
		}
		log.Printf("⚠️ Corrupt KYC payload for subject %d, reseeding from directory", subjectID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Seed from the directory profile
	profile, err := s.directory.GetUser(subjectID)
	if err != nil {
		return nil, err
	}
	form.SeedFromProfile(ProfileSeed(profile))

	return form, nil
}

// draft returns the owner's live draft, seeding one when the subject
// has none yet (first touch after a restart).
func (s *KYCService) draft(ctx context.Context, subjectID int) (*kyc.Form, error) {
	if form, ok := s.drafts[subjectID]; ok {
		return form, nil
	}
	form, err := s.seedForm(ctx, subjectID, false)
	if err != nil {
		return nil, err
	}
	s.drafts[subjectID] = form
	return form, nil
}

// AddRow appends a default row to a repeatable section. Only the
// subject may edit their own draft.
func (s *KYCService) AddRow(ctx context.Context, subjectID, viewerID int, section string) (*kyc.Form, error) {
	if viewerID != subjectID {
		return nil, domain.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draft(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := form.AddRow(section); err != nil {
		return nil, err
	}
	return form, nil
}

// RemoveRow deletes a row from a repeatable section
func (s *KYCService) RemoveRow(ctx context.Context, subjectID, viewerID int, section string, index int) (*kyc.Form, error) {
	if viewerID != subjectID {
		return nil, domain.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draft(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := form.RemoveRow(section, index); err != nil {
		return nil, err
	}
	return form, nil
}

// UpdateField writes one field value into the draft, re-running the
// live per-field validation when errors are showing
func (s *KYCService) UpdateField(ctx context.Context, subjectID, viewerID int, section string, index int, field, value string) (*kyc.Form, error) {
	if viewerID != subjectID {
		return nil, domain.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draft(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := form.UpdateField(section, index, field, value); err != nil {
		return nil, err
	}
	return form, nil
}

// Submit validates the whole draft. Valid data is persisted; invalid
// data stays in the draft with the error tree attached.
func (s *KYCService) Submit(ctx context.Context, subjectID, viewerID int) (*SubmitResponse, error) {
	if viewerID != subjectID {
		return nil, domain.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.draft(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	tree, firstSection, err := form.Submit()
	if err != nil {
		return &SubmitResponse{
			State:             form.State,
			Errors:            tree,
			FirstErrorSection: firstSection,
		}, err
	}

	payload, err := json.Marshal(form.Record)
	if err != nil {
		return nil, err
	}
	record := &models.KYCRecord{
		SubjectID: subjectID,
		Payload:   string(payload),
	}
	if err := s.kycRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	totals := form.Totals()
	log.Printf("✅ KYC submitted for subject %d [netWorth: %.2f]", subjectID, totals.NetWorth)

	return &SubmitResponse{
		State:  form.State,
		Totals: &totals,
	}, nil
}

// Totals computes the financial summary: the live draft for the owner,
// the saved state for any other viewer.
func (s *KYCService) Totals(ctx context.Context, subjectID, viewerID int) (kyc.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if viewerID != subjectID {
		form, err := s.seedForm(ctx, subjectID, true)
		if err != nil {
			return kyc.Totals{}, err
		}
		return form.Totals(), nil
	}

	form, err := s.draft(ctx, subjectID)
	if err != nil {
		return kyc.Totals{}, err
	}
	return form.Totals(), nil
}
