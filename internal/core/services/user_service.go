package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"simplekyc/internal/adapters/directory"
	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/adapters/persistence/repositories"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/kyc"
	"simplekyc/internal/core/validation"
	"simplekyc/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserService serves user profiles and the personal-information page.
// Profiles come from the directory; locally saved edits win over them.
type UserService struct {
	directory    DirectoryClient
	personalRepo repositories.PersonalInfoRepository
}

// NewUserService creates a new user service
func NewUserService(directory DirectoryClient, personalRepo repositories.PersonalInfoRepository) *UserService {
	return &UserService{
		directory:    directory,
		personalRepo: personalRepo,
	}
}

// PersonalInfoData is the personal-information page payload: the
// identity and contact sections of the KYC record.
type PersonalInfoData struct {
	BasicInfo kyc.BasicInfo `json:"basicInfo"`
	Addresses []kyc.Address `json:"addresses"`
	Emails    []kyc.Email   `json:"emails"`
	Phones    []kyc.Phone   `json:"phones"`
}

// UserListEntry is one row of the officer's user listing
type UserListEntry struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Role      string `json:"role"`
}

// GetProfile fetches one directory profile
func (s *UserService) GetProfile(ctx context.Context, subjectID int) (*directory.Profile, error) {
	return s.directory.GetUser(subjectID)
}

// GetPersonalInfo returns the personal-information sections for a
// subject: the saved local copy when one exists, otherwise sections
// seeded from the directory profile.
func (s *UserService) GetPersonalInfo(ctx context.Context, subjectID int) (*PersonalInfoData, error) {
	// 1. Saved data wins
	if stored, err := s.personalRepo.GetBySubjectID(ctx, subjectID); err == nil {
		var data PersonalInfoData
		if err := json.Unmarshal([]byte(stored.Payload), &data); err == nil {
			return &data, nil
		}
		// corrupt payload falls through to reseeding
		log.Printf("⚠️ Corrupt personal info payload for subject %d, reseeding", subjectID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Seed from the directory profile
	profile, err := s.directory.GetUser(subjectID)
	if err != nil {
		return nil, err
	}

	form := kyc.NewForm(subjectID, false)
	form.SeedFromProfile(ProfileSeed(profile))

	return &PersonalInfoData{
		BasicInfo: form.Record.BasicInfo,
		Addresses: form.Record.Addresses,
		Emails:    form.Record.Emails,
		Phones:    form.Record.Phones,
	}, nil
}

// SavePersonalInfo validates and persists personal-information edits.
// Only the subject edits their own data; invalid input returns the
// error tree and nothing is written.
func (s *UserService) SavePersonalInfo(ctx context.Context, subjectID, viewerID int, data *PersonalInfoData) (validation.Tree, error) {
	if viewerID != subjectID {
		return nil, domain.ErrReadOnly
	}
	if data == nil {
		return nil, domain.ErrInvalidInput
	}

	// 1. Validate the four page sections
	rec := kyc.BlankRecord()
	rec.BasicInfo = data.BasicInfo
	rec.Addresses = data.Addresses
	rec.Emails = data.Emails
	rec.Phones = data.Phones

	tree := validation.Tree{}
	for _, section := range []string{kyc.SectionBasicInfo, kyc.SectionAddresses, kyc.SectionEmails, kyc.SectionPhones} {
		values, _ := rec.SectionValues(section)
		schema, _ := kyc.SchemaFor(section)
		tree[section] = validation.ValidateRows(schema, values)
	}
	if !tree.IsValid() {
		return tree, domain.ErrInvalidInput
	}

	// 2. Persist
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	info := &models.PersonalInfo{
		SubjectID: subjectID,
		Payload:   string(payload),
	}
	if err := s.personalRepo.Upsert(ctx, info); err != nil {
		return nil, err
	}

	log.Printf("✅ Personal info saved for subject %d", subjectID)
	return tree, nil
}

// List returns one page of the directory listing (officer view)
func (s *UserService) List(ctx context.Context, params *pagination.Params) ([]UserListEntry, int64, error) {
	profiles, err := s.directory.ListUsers()
	if err != nil {
		return nil, 0, err
	}

	start, end := params.Window(len(profiles))
	entries := make([]UserListEntry, 0, end-start)
	for _, p := range profiles[start:end] {
		entries = append(entries, UserListEntry{
			ID:        p.ID,
			Username:  p.Username,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Image:     p.Image,
			Role:      string(domain.RoleFromDirectory(p.Role)),
		})
	}

	return entries, int64(len(profiles)), nil
}

// ProfileSeed converts a directory profile into KYC form seed data
func ProfileSeed(p *directory.Profile) *kyc.ProfileSeed {
	if p == nil {
		return nil
	}
	seed := &kyc.ProfileSeed{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		MaidenName: p.MaidenName,
		BirthDate:  p.BirthDate,
		Age:        p.Age,
		Email:      p.Email,
		Phone:      p.Phone,
	}
	if p.Address != nil {
		seed.Address = &kyc.AddressSeed{
			Street:     p.Address.Address,
			City:       p.Address.City,
			State:      p.Address.State,
			StateCode:  p.Address.StateCode,
			PostalCode: p.Address.PostalCode,
			Country:    p.Address.Country,
		}
	}
	return seed
}
