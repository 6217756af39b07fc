package services

import (
	"context"
	"sync"
	"time"

	"simplekyc/internal/adapters/directory"
	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository and directory fakes shared by the service tests.

type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.SessionToken
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]*models.SessionToken)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token *models.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.TokenID] = &copied
	return nil
}

func (r *memoryTokenRepo) GetByTokenID(_ context.Context, tokenID string) (*models.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenID]
	if !ok || token.IsRevoked() {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *memoryTokenRepo) Revoke(_ context.Context, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[tokenID]; ok {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *memoryTokenRepo) RevokeAllByUserID(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && !token.IsRevoked() {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *memoryTokenRepo) DeleteExpiredBefore(_ context.Context, cutoffDays int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -cutoffDays)
	var deleted int64
	for id, token := range r.tokens {
		if token.ExpiresAt.Before(cutoff) {
			delete(r.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

type memoryReviewRepo struct {
	mu      sync.Mutex
	records map[int]*models.ReviewRecord
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{records: make(map[int]*models.ReviewRecord)}
}

func (r *memoryReviewRepo) GetAll(_ context.Context) ([]*models.ReviewRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ReviewRecord, 0, len(r.records))
	for _, record := range r.records {
		copied := *record
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryReviewRepo) GetBySubjectID(_ context.Context, subjectID int) (*models.ReviewRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[subjectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memoryReviewRepo) Upsert(_ context.Context, record *models.ReviewRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	r.records[record.SubjectID] = &copied
	return nil
}

func (r *memoryReviewRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[int]*models.ReviewRecord)
	return nil
}

type memoryKYCRepo struct {
	mu      sync.Mutex
	records map[int]*models.KYCRecord
}

func newMemoryKYCRepo() *memoryKYCRepo {
	return &memoryKYCRepo{records: make(map[int]*models.KYCRecord)}
}

func (r *memoryKYCRepo) GetBySubjectID(_ context.Context, subjectID int) (*models.KYCRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[subjectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memoryKYCRepo) Upsert(_ context.Context, record *models.KYCRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	r.records[record.SubjectID] = &copied
	return nil
}

type memoryPersonalRepo struct {
	mu      sync.Mutex
	records map[int]*models.PersonalInfo
}

func newMemoryPersonalRepo() *memoryPersonalRepo {
	return &memoryPersonalRepo{records: make(map[int]*models.PersonalInfo)}
}

func (r *memoryPersonalRepo) GetBySubjectID(_ context.Context, subjectID int) (*models.PersonalInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.records[subjectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *info
	return &copied, nil
}

func (r *memoryPersonalRepo) Upsert(_ context.Context, info *models.PersonalInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *info
	r.records[info.SubjectID] = &copied
	return nil
}

// fakeDirectory is a canned DirectoryClient
type fakeDirectory struct {
	profiles map[int]directory.Profile
	password string
	down     bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		password: "emilyspass",
		profiles: map[int]directory.Profile{
			1: {
				ID: 1, Username: "emilys", Email: "emily.johnson@x.dummyjson.com",
				FirstName: "Emily", LastName: "Johnson", MaidenName: "Smith",
				Gender: "female", BirthDate: "1996-5-30", Age: 29,
				Phone: "+81 965-431-3024", Role: "admin",
				Address: &directory.Address{
					Address: "626 Main Street", City: "Phoenix", State: "Mississippi",
					StateCode: "MS", PostalCode: "29112", Country: "United States",
				},
			},
			2: {
				ID: 2, Username: "michaelw", Email: "michael.williams@x.dummyjson.com",
				FirstName: "Michael", LastName: "Williams", BirthDate: "1989-8-10",
				Age: 35, Role: "moderator",
			},
		},
	}
}

func (f *fakeDirectory) Login(username, password string) (*directory.LoginResult, error) {
	if f.down {
		return nil, domain.ErrDirectoryUnavailable
	}
	for _, p := range f.profiles {
		if p.Username == username && password == f.password {
			return &directory.LoginResult{ID: p.ID, AccessToken: "dir-token-" + username}, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeDirectory) Me(accessToken string) (*directory.Profile, error) {
	if f.down {
		return nil, domain.ErrDirectoryUnavailable
	}
	for _, p := range f.profiles {
		if accessToken == "dir-token-"+p.Username {
			copied := p
			return &copied, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

func (f *fakeDirectory) GetUser(id int) (*directory.Profile, error) {
	if f.down {
		return nil, domain.ErrDirectoryUnavailable
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeDirectory) ListUsers() ([]directory.Profile, error) {
	if f.down {
		return nil, domain.ErrDirectoryUnavailable
	}
	out := make([]directory.Profile, 0, len(f.profiles))
	for id := 1; id <= len(f.profiles); id++ {
		out = append(out, f.profiles[id])
	}
	return out, nil
}
