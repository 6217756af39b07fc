package services

import (
	"context"
	"errors"
	"log"
	"time"

	"simplekyc/internal/adapters/directory"
	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/adapters/persistence/repositories"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ReviewService manages KYC review decisions. A subject with no row is
// pending; approving or rejecting writes one row per subject.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	directory  DirectoryClient
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo repositories.ReviewRepository, directory DirectoryClient) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		directory:  directory,
	}
}

// QueueEntry is one row of the officer's review queue: the directory
// profile joined with its review decision.
type QueueEntry struct {
	SubjectID  int    `json:"subject_id"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	ReviewedAt string `json:"reviewed_at,omitempty"`
	ReviewedBy string `json:"reviewed_by,omitempty"`
}

// DecisionInput represents an officer's review decision
type DecisionInput struct {
	Status string `json:"status" validate:"required"`
}

// LoadAll returns every recorded decision keyed by subject
func (s *ReviewService) LoadAll(ctx context.Context) (map[int]domain.ReviewRecord, error) {
	rows, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	decisions := make(map[int]domain.ReviewRecord, len(rows))
	for _, row := range rows {
		decisions[row.SubjectID] = toDomainReview(row)
	}
	return decisions, nil
}

// Get returns the decision for one subject, pending when none exists
func (s *ReviewService) Get(ctx context.Context, subjectID int) (domain.ReviewRecord, error) {
	row, err := s.reviewRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PendingReview(), nil
		}
		return domain.ReviewRecord{}, err
	}
	return toDomainReview(row), nil
}

// Decide records an approve/reject decision for a subject. The
// decision timestamp is set here, not by the caller, and the reviewer
// is recorded by display name.
func (s *ReviewService) Decide(ctx context.Context, subjectID int, status string, reviewerID int, reviewerUsername string) (domain.ReviewRecord, error) {
	st := domain.ReviewStatus(status)
	if !st.IsValid() || st == domain.ReviewPending {
		return domain.ReviewRecord{}, domain.ErrInvalidStatus
	}

	// A directory outage degrades attribution to the username
	reviewedBy := reviewerUsername
	if profile, err := s.directory.GetUser(reviewerID); err == nil {
		reviewer := domain.UserRecord{FirstName: profile.FirstName, LastName: profile.LastName}
		reviewedBy = reviewer.DisplayName()
	}

	record := &models.ReviewRecord{
		SubjectID:  subjectID,
		Status:     string(st),
		ReviewedAt: time.Now().Format(time.RFC3339),
		ReviewedBy: reviewedBy,
	}
	if err := s.reviewRepo.Upsert(ctx, record); err != nil {
		return domain.ReviewRecord{}, err
	}

	log.Printf("✅ Review decision: subject %d %s by %s", subjectID, st, reviewedBy)
	return toDomainReview(record), nil
}

// Clear wipes every decision, resetting all subjects to pending
func (s *ReviewService) Clear(ctx context.Context) error {
	if err := s.reviewRepo.DeleteAll(ctx); err != nil {
		return err
	}
	log.Printf("✅ Review decisions cleared")
	return nil
}

// Queue returns one page of the review queue: directory users joined
// with their decisions, pending by default. The requesting officer
// never appears in their own queue.
func (s *ReviewService) Queue(ctx context.Context, requesterID int, params *pagination.Params) ([]QueueEntry, int64, error) {
	profiles, err := s.directory.ListUsers()
	if err != nil {
		return nil, 0, err
	}

	subjects := make([]directory.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID != requesterID {
			subjects = append(subjects, p)
		}
	}

	decisions, err := s.LoadAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	start, end := params.Window(len(subjects))
	entries := make([]QueueEntry, 0, end-start)
	for _, p := range subjects[start:end] {
		entry := QueueEntry{
			SubjectID: p.ID,
			Username:  p.Username,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Status:    string(domain.ReviewPending),
		}
		if decision, ok := decisions[p.ID]; ok {
			entry.Status = string(decision.Status)
			entry.ReviewedAt = decision.ReviewedAt
			entry.ReviewedBy = decision.ReviewedBy
		}
		entries = append(entries, entry)
	}

	return entries, int64(len(subjects)), nil
}

// CountByStatus tallies recorded decisions plus the pending remainder
// against the directory population (daily summary job)
func (s *ReviewService) CountByStatus(ctx context.Context) (map[string]int, error) {
	profiles, err := s.directory.ListUsers()
	if err != nil {
		return nil, err
	}
	decisions, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		string(domain.ReviewPending):  0,
		string(domain.ReviewApproved): 0,
		string(domain.ReviewRejected): 0,
	}
	for _, p := range profiles {
		status := string(domain.ReviewPending)
		if decision, ok := decisions[p.ID]; ok {
			status = string(decision.Status)
		}
		counts[status]++
	}
	return counts, nil
}

func toDomainReview(row *models.ReviewRecord) domain.ReviewRecord {
	return domain.ReviewRecord{
		Status:     domain.ReviewStatus(row.Status),
		ReviewedAt: row.ReviewedAt,
		ReviewedBy: row.ReviewedBy,
	}
}
