package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled housekeeping jobs
type CronService struct {
	cron           *cron.Cron
	sessionService *SessionService
	reviewService  *ReviewService
}

// NewCronService creates a new cron service
func NewCronService(sessionService *SessionService, reviewService *ReviewService) *CronService {
	return &CronService{
		cron:           cron.New(),
		sessionService: sessionService,
		reviewService:  reviewService,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Daily review summary at 08:30
	if _, err := s.cron.AddFunc("30 8 * * *", s.logReviewSummary); err != nil {
		return err
	}

	// Prune expired session tokens at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.pruneSessionTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started [review summary 08:30, token prune 03:00]")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron jobs stopped")
}

func (s *CronService) logReviewSummary() {
	counts, err := s.reviewService.CountByStatus(context.Background())
	if err != nil {
		log.Printf("❌ Review summary failed: %v", err)
		return
	}
	log.Printf("📊 Review summary: pending=%d approved=%d rejected=%d",
		counts["pending"], counts["approved"], counts["rejected"])
}

func (s *CronService) pruneSessionTokens() {
	deleted, err := s.sessionService.PruneExpiredTokens(context.Background())
	if err != nil {
		log.Printf("❌ Session token prune failed: %v", err)
		return
	}
	log.Printf("🧹 Pruned %d expired session tokens", deleted)
}
