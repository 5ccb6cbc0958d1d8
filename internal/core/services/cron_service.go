package services

import (
	"context"
	"log"
	"time"

	"fitconnect/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs
type CronService struct {
	cron           *cron.Cron
	membershipRepo repositories.MembershipRepository
	refreshRepo    repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	membershipRepo repositories.MembershipRepository,
	refreshRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:           cron.New(),
		membershipRepo: membershipRepo,
		refreshRepo:    refreshRepo,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// Expire lapsed memberships shortly after midnight
	if _, err := s.cron.AddFunc("5 0 * * *", s.expireMemberships); err != nil {
		return err
	}

	// Purge expired refresh tokens weekly
	if _, err := s.cron.AddFunc("0 3 * * 0", s.purgeRefreshTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) expireMemberships() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.membershipRepo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Membership expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("✅ Membership expiry sweep: %d membership(s) expired", expired)
	}
}

func (s *CronService) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}
