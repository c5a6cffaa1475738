package users_services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clubhub/internal/config"
	users_repositories "clubhub/internal/features/users/repositories"
)

// CleanupService removes accounts that never completed email verification
// once they outlive the retention window.
type CleanupService struct {
	userRepository *users_repositories.UserRepository
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const sweepInterval = 24 * time.Hour

func (s *CleanupService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting unverified account sweep worker",
		slog.Duration("interval", sweepInterval),
		slog.Int("retentionHours", config.GetEnv().UnverifiedRetentionHours))

	s.wg.Add(1)
	go s.sweepWorker()
}

func (s *CleanupService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *CleanupService) sweepWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Sweep worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Sweep worker shutting down")
			return

		case <-ticker.C:
			retention := time.Duration(config.GetEnv().UnverifiedRetentionHours) * time.Hour
			if _, err := s.SweepUnverified(retention); err != nil {
				// a failed sweep waits for the next tick, it never stops the worker
				s.logger.Error("Unverified account sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// SweepUnverified deletes unverified accounts older than the retention
// window and reports how many were removed. Verified accounts are never
// candidates, for any window value including zero.
func (s *CleanupService) SweepUnverified(retentionWindow time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retentionWindow)

	deleted, err := s.userRepository.DeleteUnverifiedBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep unverified accounts: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("Swept unverified accounts",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff))
	}

	return deleted, nil
}
