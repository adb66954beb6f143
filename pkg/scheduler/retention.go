package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
	"github.com/fadedpez/pokersquares/pkg/services/daily"
)

// RetentionScheduler deletes saved games older than the retention window.
// Results are kept for statistics.
type RetentionScheduler struct {
	scheduler *Scheduler
	repo      history.Repository
	days      int
	now       func() time.Time
	logger    *logging.Logger
}

// NewRetentionScheduler keeps the last days of saved games
func NewRetentionScheduler(repo history.Repository, days int, logger *logging.Logger) *RetentionScheduler {
	if logger == nil {
		logger = logging.Default
	}
	return &RetentionScheduler{
		scheduler: NewScheduler(logger),
		repo:      repo,
		days:      days,
		now:       time.Now,
		logger:    logger,
	}
}

// Start prunes now and then once a day
func (s *RetentionScheduler) Start(ctx context.Context) {
	s.scheduler.AddTask("history_retention", 24*time.Hour, func(ctx context.Context) error {
		_, err := s.PruneHistory(ctx)
		return err
	})
	s.scheduler.Start(ctx)
}

// Stop stops the retention task
func (s *RetentionScheduler) Stop() {
	s.scheduler.Stop()
}

// PruneHistory deletes saved games whose day key is older than the window
func (s *RetentionScheduler) PruneHistory(ctx context.Context) (int, error) {
	if s.days <= 0 {
		return 0, nil
	}

	cutoff, err := daily.KeyBefore(daily.Key(s.now()), s.days)
	if err != nil {
		return 0, fmt.Errorf("error computing retention cutoff: %w", err)
	}

	deleted, err := s.repo.DeleteGamesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error pruning saved games: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("Pruned %d saved games before %s", deleted, cutoff)
	}
	return deleted, nil
}
