package scheduler

import (
	"context"
	"time"

	"github.com/yourorg/stock-tracker/internal/model"

	"go.uber.org/zap"
)

// digestRunner is one digest cycle over the full roster
type digestRunner interface {
	Run(ctx context.Context) model.DigestRunResult
}

// Scheduler triggers the daily digest at a fixed local hour
type Scheduler struct {
	digest digestRunner
	hour   int
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a scheduler that fires once per day at the given hour
func NewScheduler(digest digestRunner, hour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		digest: digest,
		hour:   hour,
		logger: logger,
		now:    time.Now,
	}
}

// Run blocks until the context is canceled, firing the digest at each
// scheduled time. A run that overlaps the next slot just delays it; runs
// never overlap each other.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextRunAt(s.now(), s.hour)
		s.logger.Info("next digest scheduled", zap.Time("at", next))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		result := s.digest.Run(ctx)
		s.logger.Info("digest run finished",
			zap.Bool("success", result.Success),
			zap.String("message", result.Message))
	}
}

// nextRunAt returns the next occurrence of the given hour strictly after now
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
