package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes expired offline regions.
type Pruner interface {
	PruneExpired(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	pruner   Pruner
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduler builds a scheduler that prunes on the given cron spec.
// An empty spec disables pruning.
func NewScheduler(schedule string, pruner Pruner, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		// overlapping prunes would race on the same regions
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		schedule: schedule,
		pruner:   pruner,
		logger:   logger.With("component", "bootstrap.scheduler"),
		now:      time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("tile pruning disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule tile pruning: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule)
	return nil
}

// RunOnce prunes expired regions now.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	pruned, err := s.pruner.PruneExpired(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("tile pruning failed", "error", err)
		return 0
	}
	return pruned
}

// Stop halts the cron loop and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
