// Package scheduler runs bizhookd's recurring maintenance jobs on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/botwire/botwire/internal/config"
	"github.com/botwire/botwire/internal/database"
)

// Scheduler owns the cron runner and the prune job.
type Scheduler struct {
	scheduler gocron.Scheduler
	store     database.Store
	cfg       config.PruneConfig
	logger    *slog.Logger
}

// New creates a scheduler with the prune job registered. The job itself only
// runs once Start is called.
func New(cfg config.PruneConfig, store database.Store, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		scheduler: gs,
		store:     store,
		cfg:       cfg,
		logger:    logger.With("component", "scheduler"),
	}

	if cfg.Enabled {
		_, err := gs.NewJob(
			gocron.CronJob(cfg.Schedule, false),
			gocron.NewTask(s.runPrune, context.Background()),
			gocron.WithName("prune-disabled-connections"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule prune job %q: %w", cfg.Schedule, err)
		}
	}

	return s, nil
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	if s.cfg.Enabled {
		s.logger.Info("scheduler started",
			"schedule", s.cfg.Schedule, "retention", s.cfg.Retention)
	} else {
		s.logger.Info("scheduler started with pruning disabled")
	}
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("scheduler shutdown failed: %w", err)
	}
	s.logger.Info("scheduler stopped")
	return nil
}

// runPrune removes disabled connections older than the retention window.
func (s *Scheduler) runPrune(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.cfg.Retention)
	start := time.Now()

	pruned, err := s.store.PruneDisabledConnections(ctx, cutoff)
	if err != nil {
		s.logger.Error("prune job failed", "error", err)
		return
	}

	s.logger.Info("prune job finished",
		"pruned", pruned, "cutoff", cutoff, "duration", time.Since(start))
}
