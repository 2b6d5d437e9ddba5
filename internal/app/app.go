// Package app orchestrates the bizhookd components and their lifecycle.
package app

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/botwire/botwire/internal/scheduler"
	"github.com/botwire/botwire/internal/webhook"
)

// App runs the webhook listener and the scheduler until shutdown.
type App struct {
	logger    *slog.Logger
	server    *webhook.Server
	scheduler *scheduler.Scheduler
}

// New creates the application from its already-constructed components.
func New(logger *slog.Logger, server *webhook.Server, sched *scheduler.Scheduler) *App {
	return &App{
		logger:    logger.With("component", "app"),
		server:    server,
		scheduler: sched,
	}
}

// Run starts all components and blocks until ctx is cancelled or one of them
// fails. Cancellation triggers graceful shutdown of the rest.
func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Run(gCtx)
	})

	g.Go(func() error {
		a.scheduler.Start()
		<-gCtx.Done()
		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("failed to stop scheduler", "error", err)
		}
		return nil
	})

	a.logger.Info("bizhookd running")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("bizhookd stopped due to error", "error", err)
		return err
	}

	a.logger.Info("bizhookd stopped gracefully")
	return nil
}
