// Package main contains the entrypoint for the bizhookd daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/botwire/botwire/internal/app"
	"github.com/botwire/botwire/internal/botapi"
	"github.com/botwire/botwire/internal/config"
	"github.com/botwire/botwire/internal/database"
	"github.com/botwire/botwire/internal/logger"
	"github.com/botwire/botwire/internal/scheduler"
	"github.com/botwire/botwire/internal/webhook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components, starts the application, and returns an exit
// code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	client, err := botapi.New(cfg.Telegram.Token,
		botapi.WithBaseURL(cfg.Telegram.BaseURL),
		botapi.WithTimeout(cfg.Telegram.RequestTimeout),
		botapi.WithRateLimit(cfg.Telegram.RateLimit, cfg.Telegram.RateBurst),
		botapi.WithRetries(cfg.Telegram.MaxRetries),
		botapi.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to create Bot API client", "error", err)
		return 1
	}

	me, err := client.GetMe(ctx)
	if err != nil {
		log.Error("Failed to validate bot token", "error", err)
		return 1
	}
	log.Info("Bot token validated", "bot_id", me.ID(), "bot_username", me.Username())

	server := webhook.NewServer(cfg.Webhook, store, nil, log)

	sched, err := scheduler.New(cfg.Prune, store, log)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	log.Info("Starting bizhookd...")
	runErr := app.New(log, server, sched).Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("bizhookd stopped due to error", "error", runErr)
		return 1
	}

	log.Info("bizhookd stopped gracefully.")
	return 0
}
