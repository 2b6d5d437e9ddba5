package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/botwire/botwire/internal/config"
	"github.com/botwire/botwire/internal/database"
	"github.com/botwire/botwire/internal/scheduler"
)

type stubStore struct {
	database.Store
}

func (stubStore) PruneDisabledConnections(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := config.PruneConfig{Enabled: true, Schedule: "not a cron expression", Retention: time.Hour}
	if _, err := scheduler.New(cfg, stubStore{}, nil); err == nil {
		t.Error("New() with bad schedule succeeded, want error")
	}
}

func TestStartStop(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PruneConfig
	}{
		{
			name: "pruning enabled",
			cfg:  config.PruneConfig{Enabled: true, Schedule: "0 3 * * *", Retention: 30 * 24 * time.Hour},
		},
		{
			name: "pruning disabled",
			cfg:  config.PruneConfig{Enabled: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := scheduler.New(tt.cfg, stubStore{}, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			s.Start()
			if err := s.Stop(); err != nil {
				t.Errorf("Stop() error = %v", err)
			}
		})
	}
}
