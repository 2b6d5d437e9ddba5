package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/botwire/botwire/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "telegram:\n  token: \"123:abc\"\n")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got := cfg.Telegram.BaseURL; got != "https://api.telegram.org" {
		t.Errorf("Telegram.BaseURL = %q, want default", got)
	}
	if got := cfg.Telegram.RequestTimeout; got != 30*time.Second {
		t.Errorf("Telegram.RequestTimeout = %v, want 30s", got)
	}
	if got := cfg.Webhook.Addr; got != ":8080" {
		t.Errorf("Webhook.Addr = %q, want :8080", got)
	}
	if got := cfg.Webhook.Path; got != "/telegram/webhook" {
		t.Errorf("Webhook.Path = %q, want /telegram/webhook", got)
	}
	if !cfg.Prune.Enabled {
		t.Error("Prune.Enabled = false, want true by default")
	}
	if got := cfg.Prune.Retention; got != 30*24*time.Hour {
		t.Errorf("Prune.Retention = %v, want 720h", got)
	}
	if got := cfg.Logger.Level; got != "info" {
		t.Errorf("Logger.Level = %q, want info", got)
	}
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("BIZHOOKD_TELEGRAM_TOKEN", "123:abc")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := cfg.Telegram.Token; got != "123:abc" {
		t.Errorf("Telegram.Token = %q, want value from environment", got)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  max_retries: 5
webhook:
  addr: ":9090"
  secret_token: "hush"
logger:
  level: debug
  json: false
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := cfg.Telegram.MaxRetries; got != 5 {
		t.Errorf("Telegram.MaxRetries = %d, want 5", got)
	}
	if got := cfg.Webhook.Addr; got != ":9090" {
		t.Errorf("Webhook.Addr = %q, want :9090", got)
	}
	if got := cfg.Webhook.SecretToken; got != "hush" {
		t.Errorf("Webhook.SecretToken = %q, want hush", got)
	}
	if got := cfg.Logger.Level; got != "debug" {
		t.Errorf("Logger.Level = %q, want debug", got)
	}
	if cfg.Logger.JSON {
		t.Error("Logger.JSON = true, want false")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing token",
			yaml: "webhook:\n  addr: \":8080\"\n",
		},
		{
			name: "bad base url",
			yaml: "telegram:\n  token: \"123:abc\"\n  base_url: \"not a url\"\n",
		},
		{
			name: "webhook path without slash",
			yaml: "telegram:\n  token: \"123:abc\"\nwebhook:\n  path: \"hooks\"\n",
		},
		{
			name: "bad log level",
			yaml: "telegram:\n  token: \"123:abc\"\nlogger:\n  level: loud\n",
		},
		{
			name: "retention too short",
			yaml: "telegram:\n  token: \"123:abc\"\nprune:\n  retention: 5m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			if _, err := config.LoadConfig(path); err == nil {
				t.Error("LoadConfig() succeeded, want validation error")
			}
		})
	}
}
