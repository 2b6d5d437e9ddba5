// Package config manages bizhookd configuration from default values, an
// optional config.yaml and BIZHOOKD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the daemon configuration.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Database DatabaseConfig `mapstructure:"database"`
	Prune    PruneConfig    `mapstructure:"prune"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// TelegramConfig covers the outbound Bot API client.
type TelegramConfig struct {
	Token          string        `mapstructure:"token"           validate:"required"`
	BaseURL        string        `mapstructure:"base_url"        validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required,min=1s,max=5m"`
	// RateLimit is the sustained request rate against the Bot API;
	// RateBurst the burst allowance on top of it.
	RateLimit  float64 `mapstructure:"rate_limit"  validate:"gt=0"`
	RateBurst  int     `mapstructure:"rate_burst"  validate:"gte=1"`
	MaxRetries int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// WebhookConfig covers the inbound update listener.
type WebhookConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
	Path string `mapstructure:"path" validate:"required,startswith=/"`
	// SecretToken must match the secret_token the webhook was registered
	// with; requests without it are rejected.
	SecretToken     string        `mapstructure:"secret_token"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,min=1s"`
}

// DatabaseConfig covers the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// PruneConfig covers the scheduled cleanup of disabled connections.
type PruneConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Schedule  string        `mapstructure:"schedule" validate:"required"`
	Retention time.Duration `mapstructure:"retention" validate:"required,min=1h"`
}

// LoggerConfig covers structured logging.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// LoadConfig loads and validates the configuration from:
// 1. Default values
// 2. The config file at path (missing file is allowed)
// 3. BIZHOOKD_* environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BIZHOOKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine, defaults plus env carry the day.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Secrets default to empty so viper knows the keys and resolves their
	// environment variables during Unmarshal.
	v.SetDefault("telegram.token", "")
	v.SetDefault("webhook.secret_token", "")

	v.SetDefault("telegram.base_url", "https://api.telegram.org")
	v.SetDefault("telegram.request_timeout", 30*time.Second)
	v.SetDefault("telegram.rate_limit", 25.0)
	v.SetDefault("telegram.rate_burst", 5)
	v.SetDefault("telegram.max_retries", 3)

	v.SetDefault("webhook.addr", ":8080")
	v.SetDefault("webhook.path", "/telegram/webhook")
	v.SetDefault("webhook.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.path", "bizhookd.db")

	v.SetDefault("prune.enabled", true)
	v.SetDefault("prune.schedule", "0 3 * * *")
	v.SetDefault("prune.retention", 30*24*time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
