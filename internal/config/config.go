// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the service's configuration values.
type Config struct {
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	SpannerDB  string `envconfig:"SPANNER_DB" required:"true"`
	HTTPServer HTTPServerConfig
	GRPCServer GRPCServerConfig
	Paging     PagingConfig
	Metrics    MetricsConfig
	Cleanup    CleanupConfig
}

// HTTPServerConfig holds HTTP server settings.
type HTTPServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GRPCServerConfig holds the health server settings.
type GRPCServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PagingConfig controls list pagination.
type PagingConfig struct {
	PageSize int `envconfig:"PAGE_SIZE" default:"8"`
	// Mode is "cursor" (offset emulated with two cursor queries) or "native".
	Mode string `envconfig:"PAGING_MODE" default:"cursor"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// CleanupConfig holds notification retention for cmd/cleanup_notifications.
type CleanupConfig struct {
	ReadRetention   time.Duration `envconfig:"NOTIFICATION_READ_RETENTION" default:"168h"`
	UnreadRetention time.Duration `envconfig:"NOTIFICATION_UNREAD_RETENTION" default:"720h"`
	BatchSize       int           `envconfig:"NOTIFICATION_CLEANUP_BATCH" default:"1000"`
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.Paging.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Paging.PageSize)
	}
	switch c.Paging.Mode {
	case "cursor", "native":
	default:
		return fmt.Errorf("PAGING_MODE must be cursor or native, got %q", c.Paging.Mode)
	}
	if c.Cleanup.BatchSize <= 0 {
		return fmt.Errorf("NOTIFICATION_CLEANUP_BATCH must be positive, got %d", c.Cleanup.BatchSize)
	}
	return nil
}
