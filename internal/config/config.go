// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all tutorsync data
	BaseDir string

	// Backend API settings
	API APIConfig

	// Sync behavior
	Sync SyncConfig

	// Debug enables verbose file logging
	Debug bool
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL of the ThinkFirst backend
	BaseURL string
	// Timeout for individual HTTP requests
	Timeout time.Duration
}

// SyncConfig holds reconciliation settings.
type SyncConfig struct {
	// RetentionDays before chat records are eligible for cleanup
	RetentionDays int
	// SubmitPerSecond caps quiz resubmissions during sync (0 = unlimited)
	SubmitPerSecond float64
}

// Load reads configuration from a .env file (if present) and
// environment variables. Env vars win over .env values.
func Load() (*Config, error) {
	// Missing .env is not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if url := os.Getenv("TUTORSYNC_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if dir := os.Getenv("TUTORSYNC_DATA_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if v := os.Getenv("TUTORSYNC_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid TUTORSYNC_TIMEOUT_SECONDS: %q", v)
		}
		cfg.API.Timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("TUTORSYNC_RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid TUTORSYNC_RETENTION_DAYS: %q", v)
		}
		cfg.Sync.RetentionDays = days
	}
	if v := os.Getenv("TUTORSYNC_DEBUG"); v != "" {
		cfg.Debug = v == "1" || v == "true"
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Retention returns the chat cleanup window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Sync.RetentionDays) * 24 * time.Hour
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return err
	}
	return nil
}
