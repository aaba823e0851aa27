package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Starting balance credited when an account is auto-provisioned
	StartingBalance int64 `envconfig:"STARTING_BALANCE" default:"1000"`

	// Bound on a single settlement round-trip; the round fails rather
	// than hang past this
	SettleTimeout time.Duration `envconfig:"SETTLE_TIMEOUT" default:"10s"`

	// Retry policy for idempotent balance reads
	ReadRetries      int           `envconfig:"READ_RETRIES" default:"3"`
	ReadRetryBackoff time.Duration `envconfig:"READ_RETRY_BACKOFF" default:"200ms"`

	// Cron expression for the ledger reconciliation sweep
	ReconcileSchedule string `envconfig:"RECONCILE_SCHEDULE" default:"0 4 * * *"`

	// Environment
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Environment != "test" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}
	if cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("STARTING_BALANCE must be non-negative")
	}

	return &cfg, nil
}
