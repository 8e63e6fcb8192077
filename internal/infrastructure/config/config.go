package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Report orderings.
const (
	ReportOrderArrival = "arrival"
	ReportOrderClient  = "client"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Processing
	FreezeLockedAccounts bool   `env:"FREEZE_LOCKED_ACCOUNTS" envDefault:"true"`
	ReportOrder          string `env:"REPORT_ORDER"           envDefault:"arrival"`

	// Input
	InputOpenRetries int           `env:"INPUT_OPEN_RETRIES" envDefault:"3"`
	InputOpenTimeout time.Duration `env:"INPUT_OPEN_TIMEOUT" envDefault:"2s"`

	// Metrics (empty disables the textfile dump)
	MetricsFile string `env:"METRICS_FILE" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values env.Parse accepts but the engine cannot use.
func (c *Config) Validate() error {
	switch c.ReportOrder {
	case ReportOrderArrival, ReportOrderClient:
	default:
		return fmt.Errorf("REPORT_ORDER must be %q or %q, got %q", ReportOrderArrival, ReportOrderClient, c.ReportOrder)
	}

	if c.InputOpenRetries < 0 {
		return fmt.Errorf("INPUT_OPEN_RETRIES must not be negative, got %d", c.InputOpenRetries)
	}

	return nil
}
