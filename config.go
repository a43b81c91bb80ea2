package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

// Config holds server configuration loaded from the environment.
type Config struct {
	// DefaultLanguage applies to locators without a language prefix.
	DefaultLanguage string

	// Timeout for upstream HTTP requests.
	Timeout time.Duration

	// UserAgent sent to the Wikimedia APIs. The APIs ask for a
	// descriptive agent with contact information.
	UserAgent string

	// MaxRetries for retryable upstream failures.
	MaxRetries int
}

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// LoadConfig reads configuration from WIKICELL_* environment variables,
// applying defaults for anything unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DefaultLanguage: locator.DefaultLanguage,
		Timeout:         defaultTimeout,
		MaxRetries:      defaultMaxRetries,
	}

	if v := os.Getenv("WIKICELL_DEFAULT_LANGUAGE"); v != "" {
		cfg.DefaultLanguage = v
	}

	if v := os.Getenv("WIKICELL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WIKICELL_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("WIKICELL_TIMEOUT must be positive, got %s", d)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv("WIKICELL_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	if v := os.Getenv("WIKICELL_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid WIKICELL_MAX_RETRIES %q", v)
		}
		cfg.MaxRetries = n
	}

	return cfg, nil
}
