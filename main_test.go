package main

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"WIKICELL_DEFAULT_LANGUAGE", "WIKICELL_TIMEOUT", "WIKICELL_USER_AGENT", "WIKICELL_MAX_RETRIES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want %q", cfg.DefaultLanguage, "en")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 30*time.Second)
	}
	if cfg.UserAgent != "" {
		t.Errorf("UserAgent = %q, want empty", cfg.UserAgent)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("WIKICELL_DEFAULT_LANGUAGE", "de")
	t.Setenv("WIKICELL_TIMEOUT", "5s")
	t.Setenv("WIKICELL_USER_AGENT", "test-agent/1.0 (test@example.com)")
	t.Setenv("WIKICELL_MAX_RETRIES", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DefaultLanguage != "de" {
		t.Errorf("DefaultLanguage = %q, want %q", cfg.DefaultLanguage, "de")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 5*time.Second)
	}
	if cfg.UserAgent != "test-agent/1.0 (test@example.com)" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable timeout", "WIKICELL_TIMEOUT", "banana"},
		{"zero timeout", "WIKICELL_TIMEOUT", "0s"},
		{"negative timeout", "WIKICELL_TIMEOUT", "-10s"},
		{"unparseable retries", "WIKICELL_MAX_RETRIES", "many"},
		{"negative retries", "WIKICELL_MAX_RETRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := &Config{Timeout: 10 * time.Second, MaxRetries: 2}
	if got := len(clientOptions(cfg, logger)); got != 3 {
		t.Errorf("clientOptions without user agent returned %d options, want 3", got)
	}

	cfg.UserAgent = "custom/1.0"
	if got := len(clientOptions(cfg, logger)); got != 4 {
		t.Errorf("clientOptions with user agent returned %d options, want 4", got)
	}
}
