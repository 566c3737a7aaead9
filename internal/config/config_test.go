package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults;
// changes to them must be intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default APIBaseURL is the public endpoint", func(t *testing.T) {
		t.Parallel()
		if cfg.APIBaseURL != "https://api.astromeric.app" {
			t.Errorf("expected APIBaseURL to be 'https://api.astromeric.app', got '%s'", cfg.APIBaseURL)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Scope is daily", func(t *testing.T) {
		t.Parallel()
		if cfg.Scope != model.ScopeDaily {
			t.Errorf("expected Scope to be daily, got %v", cfg.Scope)
		}
	})

	t.Run("default Token is empty", func(t *testing.T) {
		t.Parallel()
		if cfg.Token != "" {
			t.Error("expected Token to be empty by default")
		}
	})

	t.Run("default GeocodeLimit is 5", func(t *testing.T) {
		t.Parallel()
		if cfg.GeocodeLimit != 5 {
			t.Errorf("expected GeocodeLimit to be 5, got %d", cfg.GeocodeLimit)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case exercises one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			APIBaseURL: "https://api.astromeric.app",
			Timeout:    30 * time.Second,
			BatchSize:  4,
			Scope:      model.ScopeDaily,
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty base URL returns ErrNoAPIBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.APIBaseURL = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoAPIBaseURL) {
			t.Errorf("expected ErrNoAPIBaseURL, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("invalid scope returns ErrInvalidScope", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Scope = model.Scope(42)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidScope) {
			t.Errorf("expected ErrInvalidScope, got %v", err)
		}
	})

	t.Run("both report formats returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("negative max body size returns ErrInvalidMaxBodySize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxBodySize = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxBodySize) {
			t.Errorf("expected ErrInvalidMaxBodySize, got %v", err)
		}
	})
}

// TestLoadConfigFile tests loading YAML profile configurations.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("valid file loads profiles and defaults", func(t *testing.T) {
		t.Parallel()
		content := `
defaults:
  scope: daily
profiles:
  ana:
    scope: weekly
    locale: pt-BR
  bruno:
    headers:
      X-Cohort: "b"
`
		path := filepath.Join(t.TempDir(), ".astromeric")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pc := cf.GetProfileConfig("ana")
		if pc.Scope != "weekly" {
			t.Errorf("expected ana scope 'weekly', got %q", pc.Scope)
		}
		if pc.Locale != "pt-BR" {
			t.Errorf("expected ana locale 'pt-BR', got %q", pc.Locale)
		}

		// Unlisted profile falls back to defaults.
		pc = cf.GetProfileConfig("carla")
		if pc.Scope != "daily" {
			t.Errorf("expected default scope 'daily', got %q", pc.Scope)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".astromeric")
		if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

// TestApplyEnv verifies environment overlays.
// Not parallel: it mutates process environment.
func TestApplyEnv(t *testing.T) { //nolint:paralleltest // uses t.Setenv
	t.Run("unset variables keep existing values", func(t *testing.T) {
		cfg := NewConfig()
		want := cfg.APIBaseURL
		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIBaseURL != want {
			t.Errorf("expected APIBaseURL unchanged, got %q", cfg.APIBaseURL)
		}
	})

	t.Run("set variables override", func(t *testing.T) {
		t.Setenv("ASTROMERIC_API_URL", "http://localhost:8080")
		t.Setenv("ASTROMERIC_TIMEOUT", "90s")

		cfg := NewConfig()
		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIBaseURL != "http://localhost:8080" {
			t.Errorf("expected overridden base URL, got %q", cfg.APIBaseURL)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("expected 90s timeout, got %v", cfg.Timeout)
		}
	})

	t.Run("malformed duration errors", func(t *testing.T) {
		t.Setenv("ASTROMERIC_TIMEOUT", "soon")
		cfg := NewConfig()
		if err := cfg.ApplyEnv(); err == nil {
			t.Error("expected error for malformed duration")
		}
	})
}
