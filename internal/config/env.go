package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides mirrors the Config fields that can be set from the
// environment. Parsing targets this intermediate struct, pre-filled with
// the current values, so an unset variable leaves the existing value
// untouched while an explicitly empty one overrides it.
//
// Design decision: We use caarlos0/env rather than hand-rolled os.Getenv
// calls so duration parsing, error reporting, and the tag-driven mapping
// stay declarative in one place.
type envOverrides struct {
	// APIBaseURL is the backend base URL; deployments select staging or
	// self-hosted backends through the environment.
	APIBaseURL string `env:"ASTROMERIC_API_URL"`

	// Token overrides the stored bearer token for this invocation.
	// Useful for CI and for service accounts.
	Token string `env:"ASTROMERIC_API_TOKEN"`

	// Timeout overrides the per-request timeout, e.g. "90s".
	Timeout time.Duration `env:"ASTROMERIC_TIMEOUT"`

	// DataDir overrides the sqlite database directory.
	DataDir string `env:"ASTROMERIC_DATA_DIR"`

	// StateDir overrides the state directory (token, app state, anon cache).
	StateDir string `env:"ASTROMERIC_STATE_DIR"`
}

// ApplyEnv overlays environment variables onto the config.
// It must run after defaults and the config file so the environment wins;
// the deployment environment decides the backend URL.
func (c *Config) ApplyEnv() error {
	overrides := envOverrides{
		APIBaseURL: c.APIBaseURL,
		Token:      c.Token,
		Timeout:    c.Timeout,
		DataDir:    c.DataDir,
		StateDir:   c.StateDir,
	}

	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	c.APIBaseURL = overrides.APIBaseURL
	c.Token = overrides.Token
	c.Timeout = overrides.Timeout
	c.DataDir = overrides.DataDir
	c.StateDir = overrides.StateDir

	return nil
}
