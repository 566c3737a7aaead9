package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".astromeric"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ProfileConfig holds per-profile overrides for a single saved profile.
// This lets a user pin a different scope or locale per person without
// repeating flags on every invocation.
type ProfileConfig struct {
	// Scope overrides the default forecast scope for this profile.
	// Empty means use the global default.
	Scope string `yaml:"scope,omitempty"`

	// Locale requests forecast text in a specific language, when the
	// backend supports it (e.g. "pt-BR"). Empty means the account default.
	Locale string `yaml:"locale,omitempty"`

	// Headers are extra HTTP headers to include in requests for this
	// profile. Useful for routing staging traffic or A/B cohorts.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .astromeric configuration file.
type File struct {
	// Profiles maps saved profile names to their overrides.
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty"`

	// Defaults contains overrides applied to all profiles unless a
	// profile-specific entry replaces them.
	Defaults ProfileConfig `yaml:"defaults,omitempty"`
}

// GetProfileConfig returns the configuration for a saved profile,
// merging the profile-specific entry over the defaults.
func (cf *File) GetProfileConfig(name string) ProfileConfig {
	result := cf.Defaults

	if pc, ok := cf.Profiles[name]; ok {
		if pc.Scope != "" {
			result.Scope = pc.Scope
		}
		if pc.Locale != "" {
			result.Locale = pc.Locale
		}
		if len(pc.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string)
			}
			for k, v := range pc.Headers {
				result.Headers[k] = v
			}
		}
	}

	return result
}

// LoadConfigFile loads profile configurations from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Profiles == nil {
		cf.Profiles = make(map[string]ProfileConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .astromeric in the current directory
// 3. Look for .astromeric in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
