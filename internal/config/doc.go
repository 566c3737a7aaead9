// Package config provides configuration structures and utilities for the
// Astromeric CLI. It defines defaults for API access, report generation,
// and local storage locations, plus the .astromeric YAML config file with
// per-profile overrides.
package config
