package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// Default configuration values.
const (
	// DefaultAPIBaseURL is the public Astromeric backend endpoint.
	// It can be overridden via the ASTROMERIC_API_URL environment variable,
	// which is how staging and self-hosted deployments are targeted.
	DefaultAPIBaseURL = "https://api.astromeric.app"

	// DefaultTimeout is the per-request timeout for backend calls.
	// Forecast generation involves an AI explanation step server-side,
	// so this is more generous than a typical REST timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of concurrent forecast fetches when
	// multiple profiles are requested. The backend rate-limits aggressive
	// clients, so the default stays small.
	DefaultBatchSize = 4

	// DefaultScope is the forecast scope used when neither the command
	// line nor the persisted app state specifies one.
	DefaultScope = model.ScopeDaily

	// AppName is the application name used for XDG directory paths.
	AppName = "astromeric"

	// DefaultUserAgent identifies the CLI in HTTP requests. Nominatim's
	// usage policy requires a descriptive User-Agent, and the backend logs
	// benefit from one too.
	DefaultUserAgent = "astromeric-cli/1.0 (+https://github.com/btltech/astromeric-sub000)"

	// DefaultMaxBodySize limits the response body size read from the
	// backend. Readings are small JSON documents; 2MB leaves ample room
	// while preventing memory exhaustion from a misbehaving endpoint.
	DefaultMaxBodySize = 2 * 1024 * 1024

	// DefaultGeocodeLimit is the number of place candidates requested
	// from Nominatim per search.
	DefaultGeocodeLimit = 5
)

// Config holds all configuration options for the Astromeric CLI.
// This struct is designed to be populated from CLI flags, the config file,
// and environment variables, then passed through the application via
// dependency injection rather than global state.
type Config struct {
	// APIBaseURL is the Astromeric backend base URL.
	APIBaseURL string

	// Token is the bearer token for authenticated requests. Empty means
	// the user is anonymous and readings go to the anonymous cache.
	Token string

	// Timeout is the per-request timeout for backend and geocoding calls.
	Timeout time.Duration

	// Scope is the forecast scope to request.
	Scope model.Scope

	// BatchSize is the number of concurrent fetches when forecasting for
	// multiple profiles at once.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .astromeric in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// ProfileConfigs holds per-profile overrides loaded from the config file.
	ProfileConfigs *File

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DataDir is the directory for the local sqlite database holding
	// reading history, habits, and journal entries.
	DataDir string

	// StateDir is the directory for app state, the auth token file, and
	// the anonymous reading cache.
	StateDir string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default.
	MaxBodySize int64

	// GeocodeLimit is the maximum number of place candidates returned
	// by a Nominatim search.
	GeocodeLimit int
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:   DefaultAPIBaseURL,
		Timeout:      DefaultTimeout,
		Scope:        DefaultScope,
		BatchSize:    DefaultBatchSize,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		GeocodeLimit: DefaultGeocodeLimit,
		DataDir:      XDGDataDir(),
		StateDir:     XDGStateDir(),
	}
}

// XDGDataDir returns the XDG data directory for Astromeric.
// On Linux: ~/.local/share/astromeric
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for Astromeric.
// On Linux: ~/.config/astromeric
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGStateDir returns the XDG state directory for Astromeric.
// This holds the auth token, persisted app state, and the anonymous
// reading cache. On Linux: ~/.local/state/astromeric
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for Astromeric.
// On Linux: ~/.cache/astromeric
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrNoAPIBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if !c.Scope.Valid() {
		return ErrInvalidScope
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
