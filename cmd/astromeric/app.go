package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/api"
	"github.com/btltech/astromeric-sub000/internal/auth"
	"github.com/btltech/astromeric-sub000/internal/config"
	"github.com/btltech/astromeric-sub000/internal/database"
	"github.com/btltech/astromeric-sub000/internal/log"
	"github.com/btltech/astromeric-sub000/internal/model"
	"github.com/btltech/astromeric-sub000/internal/report"
	"github.com/btltech/astromeric-sub000/internal/state"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a sanitizing structured logger based on verbosity.
// The default logger is replaced so library code logs through the same
// handler.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// buildBaseConfig assembles configuration in precedence order: defaults,
// then the config file, then environment variables, then the stored token
// as a fallback when the environment did not provide one.
func buildBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	// The config flag is only registered on commands that use profile
	// overrides; absence means search the default locations.
	if f := cmd.Flags().Lookup("config"); f != nil {
		cfg.ConfigFilePath = f.Value.String()
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		var err error
		cfg.ProfileConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.ProfileConfigs = &config.File{
			Profiles: make(map[string]config.ProfileConfig),
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Fall back to the stored token when the environment did not set one.
	if cfg.Token == "" {
		if token, err := auth.NewTokenStore(cfg.StateDir).Load(); err == nil {
			cfg.Token = token
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// addReportFlags registers the shared report output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// parseReportFlags reads the shared report flags into the config.
func parseReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	return nil
}

// newAPIClient builds the backend client from the config.
func newAPIClient(cfg *config.Config) *api.Client {
	opts := []api.Option{
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithMaxBodySize(cfg.MaxBodySize),
	}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	return api.NewClient(cfg.APIBaseURL, opts...)
}

// newSignalContext returns a context cancelled on SIGINT/SIGTERM.
func newSignalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// readingReporter renders readings to the destination chosen for one
// command invocation. The report file is opened (and truncated) once per
// run, so commands that emit several readings append them all instead of
// each reading overwriting the previous one.
type readingReporter struct {
	writer report.Writer
	file   *os.File
}

// newReadingReporter opens the configured report destination and builds
// the writer for the requested format. Callers must Close the reporter.
func newReadingReporter(cfg *config.Config) (*readingReporter, error) {
	var output io.Writer = os.Stdout
	var file *os.File

	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Exports may contain personal birth data; keep them owner-readable.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		file = f
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	return &readingReporter{writer: writer, file: file}, nil
}

// Write renders one reading to the destination.
func (r *readingReporter) Write(reading *model.Reading) error {
	_, err := r.writer.Write(reading)
	return err
}

// Close closes the report file, if one was opened.
func (r *readingReporter) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// readingSink stores fetched readings: the sqlite history for logged-in
// users, the capped anonymous cache otherwise.
type readingSink struct {
	db    *database.ReadingDB
	cache *state.AnonCache
}

// newReadingSink chooses the storage backend based on login state.
// The database handle stays owned by the caller.
func newReadingSink(cfg *config.Config, db *database.ReadingDB) *readingSink {
	if cfg.Token != "" && db != nil {
		return &readingSink{db: db}
	}
	return &readingSink{cache: state.NewAnonCache(cfg.StateDir)}
}

// Save stores a reading in the active backend.
func (s *readingSink) Save(ctx context.Context, reading *model.Reading) error {
	if s.db != nil {
		return s.db.SaveReading(ctx, reading)
	}
	return s.cache.Add(reading)
}

// openDatabase opens the reading database in the configured data dir.
func openDatabase(cfg *config.Config) (*database.ReadingDB, error) {
	db, err := database.Open(cfg.DataDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadAppState loads the persisted app state from the state dir.
// A missing file yields zero-value state.
func loadAppState(cfg *config.Config) (*state.State, *state.Store, error) {
	store := state.NewStore(cfg.StateDir)
	st, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load app state: %w", err)
	}
	return st, store, nil
}
