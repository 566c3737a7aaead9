package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/api"
	"github.com/btltech/astromeric-sub000/internal/config"
	"github.com/btltech/astromeric-sub000/internal/model"
	"github.com/btltech/astromeric-sub000/internal/state"
)

// NewForecastCmd creates the forecast command.
func NewForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast [profile-name...]",
		Short: "Fetch an astrology forecast for saved profiles",
		Long: `Forecast fetches a backend-computed astrology forecast for one or
more saved birth profiles.

Without arguments, the active profile from the app state is used.
Multiple profiles are fetched concurrently.

When logged in, readings are saved to the local history. Anonymous
readings go to a small cache holding the last 10 readings.

Examples:
  # Forecast for the active profile
  astromeric forecast

  # Daily forecast for one profile
  astromeric forecast alice

  # Weekly forecasts for several profiles at once
  astromeric forecast --scope weekly alice bob carol

  # Markdown report written to a file
  astromeric forecast --markdown -o alice.md alice

Configuration file (.astromeric) example:
  profiles:
    alice:
      scope: weekly
      locale: pt-BR`,
		Args: cobra.ArbitraryArgs,
		RunE: runForecastCmd,
	}

	cmd.Flags().StringP("scope", "s", "",
		"Forecast scope: daily, weekly, or monthly (default from app state)")
	cmd.Flags().StringP("locale", "l", "",
		"Request forecast text in a specific locale (e.g. pt-BR)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent fetches")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .astromeric in current or home directory)")
	addReportFlags(cmd)

	return cmd
}

// runForecastCmd executes the forecast command.
func runForecastCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if err := parseReportFlags(cmd, cfg); err != nil {
		return err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	locale, err := cmd.Flags().GetString("locale")
	if err != nil {
		return err
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	appState, _, err := loadAppState(cfg)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		if appState.ActiveProfile == "" {
			return errors.New("no profile specified (pass a profile name or set one with 'astromeric profile use')")
		}
		names = []string{appState.ActiveProfile}
	}

	scope, err := resolveScope(cmd, cfg, appState, names)
	if err != nil {
		return err
	}
	cfg.Scope = scope

	profiles := make([]*model.SavedProfile, 0, len(names))
	for _, name := range names {
		profile, err := db.GetProfile(ctx, name)
		if err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
		profiles = append(profiles, profile)
	}

	logger.Info("fetching forecasts",
		"profiles", names,
		"scope", cfg.Scope.String(),
		"batchSize", cfg.BatchSize,
	)

	sink := newReadingSink(cfg, db)

	reporter, err := newReadingReporter(cfg)
	if err != nil {
		return err
	}
	defer reporter.Close()

	if len(profiles) > 1 && cfg.BatchSize > 1 {
		return runBatchForecast(ctx, cfg, profiles, scope, locale, reporter, sink, logger)
	}
	return runSequentialForecast(ctx, cfg, profiles, scope, locale, reporter, sink, logger)
}

// resolveScope determines the forecast scope. Precedence: the --scope flag,
// then a per-profile config override (single-profile runs only), then the
// persisted app state, then the built-in default.
func resolveScope(cmd *cobra.Command, cfg *config.Config, appState *state.State, names []string) (model.Scope, error) {
	scopeFlag, err := cmd.Flags().GetString("scope")
	if err != nil {
		return 0, err
	}
	if scopeFlag != "" {
		scope, err := model.ParseScope(scopeFlag)
		if err != nil {
			return 0, err
		}
		return scope, nil
	}

	if len(names) == 1 && cfg.ProfileConfigs != nil {
		pc := cfg.ProfileConfigs.GetProfileConfig(names[0])
		if pc.Scope != "" {
			scope, err := model.ParseScope(pc.Scope)
			if err != nil {
				return 0, fmt.Errorf("config file scope for %q: %w", names[0], err)
			}
			return scope, nil
		}
	}

	return appState.Scope(config.DefaultScope), nil
}

// runSequentialForecast fetches forecasts one at a time, applying
// per-profile config overrides (locale, headers).
func runSequentialForecast(ctx context.Context, cfg *config.Config, profiles []*model.SavedProfile, scope model.Scope, locale string, reporter *readingReporter, sink *readingSink, logger *slog.Logger) error {
	for _, profile := range profiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pc := cfg.ProfileConfigs.GetProfileConfig(profile.Name)
		profileLocale := locale
		if profileLocale == "" {
			profileLocale = pc.Locale
		}

		client := newProfileClient(cfg, pc.Headers)

		fmt.Printf("Fetching %s forecast for %s...\n", scope, profile.Name)
		startTime := time.Now()

		forecast, err := client.Forecast(ctx, profile, scope, profileLocale)
		if err != nil {
			logger.Error("forecast failed", "profile", profile.Name, "error", err)
			fmt.Fprintf(os.Stderr, "Forecast error for %s: %v\n", profile.Name, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Received in %s\n", elapsed.Round(time.Millisecond))

		if err := handleForecast(ctx, profile, scope, forecast, reporter, sink, logger); err != nil {
			return err
		}
	}

	return nil
}

// runBatchForecast fetches forecasts concurrently via the batch fetcher.
// Per-profile headers from the config file are not applied in batch mode.
func runBatchForecast(ctx context.Context, cfg *config.Config, profiles []*model.SavedProfile, scope model.Scope, locale string, reporter *readingReporter, sink *readingSink, logger *slog.Logger) error {
	fmt.Printf("Fetching %d forecasts (concurrency: %d)...\n\n",
		len(profiles), cfg.BatchSize)

	if cfg.ProfileConfigs != nil && len(cfg.ProfileConfigs.Profiles) > 0 {
		logger.Warn("batch fetching uses default settings only; per-profile headers are ignored",
			"profileCount", len(cfg.ProfileConfigs.Profiles))
	}

	startTime := time.Now()

	fetcher := api.NewBatchFetcher(
		newAPIClient(cfg),
		api.WithConcurrency(cfg.BatchSize),
		api.WithBatchLogger(logger),
	)

	results, err := fetcher.FetchForecasts(ctx, profiles, scope, locale)
	if err != nil {
		return err
	}

	for i, result := range results {
		if result.Err != nil {
			logger.Error("forecast failed", "profile", result.Profile.Name, "error", result.Err)
			fmt.Fprintf(os.Stderr, "Forecast error for %s: %v\n", result.Profile.Name, result.Err)
			continue
		}

		fmt.Printf("[%d/%d] %s\n", i+1, len(results), result.Profile.Name)
		if err := handleForecast(ctx, result.Profile, scope, result.Forecast, reporter, sink, logger); err != nil {
			return err
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nCompleted in %s\n", elapsed.Round(time.Millisecond))

	return nil
}

// handleForecast wraps, renders, and stores one fetched forecast.
func handleForecast(ctx context.Context, profile *model.SavedProfile, scope model.Scope, forecast *model.Forecast, reporter *readingReporter, sink *readingSink, logger *slog.Logger) error {
	reading, err := model.NewReading(uuid.NewString(), model.KindForecast, profile.Name, scope, forecast)
	if err != nil {
		return err
	}

	if err := reporter.Write(reading); err != nil {
		logger.Error("report failed", "profile", profile.Name, "error", err)
	}

	if err := sink.Save(ctx, reading); err != nil {
		logger.Error("failed to save reading", "profile", profile.Name, "error", err)
	}

	return nil
}

// newProfileClient builds a client carrying per-profile extra headers.
func newProfileClient(cfg *config.Config, headers map[string]string) *api.Client {
	opts := []api.Option{
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithMaxBodySize(cfg.MaxBodySize),
	}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	if len(headers) > 0 {
		opts = append(opts, api.WithHeaders(headers))
	}
	return api.NewClient(cfg.APIBaseURL, opts...)
}
