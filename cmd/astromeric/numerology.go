package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// NewNumerologyCmd creates the numerology command.
func NewNumerologyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numerology <profile-name>",
		Short: "Fetch a numerology reading for a saved profile",
		Long: `Numerology fetches the backend-computed core numbers for a saved
profile: life path, expression, soul urge, personality, and birthday,
each with an interpretation.

Examples:
  # Numerology reading for a profile
  astromeric numerology alice

  # JSON export
  astromeric numerology --json -o alice-numbers.json alice`,
		Args: cobra.ExactArgs(1),
		RunE: runNumerologyCmd,
	}

	cmd.Flags().StringP("locale", "l", "",
		"Request interpretation text in a specific locale (e.g. pt-BR)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .astromeric in current or home directory)")
	addReportFlags(cmd)

	return cmd
}

// runNumerologyCmd executes the numerology command.
func runNumerologyCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if err := parseReportFlags(cmd, cfg); err != nil {
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

	name := args[0]
	profile, err := db.GetProfile(ctx, name)
	if err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}

	pc := cfg.ProfileConfigs.GetProfileConfig(name)
	if locale == "" {
		locale = pc.Locale
	}
	client := newProfileClient(cfg, pc.Headers)

	logger.Info("fetching numerology", "profile", name)

	numerology, err := client.Numerology(ctx, profile, locale)
	if err != nil {
		return fmt.Errorf("numerology for %s: %w", name, err)
	}

	reading, err := model.NewReading(uuid.NewString(), model.KindNumerology, name, model.ScopeNone, numerology)
	if err != nil {
		return err
	}

	reporter, err := newReadingReporter(cfg)
	if err != nil {
		return err
	}
	defer reporter.Close()

	if err := reporter.Write(reading); err != nil {
		return err
	}

	sink := newReadingSink(cfg, db)
	if err := sink.Save(ctx, reading); err != nil {
		logger.Error("failed to save reading", "profile", name, "error", err)
	}

	return nil
}
