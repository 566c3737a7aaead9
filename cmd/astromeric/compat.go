package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// NewCompatCmd creates the compat command.
func NewCompatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat <profile-a> <profile-b>",
		Short: "Fetch a compatibility reading for two saved profiles",
		Long: `Compat fetches a backend-computed compatibility reading for a pair
of saved profiles. Aspect scores arrive on a 0-10 scale; the overall
score is shown as a percentage.

Examples:
  # Compatibility between two profiles
  astromeric compat alice bob

  # Markdown report
  astromeric compat --markdown alice bob`,
		Args: cobra.ExactArgs(2),
		RunE: runCompatCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .astromeric in current or home directory)")
	addReportFlags(cmd)

	return cmd
}

// runCompatCmd executes the compat command.
func runCompatCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if err := parseReportFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	profileA, err := db.GetProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("profile %q: %w", args[0], err)
	}
	profileB, err := db.GetProfile(ctx, args[1])
	if err != nil {
		return fmt.Errorf("profile %q: %w", args[1], err)
	}

	client := newAPIClient(cfg)

	logger.Info("fetching compatibility", "profileA", profileA.Name, "profileB", profileB.Name)

	result, err := client.Compatibility(ctx, profileA, profileB)
	if err != nil {
		return fmt.Errorf("compatibility for %s and %s: %w", profileA.Name, profileB.Name, err)
	}

	pairName := profileA.Name + "+" + profileB.Name
	reading, err := model.NewReading(uuid.NewString(), model.KindCompatibility, pairName, model.ScopeNone, result)
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
		logger.Error("failed to save reading", "profiles", pairName, "error", err)
	}

	return nil
}
