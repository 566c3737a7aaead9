package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/model"
	"github.com/btltech/astromeric-sub000/internal/state"
)

// NewHistoryCmd creates the history command group.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse stored readings",
		Long: `History browses stored readings. When logged in, readings live in
the local database; anonymous readings live in a cache holding the last
10 readings.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

// newHistoryListCmd creates the history list command.
func newHistoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored readings, newest first",
		RunE:  runHistoryListCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of readings to list")
	cmd.Flags().StringP("profile", "p", "", "Only list readings for this profile")

	return cmd
}

// runHistoryListCmd executes the history list command.
func runHistoryListCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	profileFilter, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	var readings []model.Reading
	if cfg.Token != "" {
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		stored, err := db.ListReadings(ctx, profileFilter, limit)
		if err != nil {
			return err
		}
		for _, r := range stored {
			readings = append(readings, *r)
		}
	} else {
		cached, err := state.NewAnonCache(cfg.StateDir).List()
		if err != nil {
			return err
		}
		for _, r := range cached {
			if profileFilter != "" && r.ProfileName != profileFilter {
				continue
			}
			readings = append(readings, r)
			if limit > 0 && len(readings) >= limit {
				break
			}
		}
	}

	out := cmd.OutOrStdout()
	if len(readings) == 0 {
		fmt.Fprintln(out, "No stored readings.")
		return nil
	}

	for _, r := range readings {
		line := fmt.Sprintf("%s  %-13s %-16s %s",
			r.ID, r.Kind, r.ProfileName,
			r.CreatedAt.Format("2006-01-02 15:04"))
		if r.Kind == model.KindForecast {
			line += "  " + r.Scope.String()
		}
		fmt.Fprintln(out, line)
	}

	if cfg.Token == "" {
		fmt.Fprintf(out, "\n(anonymous cache, last %d readings; log in for full history)\n", state.AnonCacheCap)
	}

	return nil
}

// newHistoryShowCmd creates the history show command.
func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Re-render a stored reading",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShowCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runHistoryShowCmd executes the history show command.
func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
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

	var reading *model.Reading
	if cfg.Token != "" {
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		reading, err = db.GetReading(ctx, args[0])
		if err != nil {
			return err
		}
		if reading == nil {
			return fmt.Errorf("reading %q not found in history", args[0])
		}
	} else {
		reading, err = state.NewAnonCache(cfg.StateDir).Get(args[0])
		if err != nil {
			return err
		}
	}

	reporter, err := newReadingReporter(cfg)
	if err != nil {
		return err
	}
	defer reporter.Close()

	return reporter.Write(reading)
}

// newHistoryClearCmd creates the history clear command.
func newHistoryClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored readings",
		Long: `Clear deletes stored readings. When logged in, the full history is
cleared; with --anon, only the anonymous cache is emptied.`,
		RunE: runHistoryClearCmd,
	}

	cmd.Flags().Bool("anon", false, "Clear the anonymous cache instead of the history")

	return cmd
}

// runHistoryClearCmd executes the history clear command.
func runHistoryClearCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	anonOnly, err := cmd.Flags().GetBool("anon")
	if err != nil {
		return err
	}

	if anonOnly || cfg.Token == "" {
		if err := state.NewAnonCache(cfg.StateDir).Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Anonymous cache cleared")
		return nil
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ClearReadings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d readings\n", n)
	return nil
}
