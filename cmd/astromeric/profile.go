package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/database"
	"github.com/btltech/astromeric-sub000/internal/geocode"
	"github.com/btltech/astromeric-sub000/internal/model"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved birth profiles",
		Long: `Profile manages the saved birth profiles that readings are computed
for. Profiles are stored locally; the backend only sees the birth data
when a reading is requested.`,
	}

	cmd.AddCommand(newProfileAddCmd())
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileRemoveCmd())
	cmd.AddCommand(newProfileUseCmd())

	return cmd
}

// newProfileAddCmd creates the profile add command.
func newProfileAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a new birth profile",
		Long: `Add saves a new birth profile under the given name.

The birth date is required. Birth time and place are optional but make
chart-based readings more precise. With --locate, the place is geocoded
via OpenStreetMap and its coordinates stored with the profile.

Examples:
  # Minimal profile
  astromeric profile add alice --birth-date 1990-04-12

  # Full profile with geocoded birth place
  astromeric profile add alice --birth-date 1990-04-12 \
      --birth-time 08:30 --place "Lisbon, Portugal" --locate`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileAddCmd,
	}

	cmd.Flags().StringP("birth-date", "d", "", "Birth date in YYYY-MM-DD form (required)")
	cmd.Flags().StringP("birth-time", "t", "", "Birth time in HH:MM form")
	cmd.Flags().StringP("place", "p", "", "Birth place name")
	cmd.Flags().Bool("locate", false, "Geocode the birth place and store its coordinates")

	return cmd
}

// runProfileAddCmd executes the profile add command.
func runProfileAddCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	birthDate, err := cmd.Flags().GetString("birth-date")
	if err != nil {
		return err
	}
	birthTime, err := cmd.Flags().GetString("birth-time")
	if err != nil {
		return err
	}
	place, err := cmd.Flags().GetString("place")
	if err != nil {
		return err
	}
	locate, err := cmd.Flags().GetBool("locate")
	if err != nil {
		return err
	}

	if birthDate == "" {
		return errors.New("--birth-date is required")
	}
	parsedDate, err := time.Parse(model.BirthDateLayout, birthDate)
	if err != nil {
		return fmt.Errorf("invalid birth date %q: expected YYYY-MM-DD", birthDate)
	}

	profile := &model.SavedProfile{
		Name:      args[0],
		BirthDate: parsedDate,
		BirthTime: birthTime,
		Place:     place,
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	if locate {
		if place == "" {
			return errors.New("--locate requires --place")
		}

		geocoder := geocode.NewClient(
			geocode.WithUserAgent(cfg.UserAgent),
			geocode.WithLimit(1),
			geocode.WithTimeout(cfg.Timeout),
		)
		places, err := geocoder.Search(ctx, place)
		if err != nil {
			return fmt.Errorf("failed to locate %q: %w", place, err)
		}

		best := places[0]
		profile.Place = best.DisplayName
		profile.Latitude = best.Lat
		profile.Longitude = best.Lon

		logger.Info("birth place geocoded",
			"place", best.DisplayName,
			"lat", best.Lat,
			"lon", best.Lon,
		)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveProfile(ctx, profile); err != nil {
		return err
	}

	fmt.Printf("Saved profile %q\n", profile.Name)
	if profile.HasLocation() {
		fmt.Printf("  place: %s (%.4f, %.4f)\n", profile.Place, profile.Latitude, profile.Longitude)
	}

	return nil
}

// newProfileListCmd creates the profile list command.
func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := setupLogger(cmd)

			cfg, err := buildBaseConfig(cmd)
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

			profiles, err := db.ListProfiles(ctx)
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved profiles. Add one with 'astromeric profile add'.")
				return nil
			}

			appState, _, err := loadAppState(cfg)
			if err != nil {
				return err
			}

			for _, p := range profiles {
				marker := " "
				if p.Name == appState.ActiveProfile {
					marker = "*"
				}
				line := fmt.Sprintf("%s %s  %s", marker, p.Name, p.BirthDate.Format(model.BirthDateLayout))
				if p.Place != "" {
					line += "  " + p.Place
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// newProfileShowCmd creates the profile show command.
func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)

			cfg, err := buildBaseConfig(cmd)
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

			p, err := db.GetProfile(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", p.Name)
			fmt.Fprintf(out, "Birth date: %s\n", p.BirthDate.Format(model.BirthDateLayout))
			if p.BirthTime != "" {
				fmt.Fprintf(out, "Birth time: %s\n", p.BirthTime)
			}
			if p.Place != "" {
				fmt.Fprintf(out, "Place:      %s\n", p.Place)
			}
			if p.HasLocation() {
				fmt.Fprintf(out, "Location:   %.4f, %.4f\n", p.Latitude, p.Longitude)
			}
			fmt.Fprintf(out, "Saved:      %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// newProfileRemoveCmd creates the profile remove command.
func newProfileRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)

			cfg, err := buildBaseConfig(cmd)
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

			if err := db.RemoveProfile(ctx, args[0]); err != nil {
				return err
			}

			// Clear the active-profile pointer if it referenced the
			// removed profile.
			appState, store, err := loadAppState(cfg)
			if err == nil && appState.ActiveProfile == args[0] {
				appState.ActiveProfile = ""
				if err := store.Save(appState); err != nil {
					logger.Warn("failed to update app state", "error", err)
				}
			}

			fmt.Printf("Removed profile %q\n", args[0])
			return nil
		},
	}
}

// newProfileUseCmd creates the profile use command.
func newProfileUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Set the active profile used by default",
		Long: `Use marks a saved profile as the active one. Commands that take a
profile argument fall back to the active profile when none is given.

With --scope, the default forecast scope is persisted as well.

Examples:
  astromeric profile use alice
  astromeric profile use alice --scope weekly`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileUseCmd,
	}

	cmd.Flags().StringP("scope", "s", "", "Also persist a default forecast scope")

	return cmd
}

// runProfileUseCmd executes the profile use command.
func runProfileUseCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
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

	// Verify the profile exists before pointing state at it.
	if _, err := db.GetProfile(ctx, args[0]); err != nil {
		if errors.Is(err, database.ErrProfileNotFound) {
			return fmt.Errorf("profile %q: %w", args[0], err)
		}
		return err
	}

	appState, store, err := loadAppState(cfg)
	if err != nil {
		return err
	}
	appState.ActiveProfile = args[0]

	scopeFlag, err := cmd.Flags().GetString("scope")
	if err != nil {
		return err
	}
	if scopeFlag != "" {
		scope, err := model.ParseScope(scopeFlag)
		if err != nil {
			return err
		}
		appState.SetScope(scope)
	}

	if err := store.Save(appState); err != nil {
		return err
	}

	msg := fmt.Sprintf("Active profile is now %q", args[0])
	if scopeFlag != "" {
		msg += fmt.Sprintf(" (default scope: %s)", strings.ToLower(scopeFlag))
	}
	fmt.Println(msg)

	return nil
}
