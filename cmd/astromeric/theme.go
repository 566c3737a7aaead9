package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewThemeCmd creates the theme command.
func NewThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the UI theme preference",
		Long: `Theme shows or sets the persisted UI theme preference. The web app
syncs the same preference to the account; storing it here keeps both
frontends in agreement.

Without arguments, the current preference is printed.

Examples:
  # Show the current theme
  astromeric theme

  # Switch to the dark theme
  astromeric theme dark`,
		Args: cobra.MaximumNArgs(1),
		RunE: runThemeCmd,
	}
}

// runThemeCmd executes the theme command.
func runThemeCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	appState, store, err := loadAppState(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if appState.Theme == "" {
			fmt.Fprintln(out, "No theme preference set (terminal default)")
			return nil
		}
		fmt.Fprintf(out, "Theme: %s\n", appState.Theme)
		return nil
	}

	theme := strings.ToLower(args[0])
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("invalid theme %q: must be dark or light", args[0])
	}

	appState.Theme = theme
	if err := store.Save(appState); err != nil {
		return err
	}

	fmt.Fprintf(out, "Theme set to %s\n", theme)
	return nil
}
