// Package main provides the entry point for the Astromeric CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Astromeric.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "astromeric",
		Short: "Terminal client for Astromeric readings",
		Long: `Astromeric is a terminal client for the Astromeric backend.
It fetches astrology forecasts, numerology readings, and compatibility
reports for saved birth profiles, and keeps a local habit tracker and
journal alongside the reading history.

Readings are computed by the backend; this client never calculates
charts or numbers locally. Without a login, readings are kept in a
small anonymous cache instead of the full history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewForecastCmd())
	cmd.AddCommand(NewNumerologyCmd())
	cmd.AddCommand(NewCompatCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewPlaceCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewHabitCmd())
	cmd.AddCommand(NewJournalCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewThemeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
