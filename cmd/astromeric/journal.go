package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewJournalCmd creates the journal command group.
func NewJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Keep a private reading journal",
		Long: `Journal keeps short private notes alongside the reading history.
Entries are stored locally and never sent to the backend.`,
	}

	cmd.AddCommand(newJournalAddCmd())
	cmd.AddCommand(newJournalListCmd())

	return cmd
}

// newJournalAddCmd creates the journal add command.
func newJournalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a journal entry",
		Long: `Add records a journal entry. An optional mood tag can be attached.

Examples:
  astromeric journal add "Slept badly, forecast was spot on."
  astromeric journal add --mood calm "Morning meditation done."`,
		Args: cobra.MinimumNArgs(1),
		RunE: runJournalAddCmd,
	}

	cmd.Flags().StringP("mood", "m", "", "Optional one-word mood tag")

	return cmd
}

// runJournalAddCmd executes the journal add command.
func runJournalAddCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	mood, err := cmd.Flags().GetString("mood")
	if err != nil {
		return err
	}

	body := strings.TrimSpace(strings.Join(args, " "))
	if body == "" {
		return errors.New("journal entry must not be empty")
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.AddJournalEntry(ctx, body, mood)
	if err != nil {
		return err
	}

	fmt.Printf("Added journal entry #%d\n", id)
	return nil
}

// newJournalListCmd creates the journal list command.
func newJournalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE:  runJournalListCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of entries to list")

	return cmd
}

// runJournalListCmd executes the journal list command.
func runJournalListCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
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

	entries, err := db.ListJournalEntries(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journal entries.")
		return nil
	}

	for _, e := range entries {
		header := e.CreatedAt.Format("2006-01-02 15:04")
		if e.Mood != "" {
			header += "  [" + e.Mood + "]"
		}
		fmt.Fprintln(out, header)
		fmt.Fprintf(out, "  %s\n\n", e.Body)
	}

	return nil
}
