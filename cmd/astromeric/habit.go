package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/habit"
)

// NewHabitCmd creates the habit command group.
func NewHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track daily habits and streaks",
		Long: `Habit tracks daily habits locally. Each habit records which calendar
days it was completed; list shows the current streak per habit.

A streak stays alive as long as no full day is missed: completing a
habit yesterday but not yet today still counts.`,
	}

	cmd.AddCommand(newHabitAddCmd())
	cmd.AddCommand(newHabitDoneCmd())
	cmd.AddCommand(newHabitListCmd())
	cmd.AddCommand(newHabitRemoveCmd())

	return cmd
}

// newHabitAddCmd creates the habit add command.
func newHabitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new habit",
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

			if _, err := db.AddHabit(ctx, args[0]); err != nil {
				return err
			}

			fmt.Printf("Added habit %q\n", args[0])
			return nil
		},
	}
}

// newHabitDoneCmd creates the habit done command.
func newHabitDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <name>",
		Short: "Mark a habit completed",
		Long: `Done marks a habit completed for today, or for another day with
--date. Marking the same day twice is a no-op.

Examples:
  astromeric habit done meditation
  astromeric habit done meditation --date 2026-08-20`,
		Args: cobra.ExactArgs(1),
		RunE: runHabitDoneCmd,
	}

	cmd.Flags().StringP("date", "d", "", "Completion day in YYYY-MM-DD form (default today)")

	return cmd
}

// runHabitDoneCmd executes the habit done command.
func runHabitDoneCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	dateFlag, err := cmd.Flags().GetString("date")
	if err != nil {
		return err
	}

	day := time.Now()
	if dateFlag != "" {
		day, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateFlag)
		}
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := db.GetHabit(ctx, args[0])
	if err != nil {
		return err
	}

	if err := db.MarkDone(ctx, h.ID, day); err != nil {
		return err
	}

	days, err := db.Completions(ctx, h.ID)
	if err != nil {
		return err
	}
	streak := habit.Streak(time.Now(), days)

	fmt.Printf("Marked %q done for %s (streak: %d)\n",
		h.Name, day.Format("2006-01-02"), streak)
	return nil
}

// newHabitListCmd creates the habit list command.
func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with their current streaks",
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

			habits, err := db.ListHabits(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(habits) == 0 {
				fmt.Fprintln(out, "No habits. Add one with 'astromeric habit add'.")
				return nil
			}

			now := time.Now()
			for _, h := range habits {
				days, err := db.Completions(ctx, h.ID)
				if err != nil {
					return err
				}

				current := habit.Streak(now, days)
				longest := habit.Longest(days)

				fmt.Fprintf(out, "%-24s streak: %-4d best: %-4d total: %d\n",
					h.Name, current, longest, len(days))
			}
			return nil
		},
	}
}

// newHabitRemoveCmd creates the habit remove command.
func newHabitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a habit and its completion history",
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

			if err := db.RemoveHabit(ctx, args[0]); err != nil {
				return err
			}

			fmt.Printf("Removed habit %q\n", args[0])
			return nil
		},
	}
}
