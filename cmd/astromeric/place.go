package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/geocode"
)

// NewPlaceCmd creates the place command.
func NewPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place <query>",
		Short: "Search for a birth place",
		Long: `Place searches OpenStreetMap's Nominatim service for place
candidates matching the query. Use it to find the exact place name and
coordinates before saving a profile.

Examples:
  astromeric place "Lisbon"
  astromeric place "Springfield, Illinois" --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPlaceCmd,
	}

	cmd.Flags().IntP("limit", "n", 0, "Maximum number of candidates to show")

	return cmd
}

// runPlaceCmd executes the place command.
func runPlaceCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.GeocodeLimit
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	query := strings.Join(args, " ")

	geocoder := geocode.NewClient(
		geocode.WithUserAgent(cfg.UserAgent),
		geocode.WithLimit(limit),
		geocode.WithTimeout(cfg.Timeout),
	)

	places, err := geocoder.Search(ctx, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, p := range places {
		fmt.Fprintf(out, "%d. %s\n", i+1, p.DisplayName)
		fmt.Fprintf(out, "   %.4f, %.4f", p.Lat, p.Lon)
		if p.Type != "" {
			fmt.Fprintf(out, "  (%s)", p.Type)
		}
		fmt.Fprintln(out)
	}

	return nil
}
