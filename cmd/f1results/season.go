package main

import (
	"fmt"
	"time"

	"github.com/bcdxn/f1results/internal/render"
	"github.com/spf13/cobra"
)

func seasonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Show the calendar, drivers and constructors of a season",
		Long: "Fetch the Grand Prix calendar of a season along with its drivers and constructors. Use the " +
			"round numbers it lists with the race command.",
		Example: "  f1results season --year 2008\n" +
			"  f1results race --year 2008 --round 3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, _ := cmd.Flags().GetInt("year")
			if err := a.validateSeason(year, time.Now()); err != nil {
				return err
			}

			sched, err := a.client.Schedule(cmd.Context(), year)
			if err != nil {
				return err
			}
			return render.Schedule(cmd.OutOrStdout(), sched)
		},
	}

	cmd.Flags().Int("year", time.Now().Year(), "Championship season")

	return cmd
}

// validateSeason rejects years outside of the catalogue listed by the seasons command.
func (a *app) validateSeason(year int, now time.Time) error {
	if year < a.cfg.FirstSeason || year > now.Year() {
		return fmt.Errorf("season must be between %d and %d", a.cfg.FirstSeason, now.Year())
	}
	return nil
}
