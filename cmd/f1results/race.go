package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/render"
	"github.com/bcdxn/f1results/internal/tui"
	"github.com/bcdxn/f1results/internal/weekend"
	"github.com/spf13/cobra"
)

func raceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race",
		Short: "Show the qualifying and race results of a round",
		Long:  "Fetch, classify and display the qualifying and race classification of one round of a season",
		Example: "  f1results race --year 2021 --round 1\n" +
			"  f1results race --year 2023 --round 5 --plain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, _ := cmd.Flags().GetInt("year")
			round, _ := cmd.Flags().GetInt("round")
			plain, _ := cmd.Flags().GetBool("plain")
			session, _ := cmd.Flags().GetString("session")

			if err := a.validateSeason(year, time.Now()); err != nil {
				return err
			}
			if round < 1 {
				return fmt.Errorf("round must be 1 or greater")
			}
			only, err := sessionFilter(plain, session)
			if err != nil {
				return err
			}

			load := func(ctx context.Context) (domain.Weekend, error) {
				return weekend.Load(ctx, a.client, year, round, a.logger)
			}
			if plain {
				return printWeekend(cmd.Context(), cmd.OutOrStdout(), load, only)
			}

			p := tui.NewResults(load,
				tui.WithContext(cmd.Context()),
				tui.WithLogger(a.logger),
				tui.WithLoadingMessage(fmt.Sprintf("Loading %d round %d...", year, round)),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Int("year", time.Now().Year(), "Championship season")
	cmd.Flags().Int("round", 1, "Round within the season, starting at 1")
	cmd.Flags().Bool("plain", false, "Print plain text tables instead of starting the interactive view")
	cmd.Flags().String("session", "", "With --plain, print only this session: qualifying or race")

	return cmd
}

// sessionFilter resolves the --session flag, which only applies to plain output; the interactive
// view always offers every session as a tab.
func sessionFilter(plain bool, session string) (domain.SessionKind, error) {
	if session == "" {
		return "", nil
	}
	if !plain {
		return "", errors.New("--session can only be used together with --plain")
	}
	return domain.ParseSessionKind(session)
}

// printWeekend writes the sessions of the weekend as plain text tables; every session when only is
// empty.
func printWeekend(ctx context.Context, w io.Writer, load tui.LoadFunc, only domain.SessionKind) error {
	wk, err := load(ctx)
	if err != nil {
		return err
	}

	heading := wk.Meeting.Name
	if place := wk.Meeting.Place(); place != "" {
		heading = fmt.Sprintf("%s (%s)", heading, place)
	}
	fmt.Fprintf(w, "%s\nRound %d • %d\n\n", heading, wk.Meeting.RoundNumber, wk.Meeting.Season)

	for _, t := range wk.Tables {
		if only != "" && t.Session != only {
			continue
		}
		if err := render.Plain(w, t.Session.Title(), t); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
