package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Schedule writes the season calendar to w followed by its drivers, teams and standings. Lists
// the source has no data for are written as the "not available" placeholder; the standings are
// left out entirely when empty.
func Schedule(w io.Writer, s domain.Schedule) error {
	title := fmt.Sprintf("%d Season", s.Season.Year)

	rounds := make([]table.Row, 0, len(s.Rounds))
	for _, m := range s.Rounds {
		rounds = append(rounds, table.Row{m.RoundNumber, m.Name, m.CircuitName, m.Place(), m.Date})
	}
	if err := listTable(w, title, table.Row{"Round", "Grand Prix", "Circuit", "Location", "Date"}, rounds); err != nil {
		return err
	}

	drivers := make([]table.Row, 0, len(s.Drivers))
	for _, d := range s.Drivers {
		drivers = append(drivers, table.Row{d.Number, d.Name, d.TeamName})
	}
	if err := listTable(w, "Drivers", table.Row{"No.", "Driver", "Team"}, drivers); err != nil {
		return err
	}

	teams := make([]table.Row, 0, len(s.Teams))
	for _, t := range s.Teams {
		teams = append(teams, table.Row{t.Name, t.Nationality, t.Color})
	}
	if err := listTable(w, "Constructors", table.Row{"Team", "Nationality", "Colour"}, teams); err != nil {
		return err
	}

	if len(s.Standings) == 0 {
		return nil
	}
	standings := make([]table.Row, 0, len(s.Standings))
	for _, st := range s.Standings {
		standings = append(standings, table.Row{st.Position, st.Driver.Name, st.Driver.TeamName, st.Points, strconv.Itoa(st.Wins)})
	}
	return listTable(w, "Drivers' Championship", table.Row{"Pos", "Driver", "Team", "Points", "Wins"}, standings)
}

func listTable(w io.Writer, title string, header table.Row, rows []table.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n\n", title, NotAvailableMessage)
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.Render()
	_, err := fmt.Fprintln(w)
	return err
}
