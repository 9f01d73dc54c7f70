package results

import (
	"strconv"
	"strings"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/source"
)

// normalizeLegacy converts the pre-joined historical results. The upstream order is the
// classification, so rows are emitted in input order and never re-sorted.
func normalizeLegacy(l *source.Legacy, kind domain.SessionKind) []domain.Result {
	race, ok := l.Race()
	if !ok {
		return []domain.Result{}
	}

	switch kind {
	case domain.SessionKindQualifying:
		rows := make([]domain.Result, 0, len(race.QualifyingResults))
		for i, r := range race.QualifyingResults {
			rows = append(rows, legacyQualifyingRow(i, r))
		}
		return rows
	case domain.SessionKindRace:
		rows := make([]domain.Result, 0, len(race.Results))
		for i, r := range race.Results {
			rows = append(rows, legacyRaceRow(i, r))
		}
		return rows
	default:
		return []domain.Result{}
	}
}

func legacyRaceRow(index int, r source.RaceResult) domain.Result {
	driver := EntrantDriver(r.Number, r.Driver, r.Constructor)
	row := domain.Result{
		Position:     legacyPosition(index, r.Position),
		DriverNumber: driver.Number,
		DriverName:   driver.Name,
		TeamName:     driver.TeamName,
		Laps:         atoiOrZero(r.Laps.String()),
		Time:         r.Status.String(),
		Status:       r.Status.String(),
	}
	// the finishing time is only given to classified finishers on the lead lap
	if r.Time != nil && r.Time.Time != "" {
		row.Time = r.Time.Time.String()
	}
	if row.Time == "" {
		row.Time = domain.NotAvailable
	}
	if r.Points != nil {
		points := r.Points.String()
		row.Points = &points
	}
	return row
}

func legacyQualifyingRow(index int, r source.QualifyingResult) domain.Result {
	driver := EntrantDriver(r.Number, r.Driver, r.Constructor)
	return domain.Result{
		Position:     legacyPosition(index, r.Position),
		DriverNumber: driver.Number,
		DriverName:   driver.Name,
		TeamName:     driver.TeamName,
		Segments: []string{
			segmentOrNA(r.Q1),
			segmentOrNA(r.Q2),
			segmentOrNA(r.Q3),
		},
	}
}

// EntrantDriver joins the historical driver and constructor sub-objects, either of which may be
// missing from a partial record. The driver's permanent number stands in for a missing car number.
func EntrantDriver(number source.Text, e *source.Entrant, c *source.Constructor) domain.Driver {
	num := number.String()
	var name, team string
	if e != nil {
		name = strings.TrimSpace(e.GivenName.String() + " " + e.FamilyName.String())
		if num == "" {
			num = e.PermanentNumber.String()
		}
	}
	if c != nil {
		team = c.Name.String()
	}
	return domain.NewDriver(num, name, team, "")
}

// legacyPosition reads the upstream position, falling back to the record's place in the list
// when it is missing or garbled.
func legacyPosition(index int, position source.Text) int {
	if p, err := strconv.Atoi(position.String()); err == nil && p >= 1 {
		return p
	}
	return index + 1
}

func segmentOrNA(t source.Text) string {
	if strings.TrimSpace(t.String()) == "" {
		return domain.NotAvailable
	}
	return t.String()
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
