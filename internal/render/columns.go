// Package render maps canonical result rows onto the column set that suits their session and
// source, and prints them as plain text tables.
package render

import (
	"strconv"

	"github.com/bcdxn/f1results/internal/domain"
)

const (
	ColumnPosition = "pos"
	ColumnDriver   = "driver"
	ColumnTeam     = "team"
	ColumnQ1       = "q1"
	ColumnQ2       = "q2"
	ColumnQ3       = "q3"
	ColumnBestTime = "best"
	ColumnLaps     = "laps"
	ColumnTime     = "time"
	ColumnPoints   = "points"
)

// NotAvailableMessage is displayed in place of a table with no rows.
const NotAvailableMessage = "results not available"

// Column describes one displayed column. Width is a hint for fixed width renderers.
type Column struct {
	Key   string
	Title string
	Width int
}

var (
	colPosition = Column{Key: ColumnPosition, Title: "Pos", Width: 5}
	colDriver   = Column{Key: ColumnDriver, Title: "Driver", Width: 24}
	colTeam     = Column{Key: ColumnTeam, Title: "Team", Width: 24}
)

// Columns returns the columns worth displaying for a table of the given source and session.
// Historical qualifying carries the three knockout segments while live qualifying only has a best
// lap; only the historical source awards points. The race time column falls back to the
// classification status for drivers without a finishing time.
func Columns(tag domain.SourceTag, kind domain.SessionKind) []Column {
	cols := []Column{colPosition, colDriver, colTeam}

	switch kind {
	case domain.SessionKindQualifying:
		if tag.Historical() {
			return append(cols,
				Column{Key: ColumnQ1, Title: "Q1", Width: 10},
				Column{Key: ColumnQ2, Title: "Q2", Width: 10},
				Column{Key: ColumnQ3, Title: "Q3", Width: 10},
			)
		}
		return append(cols, Column{Key: ColumnBestTime, Title: "Best Time", Width: 12})
	default:
		cols = append(cols,
			Column{Key: ColumnLaps, Title: "Laps", Width: 6},
			Column{Key: ColumnTime, Title: "Time/Status", Width: 14},
		)
		if tag.Historical() {
			cols = append(cols, Column{Key: ColumnPoints, Title: "Points", Width: 8})
		}
		return cols
	}
}

// Cells maps a row onto the keys of Columns(tag, kind).
func Cells(r domain.Result, tag domain.SourceTag, kind domain.SessionKind) map[string]string {
	cells := map[string]string{
		ColumnPosition: strconv.Itoa(r.Position),
		ColumnDriver:   r.DriverName,
		ColumnTeam:     r.TeamName,
	}

	switch kind {
	case domain.SessionKindQualifying:
		if tag.Historical() {
			cells[ColumnQ1] = segment(r.Segments, 0)
			cells[ColumnQ2] = segment(r.Segments, 1)
			cells[ColumnQ3] = segment(r.Segments, 2)
		} else {
			cells[ColumnBestTime] = orNotAvailable(r.Time)
		}
	default:
		cells[ColumnLaps] = strconv.Itoa(r.Laps)
		cells[ColumnTime] = orNotAvailable(r.Time)
		if tag.Historical() {
			cells[ColumnPoints] = "0"
			if r.Points != nil {
				cells[ColumnPoints] = *r.Points
			}
		}
	}
	return cells
}

func segment(segments []string, i int) string {
	if i < len(segments) {
		return orNotAvailable(segments[i])
	}
	return domain.NotAvailable
}

func orNotAvailable(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
