package results

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/source"
)

// normalizeLive joins the three live record streams into a classification:
//  1. resolve each driver's final position from their latest position snapshot
//  2. aggregate laps per driver (best lap for qualifying, lap count for races)
//  3. resolve drivers against the roster and order by final position
//
// Drivers without a position snapshot can't be ranked and are left out.
func normalizeLive(l *source.Live, kind domain.SessionKind) []domain.Result {
	final := finalPositions(l.Positions)
	if len(final) == 0 {
		return []domain.Result{}
	}

	roster := rosterByNumber(l.Drivers)
	standings := orderStandings(final)

	var lapsOrTime func(driverNumber int, row *domain.Result)
	switch kind {
	case domain.SessionKindQualifying:
		best := bestLaps(l.Laps)
		lapsOrTime = func(n int, row *domain.Result) {
			row.Time = domain.NotAvailable
			if d, ok := best[n]; ok {
				row.Time = formatLapTime(d)
			}
		}
	case domain.SessionKindRace:
		counts := lapCounts(l.Laps)
		lapsOrTime = func(n int, row *domain.Result) {
			row.Laps = counts[n]
			row.Time = domain.NotAvailable
		}
	default:
		return []domain.Result{}
	}

	rows := make([]domain.Result, 0, len(standings))
	for _, s := range standings {
		driver := liveDriver(s.driverNumber, roster)
		row := domain.Result{
			Position:     s.position,
			DriverNumber: driver.Number,
			DriverName:   driver.Name,
			TeamName:     driver.TeamName,
			TeamColor:    driver.TeamColor,
		}
		lapsOrTime(s.driverNumber, &row)
		rows = append(rows, row)
	}
	return rows
}

/* Position Resolution
------------------------------------------------------------------------------------------------- */

// standing is a driver's resolved place in the classification.
type standing struct {
	driverNumber int
	position     int
	date         source.Timestamp
}

// finalPositions maps each driver to their latest position snapshot. Snapshots without a usable
// position are ignored so a trailing blank record can't unrank a driver.
func finalPositions(positions []source.PositionSnapshot) map[int]source.PositionSnapshot {
	valid := make([]source.PositionSnapshot, 0, len(positions))
	for _, p := range positions {
		if n, ok := p.Position.Get(); ok && n >= 1 {
			valid = append(valid, p)
		}
	}
	return LatestByKey(valid,
		func(p source.PositionSnapshot) int { return p.DriverNumber.Value() },
		func(p source.PositionSnapshot) source.Timestamp { return p.Date },
	)
}

// orderStandings sorts drivers by their final position value (not by feed order). Two drivers
// can claim the same position when one of them stopped being reported; the most recent claim
// keeps the position and the stale one moves down so positions stay strictly ascending.
func orderStandings(final map[int]source.PositionSnapshot) []standing {
	standings := make([]standing, 0, len(final))
	for number, p := range final {
		standings = append(standings, standing{
			driverNumber: number,
			position:     p.Position.Value(),
			date:         p.Date,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.position != b.position {
			return a.position < b.position
		}
		if a.date.After(b.date) != b.date.After(a.date) {
			return a.date.After(b.date)
		}
		return a.driverNumber < b.driverNumber
	})

	prev := 0
	for i := range standings {
		if standings[i].position <= prev {
			standings[i].position = prev + 1
		}
		prev = standings[i].position
	}
	return standings
}

/* Lap Aggregation
------------------------------------------------------------------------------------------------- */

func lapCounts(laps []source.LapRecord) map[int]int {
	// untimed laps still count toward the number of laps run
	return GroupCount(laps, func(l source.LapRecord) int { return l.DriverNumber.Value() })
}

func bestLaps(laps []source.LapRecord) map[int]float64 {
	return GroupMin(laps,
		func(l source.LapRecord) int { return l.DriverNumber.Value() },
		func(l source.LapRecord) (float64, bool) {
			d, ok := l.LapDuration.Get()
			if !ok || d <= 0 {
				return 0, false
			}
			return d, true
		},
	)
}

// formatLapTime renders a lap duration given in seconds, e.g. 78.123s.
func formatLapTime(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}

/* Roster Resolution
------------------------------------------------------------------------------------------------- */

// rosterByNumber indexes the roster by driver number; the first entry for a number wins.
func rosterByNumber(drivers []source.RosterEntry) map[int]source.RosterEntry {
	roster := make(map[int]source.RosterEntry, len(drivers))
	for _, d := range drivers {
		if _, ok := roster[d.DriverNumber.Value()]; !ok {
			roster[d.DriverNumber.Value()] = d
		}
	}
	return roster
}

// liveDriver resolves a driver number against the roster, degrading to a placeholder driver when
// the roster has no entry for it.
func liveDriver(number int, roster map[int]source.RosterEntry) domain.Driver {
	entry, ok := roster[number]
	if !ok {
		return domain.NewDriver(strconv.Itoa(number), "", "", "")
	}
	return RosterDriver(entry)
}

// RosterDriver converts a live roster entry, preferring the full name and '#' prefixing the team
// colour.
func RosterDriver(entry source.RosterEntry) domain.Driver {
	name := entry.FullName.String()
	if name == "" {
		name = entry.FirstName.String() + " " + entry.LastName.String()
	}
	color := ""
	if entry.TeamColour != "" {
		color = "#" + entry.TeamColour.String()
	}
	return domain.NewDriver(entry.Number(), name, entry.TeamName.String(), color)
}
