package domain

const (
	SourceLegacyStructured SourceTag = "legacy-structured"
	SourceLiveTimeseries   SourceTag = "live-timeseries"
)

// NotAvailable is displayed in place of timing data that a session did not produce, e.g. a Q3
// time for a driver knocked out in Q1.
const NotAvailable = "N/A"

// SourceTag identifies which upstream shape a race payload follows.
type SourceTag string

// Historical reports whether the tag names the pre-joined historical source.
func (t SourceTag) Historical() bool {
	return t == SourceLegacyStructured
}

// Result is one canonical row of a qualifying or race classification. The timing columns are
// session and source dependent:
//   - Race: Laps is the number of laps run; Time is the finishing time or status (historical) or
//     NotAvailable (live).
//   - Qualifying: Segments holds the Q1-Q3 times (historical); Time is the best lap (live).
type Result struct {
	Position     int      // Position is the final classified position, starting at 1
	DriverNumber string   // DriverNumber is the car number, when the source provides one
	DriverName   string   // DriverName is the resolved full display name
	TeamName     string   // TeamName is the resolved constructor/team name
	TeamColor    string   // TeamColor is the '#' prefixed team color (live source only)
	Laps         int      // Laps is the number of laps completed (race only)
	Time         string   // Time is the finishing time/status or the best lap time
	Segments     []string // Segments are the Q1, Q2 and Q3 times (historical qualifying only)
	Points       *string  // Points awarded; nil when the source carries no points
	Status       string   // Status is the classification status (historical race only)
}

// ResultTable is a full classification for one session along with the source it was derived
// from, which determines the set of columns worth rendering.
type ResultTable struct {
	Source  SourceTag
	Session SessionKind
	Rows    []Result
}

// Empty reports whether the table has nothing to display.
func (t ResultTable) Empty() bool {
	return len(t.Rows) == 0
}

// Weekend is everything displayed for one race weekend: the event header and a result table per
// session, in display order.
type Weekend struct {
	Meeting Meeting
	Tables  []ResultTable
}

// Table returns the weekend's table for the given session.
func (w Weekend) Table(kind SessionKind) (ResultTable, bool) {
	for _, t := range w.Tables {
		if t.Session == kind {
			return t, true
		}
	}
	return ResultTable{}, false
}
