package domain

// Schedule is a season's Grand Prix calendar along with the drivers and teams entered in it.
type Schedule struct {
	Season    Season
	Rounds    []Meeting  // Rounds lists the Grand Prix events in calendar order, testing excluded
	Drivers   []Driver   // Drivers is the entry list; TeamName is empty when the source doesn't join it
	Teams     []Team     // Teams lists each constructor once
	Standings []Standing // Standings is the drivers' championship; empty when the source has none
}

// Team is a constructor taking part in a season.
type Team struct {
	Name        string
	Nationality string
	Color       string // Color is the '#' prefixed team color (live source only)
}

// Standing is a driver's place in the drivers' championship.
type Standing struct {
	Position int
	Driver   Driver
	Points   string
	Wins     int
}
