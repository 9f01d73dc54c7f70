package domain

import "strings"

const (
	// PlaceholderTeamName is used when a driver cannot be resolved to a team.
	PlaceholderTeamName = "Unknown"
)

// NewDriver returns a driver as modeled per the domain. Blank names are replaced with
// placeholders so a driver can always be displayed, even when the source roster is missing the
// entry entirely.
func NewDriver(number, name, teamName, teamColor string) Driver {
	d := Driver{
		Number:    number,
		Name:      strings.TrimSpace(name),
		TeamName:  strings.TrimSpace(teamName),
		TeamColor: teamColor,
	}
	if d.Name == "" {
		d.Name = PlaceholderDriverName(number)
	}
	if d.TeamName == "" {
		d.TeamName = PlaceholderTeamName
	}
	return d
}

// PlaceholderDriverName is the display name of a driver that has no roster entry.
func PlaceholderDriverName(number string) string {
	return "Driver " + number
}

// Driver domain model represents intrinsic data about a driver taking part in a session.
type Driver struct {
	Number    string // Number is the unique driver racing number present on their car
	Name      string // Name is the full name of the driver
	TeamName  string // TeamName is the name of the team/constructor that the driver races for
	TeamColor string // TeamColor is the primary color of the team, '#' prefixed; may be empty
}
