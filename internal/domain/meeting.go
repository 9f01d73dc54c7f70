package domain

import (
	"fmt"
	"strings"
)

const (
	SessionKindQualifying SessionKind = "qualifying"
	SessionKindRace       SessionKind = "race"
)

// SessionKind identifies the portion of a race weekend a result table belongs to.
type SessionKind string

// SessionKinds lists the sessions a race weekend is displayed with, in display order.
func SessionKinds() []SessionKind {
	return []SessionKind{SessionKindQualifying, SessionKindRace}
}

// ParseSessionKind converts user input into a SessionKind.
func ParseSessionKind(s string) (SessionKind, error) {
	switch k := SessionKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SessionKindQualifying, SessionKindRace:
		return k, nil
	default:
		return "", fmt.Errorf("unknown session kind %q", s)
	}
}

// Title is the human readable name of the session.
func (k SessionKind) Title() string {
	switch k {
	case SessionKindQualifying:
		return "Qualifying"
	case SessionKindRace:
		return "Race"
	default:
		return string(k)
	}
}

// Meeting represents data about the race weekend event. This data applies to all of the sessions
// within a race weekend.
type Meeting struct {
	Name        string // Name is the informal name of the race weekend event
	CircuitName string // CircuitName is the name of the circuit hosting the event
	Location    string // Location is the locality in which the race weekend is taking place
	CountryName string // The full name of the country in which the event is taking place
	Date        string // Date is the day of the event as YYYY-MM-DD
	Season      int    // Season is the championship year
	RoundNumber int    // The sequence number of the race weekend event within the season
}

// Place joins the location and country for display, skipping whichever is unknown.
func (m Meeting) Place() string {
	parts := make([]string, 0, 2)
	if m.Location != "" {
		parts = append(parts, m.Location)
	}
	if m.CountryName != "" {
		parts = append(parts, m.CountryName)
	}
	return strings.Join(parts, ", ")
}

// Season is a championship year along with the upstream source that serves its data.
type Season struct {
	Year   int
	Source SourceTag
}
