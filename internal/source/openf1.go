package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/bcdxn/f1results/internal/domain"
)

// Live is a payload from the live-timing provider: three independent record streams that share a
// numeric driver identifier, plus optional meeting/session descriptors.
type Live struct {
	Meeting   *LiveMeeting
	Session   *LiveSession
	Drivers   Records[RosterEntry]
	Positions Records[PositionSnapshot]
	Laps      Records[LapRecord]
}

func (*Live) Tag() domain.SourceTag { return domain.SourceLiveTimeseries }
func (*Live) isPayload() {}

// decodeLive decodes each top-level field independently so a malformed descriptor doesn't cost
// the record streams.
func decodeLive(fields map[string]json.RawMessage) *Live {
	l := &Live{}
	if raw, ok := fields["meeting"]; ok {
		var m LiveMeeting
		if err := json.Unmarshal(raw, &m); err == nil && !isNull(raw) {
			l.Meeting = &m
		}
	}
	if raw, ok := fields["session"]; ok {
		var s LiveSession
		if err := json.Unmarshal(raw, &s); err == nil && !isNull(raw) {
			l.Session = &s
		}
	}
	// Records never fail to unmarshal
	_ = json.Unmarshal(fields["drivers"], &l.Drivers)
	_ = json.Unmarshal(fields["positions"], &l.Positions)
	_ = json.Unmarshal(fields["laps"], &l.Laps)
	return l
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// LiveMeeting describes the race weekend.
type LiveMeeting struct {
	MeetingKey          int    `json:"meeting_key"`
	MeetingName         string `json:"meeting_name"`
	MeetingOfficialName string `json:"meeting_official_name"`
	Location            string `json:"location"`
	CountryName         string `json:"country_name"`
	CircuitShortName    string `json:"circuit_short_name"`
	DateStart           string `json:"date_start"`
	Year                int    `json:"year"`
}

// LiveSession describes one session of the race weekend.
type LiveSession struct {
	SessionKey  int    `json:"session_key"`
	SessionName string `json:"session_name"`
	SessionType string `json:"session_type"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
}

// RosterEntry is intrinsic data about a driver taking part in the session.
type RosterEntry struct {
	DriverNumber Int  `json:"driver_number"`
	FullName     Text `json:"full_name"`
	FirstName    Text `json:"first_name"`
	LastName     Text `json:"last_name"`
	NameAcronym  Text `json:"name_acronym"`
	TeamName     Text `json:"team_name"`
	TeamColour   Text `json:"team_colour"`
}

func (r RosterEntry) hasKey() bool { return r.DriverNumber.valid }

// Number is the driver number in the string form used by the domain.
func (r RosterEntry) Number() string {
	return strconv.Itoa(r.DriverNumber.Value())
}

// PositionSnapshot is a driver's position on the timing board at a point in time; a session
// emits many snapshots per driver. Position is invalid for blank or garbled snapshots.
type PositionSnapshot struct {
	DriverNumber Int       `json:"driver_number"`
	Position     Int       `json:"position"`
	Date         Timestamp `json:"date"`
}

func (p PositionSnapshot) hasKey() bool { return p.DriverNumber.valid }

// LapRecord is a single lap run by a driver. LapDuration is invalid for laps that weren't timed,
// e.g. out laps or laps aborted in the pit lane.
type LapRecord struct {
	DriverNumber Int   `json:"driver_number"`
	LapNumber    Int   `json:"lap_number"`
	LapDuration  Float `json:"lap_duration"`
}

func (l LapRecord) hasKey() bool { return l.DriverNumber.valid }

/* Timestamps
------------------------------------------------------------------------------------------------- */

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// ParseTimestamp keeps the raw feed value alongside the instant it represents, if any.
func ParseTimestamp(raw string) Timestamp {
	ts := Timestamp{raw: raw}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.instant = t
			ts.parsed = true
			break
		}
	}
	return ts
}

// Timestamp orders feed records. Timestamps that parse compare as instants; one that doesn't
// parse is older than any that does, and two unparsable ones compare as raw strings. This keeps
// the order total so folding a feed doesn't depend on record order.
type Timestamp struct {
	raw     string
	instant time.Time
	parsed  bool
}

// After reports whether t is later than u.
func (t Timestamp) After(u Timestamp) bool {
	switch {
	case t.parsed && u.parsed:
		return t.instant.After(u.instant)
	case t.parsed != u.parsed:
		return t.parsed
	default:
		return t.raw > u.raw
	}
}

func (t Timestamp) String() string {
	return t.raw
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// anything other than a string (null included) leaves the zero timestamp
		return nil
	}
	*t = ParseTimestamp(s)
	return nil
}
