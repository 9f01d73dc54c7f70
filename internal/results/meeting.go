package results

import (
	"strconv"
	"strings"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/source"
)

// MeetingInfo extracts the event descriptors used to title a results view. Fields the payload
// doesn't carry are left empty; the live source has no round number, so callers fill it in from
// the request.
func MeetingInfo(p source.Payload) domain.Meeting {
	var m domain.Meeting

	switch p := p.(type) {
	case *source.Legacy:
		race, ok := p.Race()
		if !ok {
			return m
		}
		m.Name = race.RaceName.String()
		m.CircuitName = race.Circuit.CircuitName.String()
		m.Location = race.Circuit.Location.Locality.String()
		m.CountryName = race.Circuit.Location.Country.String()
		m.Date = race.Date.String()
		m.Season, _ = strconv.Atoi(race.Season.String())
		m.RoundNumber, _ = strconv.Atoi(race.Round.String())
	case *source.Live:
		if p.Meeting == nil {
			return m
		}
		m.Name = p.Meeting.MeetingName
		m.CircuitName = p.Meeting.CircuitShortName
		m.Location = p.Meeting.Location
		m.CountryName = p.Meeting.CountryName
		m.Date, _, _ = strings.Cut(p.Meeting.DateStart, "T")
		m.Season = p.Meeting.Year
	}

	return m
}
