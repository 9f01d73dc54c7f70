package source

import "github.com/bcdxn/f1results/internal/domain"

// Legacy is a payload from the historical (Ergast compatible) provider. The container holds a
// single race; results are pre-ranked and pre-joined with driver and constructor data.
type Legacy struct {
	Races Records[Race]
}

func (*Legacy) Tag() domain.SourceTag { return domain.SourceLegacyStructured }
func (*Legacy) isPayload() {}

// Race returns the race the payload describes and whether there is one.
func (l *Legacy) Race() (Race, bool) {
	if l == nil || len(l.Races) == 0 {
		return Race{}, false
	}
	return l.Races[0], true
}

// Race represents a race weekend along with whichever session results were requested.
type Race struct {
	Season            Text                      `json:"season"`
	Round             Text                      `json:"round"`
	RaceName          Text                      `json:"raceName"`
	Date              Text                      `json:"date"`
	Circuit           Circuit                   `json:"Circuit"`
	Results           Records[RaceResult]       `json:"Results"`
	QualifyingResults Records[QualifyingResult] `json:"QualifyingResults"`
}

// Circuit is the venue of a race.
type Circuit struct {
	CircuitName Text     `json:"circuitName"`
	Location    Location `json:"Location"`
}

func (c *Circuit) UnmarshalJSON(data []byte) error {
	type circuit Circuit
	return decodeObject(data, (*circuit)(c))
}

// Location is where a circuit lies.
type Location struct {
	Locality Text `json:"locality"`
	Country  Text `json:"country"`
}

func (l *Location) UnmarshalJSON(data []byte) error {
	type location Location
	return decodeObject(data, (*location)(l))
}

// Entrant is the driver sub-object embedded in each result record, and the record type of the
// season driver list.
type Entrant struct {
	PermanentNumber Text `json:"permanentNumber"`
	Code            Text `json:"code"`
	GivenName       Text `json:"givenName"`
	FamilyName      Text `json:"familyName"`
	Nationality     Text `json:"nationality"`
}

func (e *Entrant) UnmarshalJSON(data []byte) error {
	type entrant Entrant
	return decodeObject(data, (*entrant)(e))
}

// Constructor is the team sub-object embedded in each result record, and the record type of the
// season constructor list.
type Constructor struct {
	Name        Text `json:"name"`
	Nationality Text `json:"nationality"`
}

func (c *Constructor) UnmarshalJSON(data []byte) error {
	type constructor Constructor
	return decodeObject(data, (*constructor)(c))
}

// RaceResult is a single classified entrant of a race.
type RaceResult struct {
	Number      Text         `json:"number"`
	Position    Text         `json:"position"`
	Points      *Text        `json:"points"`
	Driver      *Entrant     `json:"Driver"`
	Constructor *Constructor `json:"Constructor"`
	Laps        Text         `json:"laps"`
	Status      Text         `json:"status"`
	Time        *FinishTime  `json:"Time"`
}

// FinishTime is the elapsed race time (winner) or gap (others); absent for lapped or retired
// entrants. Some mirrors flatten it to the bare time string.
type FinishTime struct {
	Millis Text `json:"millis"`
	Time   Text `json:"time"`
}

func (f *FinishTime) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return f.Time.UnmarshalJSON(data)
	}
	type finishTime FinishTime
	return decodeObject(data, (*finishTime)(f))
}

// QualifyingResult is a single classified entrant of a qualifying session. Q2 and Q3 are absent
// for drivers eliminated in an earlier segment.
type QualifyingResult struct {
	Number      Text         `json:"number"`
	Position    Text         `json:"position"`
	Driver      *Entrant     `json:"Driver"`
	Constructor *Constructor `json:"Constructor"`
	Q1          Text         `json:"Q1"`
	Q2          Text         `json:"Q2"`
	Q3          Text         `json:"Q3"`
}
