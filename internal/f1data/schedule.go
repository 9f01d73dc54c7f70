package f1data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/results"
	"github.com/bcdxn/f1results/internal/source"
	"golang.org/x/sync/errgroup"
)

// Schedule fetches the Grand Prix calendar of a season along with its drivers and teams and, for
// historical seasons, the drivers' championship. Only the calendar is required; the entry lists
// are left empty when the upstream API has none.
func (c Client) Schedule(ctx context.Context, year int) (domain.Schedule, error) {
	sched := domain.Schedule{Season: domain.Season{Year: year, Source: c.SourceFor(year)}}
	var err error

	c.logger.Debug("fetching schedule", "year", year, "source", sched.Season.Source)
	if sched.Season.Source.Historical() {
		err = c.legacySchedule(ctx, &sched)
	} else {
		err = c.liveSchedule(ctx, &sched)
	}
	if err != nil {
		c.logger.Error("error fetching schedule", "year", year, "err", err.Error())
		return domain.Schedule{}, err
	}
	return sched, nil
}

/* Historical Seasons
------------------------------------------------------------------------------------------------- */

// jolpicaTables is the envelope of the season level endpoints; each endpoint fills one table.
type jolpicaTables struct {
	MRData struct {
		RaceTable struct {
			Races source.Records[source.Race] `json:"Races"`
		} `json:"RaceTable"`
		DriverTable struct {
			Drivers source.Records[source.Entrant] `json:"Drivers"`
		} `json:"DriverTable"`
		ConstructorTable struct {
			Constructors source.Records[source.Constructor] `json:"Constructors"`
		} `json:"ConstructorTable"`
		StandingsTable struct {
			StandingsLists source.Records[standingsList] `json:"StandingsLists"`
		} `json:"StandingsTable"`
	} `json:"MRData"`
}

type standingsList struct {
	DriverStandings source.Records[driverStanding] `json:"DriverStandings"`
}

type driverStanding struct {
	Position     source.Text                        `json:"position"`
	Points       source.Text                        `json:"points"`
	Wins         source.Text                        `json:"wins"`
	Driver       *source.Entrant                    `json:"Driver"`
	Constructors source.Records[source.Constructor] `json:"Constructors"`
}

// legacySchedule fetches the calendar, driver list, constructor list and standings in parallel.
// Each request fills its own part of the schedule.
func (c Client) legacySchedule(ctx context.Context, sched *domain.Schedule) error {
	year := sched.Season.Year
	base := fmt.Sprintf("%s/%d", c.jolpicaBaseURL, year)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, ok, err := c.jolpicaTables(gctx, base+".json")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: season %d", ErrNotFound, year)
		}
		sched.Rounds = legacyRounds(t.MRData.RaceTable.Races)
		return nil
	})
	g.Go(func() error {
		t, _, err := c.jolpicaTables(gctx, base+"/drivers.json")
		if err != nil {
			return err
		}
		sched.Drivers = make([]domain.Driver, 0, len(t.MRData.DriverTable.Drivers))
		for _, e := range t.MRData.DriverTable.Drivers {
			sched.Drivers = append(sched.Drivers, seasonDriver(e))
		}
		return nil
	})
	g.Go(func() error {
		t, _, err := c.jolpicaTables(gctx, base+"/constructors.json")
		if err != nil {
			return err
		}
		sched.Teams = make([]domain.Team, 0, len(t.MRData.ConstructorTable.Constructors))
		for _, con := range t.MRData.ConstructorTable.Constructors {
			sched.Teams = append(sched.Teams, domain.Team{
				Name:        con.Name.String(),
				Nationality: con.Nationality.String(),
			})
		}
		return nil
	})
	g.Go(func() error {
		t, _, err := c.jolpicaTables(gctx, base+"/driverStandings.json")
		if err != nil {
			return err
		}
		sched.Standings = legacyStandings(t.MRData.StandingsTable.StandingsLists)
		return nil
	})

	return g.Wait()
}

// jolpicaTables fetches one of the season level endpoints. A non-200 response is reported as not
// ok rather than as an error so optional lists can degrade to empty ones.
func (c Client) jolpicaTables(ctx context.Context, rawURL string) (jolpicaTables, bool, error) {
	var t jolpicaTables
	body, status, err := c.get(ctx, rawURL, nil)
	if err != nil {
		return t, false, err
	}
	if status != http.StatusOK {
		c.logger.Warn("season data unavailable", "url", rawURL, "status", status)
		return t, false, nil
	}
	if err := json.Unmarshal(body, &t); err != nil {
		return t, false, fmt.Errorf("error parsing %s: %w", rawURL, err)
	}
	return t, true, nil
}

func legacyRounds(races []source.Race) []domain.Meeting {
	rounds := make([]domain.Meeting, 0, len(races))
	for i, race := range races {
		m := results.MeetingInfo(&source.Legacy{Races: source.Records[source.Race]{race}})
		if m.RoundNumber < 1 {
			m.RoundNumber = i + 1
		}
		rounds = append(rounds, m)
	}
	return rounds
}

// seasonDriver converts an entry of the season driver list, which isn't joined with a team.
func seasonDriver(e source.Entrant) domain.Driver {
	d := results.EntrantDriver("", &e, nil)
	d.TeamName = ""
	return d
}

// legacyStandings converts the final standings list of the season. A driver who changed teams
// is listed with every team in the order raced for.
func legacyStandings(lists []standingsList) []domain.Standing {
	if len(lists) == 0 {
		return nil
	}
	entries := lists[len(lists)-1].DriverStandings

	standings := make([]domain.Standing, 0, len(entries))
	for i, e := range entries {
		teams := make([]string, 0, len(e.Constructors))
		for _, con := range e.Constructors {
			if con.Name != "" {
				teams = append(teams, con.Name.String())
			}
		}
		team := &source.Constructor{Name: source.Text(strings.Join(teams, " / "))}

		position, err := strconv.Atoi(e.Position.String())
		if err != nil || position < 1 {
			position = i + 1
		}
		wins, _ := strconv.Atoi(e.Wins.String())
		standings = append(standings, domain.Standing{
			Position: position,
			Driver:   results.EntrantDriver("", e.Driver, team),
			Points:   e.Points.String(),
			Wins:     wins,
		})
	}
	return standings
}

/* Live Seasons
------------------------------------------------------------------------------------------------- */

// liveSchedule lists the Grand Prix meetings of the season. OpenF1 has no season entry list, so
// drivers come from the roster of the first Grand Prix race and teams are derived from them.
func (c Client) liveSchedule(ctx context.Context, sched *domain.Schedule) error {
	meetings, err := c.grandPrixMeetings(ctx, sched.Season.Year)
	if err != nil {
		return err
	}

	sched.Rounds = make([]domain.Meeting, 0, len(meetings))
	for i, m := range meetings {
		var lm source.LiveMeeting
		// a field of the wrong type leaves only that field empty
		_ = json.Unmarshal(m.raw, &lm)
		round := results.MeetingInfo(&source.Live{Meeting: &lm})
		if round.Name == "" {
			round.Name = m.MeetingName
		}
		round.Season = sched.Season.Year
		round.RoundNumber = i + 1
		sched.Rounds = append(sched.Rounds, round)
	}
	if len(meetings) == 0 {
		return nil
	}

	sessions, err := c.sessions(ctx, meetings[0].MeetingKey)
	if errors.Is(err, ErrNotFound) {
		c.logger.Warn("season drivers unavailable", "year", sched.Season.Year, "err", err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	race, ok := sessions["Race"]
	if !ok {
		c.logger.Warn("season drivers unavailable", "year", sched.Season.Year, "meeting_key", meetings[0].MeetingKey)
		return nil
	}

	body, err := c.sessionCollection(ctx, "drivers", race.SessionKey)
	if err != nil {
		return err
	}
	var roster source.Records[source.RosterEntry]
	// Records never fails to unmarshal
	_ = json.Unmarshal(body, &roster)
	sched.Drivers, sched.Teams = liveEntrants(roster)
	return nil
}

// liveEntrants lists each driver number and each team name once, in roster order.
func liveEntrants(roster []source.RosterEntry) ([]domain.Driver, []domain.Team) {
	drivers := make([]domain.Driver, 0, len(roster))
	teams := make([]domain.Team, 0)
	seenDrivers := make(map[int]bool, len(roster))
	seenTeams := make(map[string]bool)

	for _, entry := range roster {
		number := entry.DriverNumber.Value()
		if seenDrivers[number] {
			continue
		}
		seenDrivers[number] = true
		d := results.RosterDriver(entry)
		drivers = append(drivers, d)

		if name := entry.TeamName.String(); name != "" && !seenTeams[name] {
			seenTeams[name] = true
			teams = append(teams, domain.Team{Name: name, Color: d.TeamColor})
		}
	}
	return drivers, teams
}
