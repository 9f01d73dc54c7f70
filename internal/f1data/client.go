// Package f1data fetches the raw qualifying and race payloads for a race weekend from whichever
// upstream API serves its season: the Ergast compatible Jolpica API for historical seasons and
// OpenF1 for recent ones. Payloads are returned undecoded; classification and normalization
// happen downstream.
package f1data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bcdxn/f1results/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when the requested season, round or race results do not exist upstream.
var ErrNotFound = errors.New("race not found")

// New returns a new race data client.
func New(opts ...ClientOption) Client {
	// create a default instance of the client
	c := Client{
		jolpicaBaseURL:   "https://api.jolpi.ca/ergast/f1",
		openF1BaseURL:    "https://api.openf1.org/v1",
		firstSeason:      2005,
		legacyCutoffYear: 2022,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		logger:           slog.Default(),
	}
	// apply given options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type Client struct {
	// Upstream API configuration
	jolpicaBaseURL string
	openF1BaseURL  string
	httpClient     *http.Client
	// Season catalogue
	firstSeason      int
	legacyCutoffYear int
	// logger
	logger *slog.Logger
}

// RaceDetails holds the undecoded session payloads for one race weekend. A session the upstream
// API has no data for is left nil.
type RaceDetails struct {
	Year       int
	Round      int
	Source     domain.SourceTag
	Qualifying json.RawMessage
	Race       json.RawMessage
}

// Session returns the payload of the given session kind.
func (d RaceDetails) Session(kind domain.SessionKind) json.RawMessage {
	if kind == domain.SessionKindQualifying {
		return d.Qualifying
	}
	return d.Race
}

/* Client Optional Functional Parameters
------------------------------------------------------------------------------------------------- */

type ClientOption = func(c *Client)

// WithJolpicaBaseURL configures the URL of the historical results API; primarily used for testing.
func WithJolpicaBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.jolpicaBaseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithOpenF1BaseURL configures the URL of the OpenF1 API; primarily used for testing.
func WithOpenF1BaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.openF1BaseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient configures the HTTP client used for every upstream request.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithFirstSeason configures the earliest season listed by Seasons.
func WithFirstSeason(year int) ClientOption {
	return func(c *Client) { c.firstSeason = year }
}

// WithLegacyCutoffYear configures the last season served by the historical API.
func WithLegacyCutoffYear(year int) ClientOption {
	return func(c *Client) { c.legacyCutoffYear = year }
}

// WithLogger configures the logger to use within the client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

/* Client API
------------------------------------------------------------------------------------------------- */

// SourceFor returns the source that serves the given season.
func (c Client) SourceFor(year int) domain.SourceTag {
	if year <= c.legacyCutoffYear {
		return domain.SourceLegacyStructured
	}
	return domain.SourceLiveTimeseries
}

// Seasons lists every season from the first configured season up to the year of now, oldest
// first.
func (c Client) Seasons(now time.Time) []domain.Season {
	seasons := make([]domain.Season, 0, max(now.Year()-c.firstSeason+1, 0))
	for year := c.firstSeason; year <= now.Year(); year++ {
		seasons = append(seasons, domain.Season{Year: year, Source: c.SourceFor(year)})
	}
	return seasons
}

// RaceDetails fetches the qualifying and race payloads of the given round. Rounds are 1-based.
func (c Client) RaceDetails(ctx context.Context, year, round int) (RaceDetails, error) {
	d := RaceDetails{Year: year, Round: round, Source: c.SourceFor(year)}
	var err error

	c.logger.Debug("fetching race details", "year", year, "round", round, "source", d.Source)
	if d.Source == domain.SourceLegacyStructured {
		d.Race, d.Qualifying, err = c.legacyDetails(ctx, year, round)
	} else {
		d.Race, d.Qualifying, err = c.liveDetails(ctx, year, round)
	}
	if err != nil {
		c.logger.Error("error fetching race details", "year", year, "round", round, "err", err.Error())
		return RaceDetails{}, err
	}
	return d, nil
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// legacyDetails fetches both sessions from the historical API in parallel. The race results are
// required; a missing qualifying classification is tolerated.
func (c Client) legacyDetails(ctx context.Context, year, round int) (race, qualifying json.RawMessage, err error) {
	base := fmt.Sprintf("%s/%d/%d", c.jolpicaBaseURL, year, round)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		body, status, err := c.get(gctx, base+"/results.json", nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("%w: %d round %d (status %d)", ErrNotFound, year, round, status)
		}
		race = body
		return nil
	})
	g.Go(func() error {
		body, status, err := c.get(gctx, base+"/qualifying.json", nil)
		if err != nil {
			return err
		}
		if status == http.StatusOK {
			qualifying = body
		} else {
			c.logger.Warn("qualifying results unavailable", "year", year, "round", round, "status", status)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return race, qualifying, nil
}

// liveDetails resolves the round to an OpenF1 meeting, then assembles one payload per session out
// of the session's roster, position snapshots and lap records.
func (c Client) liveDetails(ctx context.Context, year, round int) (race, qualifying json.RawMessage, err error) {
	meeting, err := c.grandPrix(ctx, year, round)
	if err != nil {
		return nil, nil, err
	}

	sessions, err := c.sessions(ctx, meeting.MeetingKey)
	if err != nil {
		return nil, nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		payload, err := c.sessionPayload(gctx, meeting.raw, sessions["Race"])
		race = payload
		return err
	})
	g.Go(func() error {
		payload, err := c.sessionPayload(gctx, meeting.raw, sessions["Qualifying"])
		qualifying = payload
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return race, qualifying, nil
}

// grandPrix returns the round-th Grand Prix meeting of the season, skipping testing events.
func (c Client) grandPrix(ctx context.Context, year, round int) (openF1Meeting, error) {
	races, err := c.grandPrixMeetings(ctx, year)
	if err != nil {
		return openF1Meeting{}, err
	}
	if round < 1 || round > len(races) {
		return openF1Meeting{}, fmt.Errorf("%w: %d round %d", ErrNotFound, year, round)
	}
	return races[round-1], nil
}

// grandPrixMeetings lists the Grand Prix meetings of the season in calendar order; pre-season
// testing and other non-championship events are left out.
func (c Client) grandPrixMeetings(ctx context.Context, year int) ([]openF1Meeting, error) {
	body, status, err := c.get(ctx, c.openF1BaseURL+"/meetings", url.Values{"year": {strconv.Itoa(year)}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: season %d (status %d)", ErrNotFound, year, status)
	}

	var all []json.RawMessage
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("error parsing meetings: %w", err)
	}

	races := make([]openF1Meeting, 0, len(all))
	for _, raw := range all {
		var meeting openF1Meeting
		if err := json.Unmarshal(raw, &meeting); err != nil {
			c.logger.Debug("skipping malformed meeting", "err", err.Error())
			continue
		}
		if strings.Contains(meeting.MeetingName, "Grand Prix") {
			meeting.raw = raw
			races = append(races, meeting)
		}
	}
	return races, nil
}

// sessions returns the meeting's sessions keyed by session name.
func (c Client) sessions(ctx context.Context, meetingKey int) (map[string]openF1Session, error) {
	body, status, err := c.get(ctx, c.openF1BaseURL+"/sessions", url.Values{"meeting_key": {strconv.Itoa(meetingKey)}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: sessions of meeting %d (status %d)", ErrNotFound, meetingKey, status)
	}

	var all []json.RawMessage
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("error parsing sessions: %w", err)
	}

	sessions := make(map[string]openF1Session, len(all))
	for _, raw := range all {
		var s openF1Session
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if _, ok := sessions[s.SessionName]; !ok {
			s.raw = raw
			sessions[s.SessionName] = s
		}
	}
	return sessions, nil
}

// sessionPayload builds the live payload for a single session. When the meeting has no such
// session the payload carries only the meeting, which downstream treats as unavailable.
func (c Client) sessionPayload(ctx context.Context, meeting json.RawMessage, s openF1Session) (json.RawMessage, error) {
	payload := map[string]json.RawMessage{"meeting": meeting}
	if s.raw == nil {
		return json.Marshal(payload)
	}
	payload["session"] = s.raw

	collections := map[string]string{"drivers": "drivers", "positions": "position", "laps": "laps"}
	results := make(map[string]json.RawMessage, len(collections))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for field, endpoint := range collections {
		field, endpoint := field, endpoint
		g.Go(func() error {
			records, err := c.sessionCollection(gctx, endpoint, s.SessionKey)
			if err != nil {
				return err
			}
			mu.Lock()
			results[field] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for field, records := range results {
		payload[field] = records
	}
	return json.Marshal(payload)
}

// sessionCollection fetches one of a session's record lists. Anything other than a JSON list is
// replaced with an empty list so a single failing endpoint does not hide the rest of the session.
func (c Client) sessionCollection(ctx context.Context, endpoint string, sessionKey int) (json.RawMessage, error) {
	body, status, err := c.get(ctx, c.openF1BaseURL+"/"+endpoint, url.Values{"session_key": {strconv.Itoa(sessionKey)}})
	if err != nil {
		return nil, err
	}

	var list []json.RawMessage
	if status != http.StatusOK || json.Unmarshal(body, &list) != nil {
		c.logger.Warn("session data unavailable", "endpoint", endpoint, "session_key", sessionKey, "status", status)
		return json.RawMessage("[]"), nil
	}
	return body, nil
}

// get issues a GET request and returns the body along with the status code. Only transport
// failures are returned as errors; status handling is left to the caller.
func (c Client) get(ctx context.Context, rawURL string, query url.Values) ([]byte, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid request URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error sending request to %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response from %s: %w", u.Path, err)
	}
	c.logger.Debug("upstream response", "path", u.Path, "query", u.RawQuery, "status", resp.StatusCode, "bytes", len(body))
	return body, resp.StatusCode, nil
}
