// Package weekend assembles everything shown for a race weekend: it fetches both session
// payloads, normalizes each into a result table and extracts the event header.
package weekend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/f1data"
	"github.com/bcdxn/f1results/internal/results"
	"github.com/bcdxn/f1results/internal/source"
)

// Fetcher retrieves the raw session payloads of a round.
type Fetcher interface {
	RaceDetails(ctx context.Context, year, round int) (f1data.RaceDetails, error)
}

// Load fetches the given round and normalizes every session. A session whose payload can't be
// recognized is logged and kept as an empty table so the other session can still be displayed;
// only fetch failures are returned as errors.
func Load(ctx context.Context, f Fetcher, year, round int, logger *slog.Logger) (domain.Weekend, error) {
	var w domain.Weekend

	d, err := f.RaceDetails(ctx, year, round)
	if err != nil {
		return w, fmt.Errorf("error loading %d round %d: %w", year, round, err)
	}

	for _, kind := range domain.SessionKinds() {
		raw := d.Session(kind)
		table, err := results.NormalizeJSON(raw, kind)
		if errors.Is(err, source.ErrUnrecognizedSource) {
			logger.Warn("session results unavailable", "year", year, "round", round, "session", kind, "err", err.Error())
		}
		if table.Source == "" {
			table.Source = d.Source
		}
		w.Tables = append(w.Tables, table)
		logger.Debug("normalized session", "session", kind, "source", table.Source, "rows", len(table.Rows))
	}

	w.Meeting = meeting(d)
	if w.Meeting.Season == 0 {
		w.Meeting.Season = year
	}
	if w.Meeting.RoundNumber == 0 {
		w.Meeting.RoundNumber = round
	}
	return w, nil
}

// meeting takes the event header from the race payload, falling back to qualifying.
func meeting(d f1data.RaceDetails) domain.Meeting {
	for _, raw := range []json.RawMessage{d.Race, d.Qualifying} {
		p, err := source.Parse(raw)
		if err != nil {
			continue
		}
		if m := results.MeetingInfo(p); m.Name != "" {
			return m
		}
	}
	return domain.Meeting{}
}
