package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcdxn/f1results/internal/config"
	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/render"
)

func TestPrintWeekend(t *testing.T) {
	points := "25"
	w := domain.Weekend{
		Meeting: domain.Meeting{Name: "Bahrain Grand Prix", Location: "Sakhir", CountryName: "Bahrain", Season: 2021, RoundNumber: 1},
		Tables: []domain.ResultTable{
			{Source: domain.SourceLegacyStructured, Session: domain.SessionKindQualifying, Rows: []domain.Result{}},
			{
				Source:  domain.SourceLegacyStructured,
				Session: domain.SessionKindRace,
				Rows: []domain.Result{
					{Position: 1, DriverName: "Lewis Hamilton", TeamName: "Mercedes", Laps: 56, Time: "1:32:03.897", Points: &points},
				},
			},
		},
	}

	var b bytes.Buffer
	load := func(context.Context) (domain.Weekend, error) { return w, nil }
	if err := printWeekend(context.Background(), &b, load, ""); err != nil {
		t.Fatalf("did not expect error but found: '%s'", err.Error())
	}

	out := b.String()
	for _, want := range []string{"Bahrain Grand Prix (Sakhir, Bahrain)", "Round 1 • 2021", render.NotAvailableMessage, "Lewis Hamilton", "1:32:03.897", "25"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain '%s' but found:\n%s", want, out)
		}
	}

	t.Run("SingleSession", func(t *testing.T) {
		var b bytes.Buffer
		if err := printWeekend(context.Background(), &b, load, domain.SessionKindRace); err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		if strings.Contains(b.String(), render.NotAvailableMessage) {
			t.Errorf("expected the qualifying session to be skipped but found:\n%s", b.String())
		}
	})
}

func TestSeasonsCmd(t *testing.T) {
	a := &app{client: newClient(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))}
	cmd := seasonsCmd(a)
	var b bytes.Buffer
	cmd.SetOut(&b)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("did not expect error but found: '%s'", err.Error())
	}
	out := b.String()
	for _, want := range []string{"2005", string(domain.SourceLegacyStructured), "2023", string(domain.SourceLiveTimeseries)} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain '%s' but found:\n%s", want, out)
		}
	}
}

func TestSessionFilter(t *testing.T) {
	tests := []struct {
		name     string
		plain    bool
		session  string
		expected domain.SessionKind
		fails    bool
	}{
		{"Unset", false, "", "", false},
		{"UnsetPlain", true, "", "", false},
		{"Plain", true, "Race", domain.SessionKindRace, false},
		{"Interactive", false, "race", "", true},
		{"Unknown", true, "sprint", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := sessionFilter(tt.plain, tt.session)
			if (err != nil) != tt.fails {
				t.Fatalf("expected failure to be %t but found error: '%v'", tt.fails, err)
			}
			if kind != tt.expected {
				t.Errorf("expected session '%s' but found '%s'", tt.expected, kind)
			}
		})
	}
}

func TestRootCmdFailureReleasesLogFile(t *testing.T) {
	dir := t.TempDir()
	a := &app{}
	cmd := rootCmd(a)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--log-file", filepath.Join(dir, "app.log"),
		"race", "--round", "1", "--session", "race",
	})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected --session without --plain to fail")
	}
	if a.closer == nil {
		t.Fatal("expected the log file to be opened before the command ran")
	}
	if err := a.close(); err != nil {
		t.Fatalf("did not expect error but found: '%s'", err.Error())
	}
	// a second close only fails if the first one released the file
	if err := a.closer.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected error '%v' but found '%v'", os.ErrClosed, err)
	}
}
