package results

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/source"
)

func TestNormalizeLegacy(t *testing.T) {
	t.Run("Race", func(t *testing.T) {
		t.Parallel()
		table := normalizeFixture(t, "legacy-race.json", domain.SessionKindRace)

		if table.Source != domain.SourceLegacyStructured {
			t.Errorf("expected source '%s' but found '%s'", domain.SourceLegacyStructured, table.Source)
		}
		// row count and order follow the upstream classification
		expected := []struct {
			position int
			name     string
			team     string
			laps     int
			time     string
			points   string
		}{
			{1, "Lewis Hamilton", "Mercedes", 56, "1:32:03.897", "25"},
			{2, "Max Verstappen", "Red Bull", 56, "+0.745", "18"},
			{3, "Valtteri Bottas", "Mercedes", 56, "+37.383", "16"},
			{20, "Nikita Mazepin", "Haas F1 Team", 0, "Accident", "0"},
		}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for i, e := range expected {
			row := table.Rows[i]
			if row.Position != e.position {
				t.Errorf("expected position %d but found %d", e.position, row.Position)
			}
			if row.DriverName != e.name {
				t.Errorf("expected name '%s' but found '%s'", e.name, row.DriverName)
			}
			if row.TeamName != e.team {
				t.Errorf("expected team '%s' but found '%s'", e.team, row.TeamName)
			}
			if row.Laps != e.laps {
				t.Errorf("expected laps %d but found %d", e.laps, row.Laps)
			}
			if row.Time != e.time {
				t.Errorf("expected time '%s' but found '%s'", e.time, row.Time)
			}
			if row.Points == nil || *row.Points != e.points {
				t.Errorf("expected points '%s' but found '%v'", e.points, row.Points)
			}
		}
		if table.Rows[3].Status != "Accident" {
			t.Errorf("expected status '%s' but found '%s'", "Accident", table.Rows[3].Status)
		}
	})

	t.Run("Qualifying", func(t *testing.T) {
		t.Parallel()
		table := normalizeFixture(t, "legacy-qualifying.json", domain.SessionKindQualifying)

		if len(table.Rows) != 3 {
			t.Fatalf("expected %d rows but found %d", 3, len(table.Rows))
		}
		first := table.Rows[0]
		if first.DriverName != "Max Verstappen" {
			t.Errorf("expected name '%s' but found '%s'", "Max Verstappen", first.DriverName)
		}
		expectSegments(t, first.Segments, "1:30.499", "1:30.318", "1:28.997")
		// knocked out in Q1
		last := table.Rows[2]
		if last.Position != 20 {
			t.Errorf("expected position %d but found %d", 20, last.Position)
		}
		expectSegments(t, last.Segments, "1:33.970", domain.NotAvailable, domain.NotAvailable)
		if last.Points != nil {
			t.Errorf("expected no points for qualifying but found '%s'", *last.Points)
		}
	})

	t.Run("SessionMissing", func(t *testing.T) {
		t.Parallel()
		// a qualifying payload has no race results
		table := normalizeFixture(t, "legacy-qualifying.json", domain.SessionKindRace)
		if !table.Empty() {
			t.Errorf("expected no rows but found %d", len(table.Rows))
		}
	})

	t.Run("PartialRecords", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`[{"Results":[
			{"number":"5","position":"?","status":"+1 Lap","laps":"55"},
			{"position":"","Driver":{"givenName":"Jenson","familyName":"Button"},"status":""}
		]}]`), domain.SessionKindRace)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		if len(table.Rows) != 2 {
			t.Fatalf("expected %d rows but found %d", 2, len(table.Rows))
		}
		first, second := table.Rows[0], table.Rows[1]
		if first.Position != 1 || second.Position != 2 {
			t.Errorf("expected positions 1, 2 but found %d, %d", first.Position, second.Position)
		}
		if first.DriverName != "Driver 5" || first.TeamName != domain.PlaceholderTeamName {
			t.Errorf("expected placeholder driver but found '%s' / '%s'", first.DriverName, first.TeamName)
		}
		if first.Time != "+1 Lap" {
			t.Errorf("expected status as time '%s' but found '%s'", "+1 Lap", first.Time)
		}
		if second.DriverName != "Jenson Button" {
			t.Errorf("expected name '%s' but found '%s'", "Jenson Button", second.DriverName)
		}
		if second.Time != domain.NotAvailable {
			t.Errorf("expected time '%s' but found '%s'", domain.NotAvailable, second.Time)
		}
		if first.Points != nil {
			t.Errorf("expected no points but found '%s'", *first.Points)
		}
	})
}

func TestNormalizeOffTypeFields(t *testing.T) {
	t.Run("LegacyRace", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`[{"Results":[
			{"number":"44","position":"1","Driver":{"givenName":"Lewis","familyName":"Hamilton"},"laps":"56","status":"Finished","Time":{"time":"1:32:03.897"}},
			{"number":"33","position":"2","Driver":{"givenName":"Max","familyName":"Verstappen"},"laps":56,"status":11},
			{"number":"77","position":"3","Driver":{"givenName":"Valtteri","familyName":"Bottas"},"laps":"56","status":"Finished","Time":"+5.1"}
		]}]`), domain.SessionKindRace)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		expected := []struct {
			name string
			laps int
			time string
		}{
			{"Lewis Hamilton", 56, "1:32:03.897"},
			{"Max Verstappen", 56, "11"},
			{"Valtteri Bottas", 56, "+5.1"},
		}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for i, e := range expected {
			row := table.Rows[i]
			if row.DriverName != e.name || row.Laps != e.laps || row.Time != e.time {
				t.Errorf("expected {%s %d %s} but found {%s %d %s}", e.name, e.laps, e.time, row.DriverName, row.Laps, row.Time)
			}
		}
	})

	t.Run("LegacyQualifying", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`[{"QualifyingResults":[
			{"number":"44","position":"1","Q1":"1:30.5","Q2":{"time":"1:30.1"},"Q3":null},
			{"number":"33","position":"2","Q1":false}
		]}]`), domain.SessionKindQualifying)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		if len(table.Rows) != 2 {
			t.Fatalf("expected %d rows but found %d", 2, len(table.Rows))
		}
		expectSegments(t, table.Rows[0].Segments, "1:30.5", domain.NotAvailable, domain.NotAvailable)
		expectSegments(t, table.Rows[1].Segments, domain.NotAvailable, domain.NotAvailable, domain.NotAvailable)
	})

	t.Run("LiveRace", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`{
			"positions": [
				{"driver_number": 1, "position": 1, "date": "2023-03-05T16:00:00+00:00"},
				{"driver_number": 44, "position": 2.0, "date": "2023-03-05T16:00:00+00:00"}
			],
			"drivers": [{"driver_number": 1, "full_name": "A"}, {"driver_number": 44, "full_name": "B"}],
			"laps": [
				{"driver_number": 1, "lap_duration": 90.1},
				{"driver_number": 1, "lap_duration": "bad"},
				{"driver_number": 1, "lap_duration": null}
			]
		}`), domain.SessionKindRace)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		expected := []struct {
			position int
			name     string
			laps     int
		}{{1, "A", 3}, {2, "B", 0}}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for i, e := range expected {
			row := table.Rows[i]
			if row.Position != e.position || row.DriverName != e.name || row.Laps != e.laps {
				t.Errorf("expected {P%d %s laps=%d} but found {P%d %s laps=%d}", e.position, e.name, e.laps, row.Position, row.DriverName, row.Laps)
			}
		}
	})

	t.Run("LiveQualifying", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`{
			"positions": [{"driver_number": 1, "position": "1", "date": "2023-03-05T16:00:00+00:00"}],
			"drivers": [],
			"laps": [
				{"driver_number": 1, "lap_duration": "bad"},
				{"driver_number": 1, "lap_duration": "89.5"},
				{"driver_number": 1, "lap_duration": 90.1}
			]
		}`), domain.SessionKindQualifying)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		if len(table.Rows) != 1 {
			t.Fatalf("expected %d rows but found %d", 1, len(table.Rows))
		}
		if table.Rows[0].Time != "89.500s" {
			t.Errorf("expected best lap '%s' but found '%s'", "89.500s", table.Rows[0].Time)
		}
	})
}

func TestNormalizeLive(t *testing.T) {
	t.Run("Race", func(t *testing.T) {
		t.Parallel()
		table := normalizeFixture(t, "live-session.json", domain.SessionKindRace)

		if table.Source != domain.SourceLiveTimeseries {
			t.Errorf("expected source '%s' but found '%s'", domain.SourceLiveTimeseries, table.Source)
		}
		expected := []struct {
			position int
			number   string
			name     string
			team     string
			laps     int
		}{
			{1, "1", "Max VERSTAPPEN", "Red Bull Racing", 3},
			{2, "11", "Sergio PEREZ", "Red Bull Racing", 3},
			{3, "63", "Driver 63", domain.PlaceholderTeamName, 1},
			{4, "44", "Lewis HAMILTON", "Mercedes", 2},
		}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for i, e := range expected {
			row := table.Rows[i]
			if row.Position != e.position {
				t.Errorf("expected position %d but found %d", e.position, row.Position)
			}
			if row.DriverNumber != e.number {
				t.Errorf("expected driver number '%s' but found '%s'", e.number, row.DriverNumber)
			}
			if row.DriverName != e.name {
				t.Errorf("expected name '%s' but found '%s'", e.name, row.DriverName)
			}
			if row.TeamName != e.team {
				t.Errorf("expected team '%s' but found '%s'", e.team, row.TeamName)
			}
			if row.Laps != e.laps {
				t.Errorf("expected laps %d but found %d", e.laps, row.Laps)
			}
			if row.Points != nil {
				t.Errorf("expected no points but found '%s'", *row.Points)
			}
		}
		if table.Rows[0].TeamColor != "#3671C6" {
			t.Errorf("expected team color '%s' but found '%s'", "#3671C6", table.Rows[0].TeamColor)
		}
	})

	t.Run("Qualifying", func(t *testing.T) {
		t.Parallel()
		table := normalizeFixture(t, "live-session.json", domain.SessionKindQualifying)

		expected := map[string]string{
			"1":  "96.236s",
			"11": "97.001s",
			"63": domain.NotAvailable,
			"44": "98.800s",
		}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for _, row := range table.Rows {
			if row.Time != expected[row.DriverNumber] {
				t.Errorf("expected best lap '%s' for driver %s but found '%s'", expected[row.DriverNumber], row.DriverNumber, row.Time)
			}
		}
	})

	t.Run("LatestPositionWins", func(t *testing.T) {
		t.Parallel()
		table, err := NormalizeJSON([]byte(`{
			"positions": [
				{"driver_number": 1, "position": 2, "date": "t1"},
				{"driver_number": 1, "position": 1, "date": "t2"}
			],
			"drivers": [{"driver_number": 1, "full_name": "A"}],
			"laps": []
		}`), domain.SessionKindQualifying)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		if len(table.Rows) != 1 {
			t.Fatalf("expected %d rows but found %d", 1, len(table.Rows))
		}
		row := table.Rows[0]
		if row.Position != 1 || row.DriverName != "A" || row.Time != domain.NotAvailable {
			t.Errorf("expected {1 A N/A} but found {%d %s %s}", row.Position, row.DriverName, row.Time)
		}
	})

	t.Run("EmptyPositions", func(t *testing.T) {
		t.Parallel()
		for _, kind := range domain.SessionKinds() {
			table, err := NormalizeJSON([]byte(`{
				"positions": [],
				"drivers": [{"driver_number": 1, "full_name": "A"}],
				"laps": [{"driver_number": 1, "lap_duration": 80.1}]
			}`), kind)
			if err != nil {
				t.Fatalf("did not expect error but found: '%s'", err.Error())
			}
			if !table.Empty() {
				t.Errorf("expected no %s rows but found %d", kind, len(table.Rows))
			}
		}
	})

	t.Run("DuplicatePositions", func(t *testing.T) {
		t.Parallel()
		// driver 4 stopped being reported after 14:10 while still claiming P2
		table, err := NormalizeJSON([]byte(`{
			"positions": [
				{"driver_number": 4, "position": 2, "date": "2024-05-26T14:10:00+00:00"},
				{"driver_number": 16, "position": 1, "date": "2024-05-26T15:40:00+00:00"},
				{"driver_number": 81, "position": 2, "date": "2024-05-26T15:40:00+00:00"},
				{"driver_number": 55, "position": 3, "date": "2024-05-26T15:40:00+00:00"}
			],
			"drivers": [],
			"laps": []
		}`), domain.SessionKindRace)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		expected := []struct {
			position int
			number   string
		}{{1, "16"}, {2, "81"}, {3, "4"}, {4, "55"}}
		if len(table.Rows) != len(expected) {
			t.Fatalf("expected %d rows but found %d", len(expected), len(table.Rows))
		}
		for i, e := range expected {
			if table.Rows[i].Position != e.position || table.Rows[i].DriverNumber != e.number {
				t.Errorf("expected P%d driver %s but found P%d driver %s", e.position, e.number, table.Rows[i].Position, table.Rows[i].DriverNumber)
			}
		}
	})

	t.Run("StrictlyAscending", func(t *testing.T) {
		t.Parallel()
		for _, kind := range domain.SessionKinds() {
			table := normalizeFixture(t, "live-session.json", kind)
			for i := 1; i < len(table.Rows); i++ {
				if table.Rows[i].Position <= table.Rows[i-1].Position {
					t.Errorf("expected ascending positions but found %d after %d", table.Rows[i].Position, table.Rows[i-1].Position)
				}
			}
		}
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	fixtures := []string{"legacy-race.json", "legacy-qualifying.json", "live-session.json"}
	for _, fixture := range fixtures {
		raw := readFixture(t, fixture)
		p, err := source.Parse(raw)
		if err != nil {
			t.Fatalf("did not expect error but found: '%s'", err.Error())
		}
		for _, kind := range domain.SessionKinds() {
			first := Normalize(p, kind)
			second := Normalize(p, kind)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("expected identical %s tables for %s but found\n%+v\n%+v", kind, fixture, first, second)
			}
		}
	}
}

func TestNormalizeJSONUnrecognized(t *testing.T) {
	table, err := NormalizeJSON([]byte(`{"meeting":{"meeting_name":"Bahrain Grand Prix"}}`), domain.SessionKindRace)
	if !errors.Is(err, source.ErrUnrecognizedSource) {
		t.Errorf("expected ErrUnrecognizedSource but found: '%v'", err)
	}
	if table.Rows == nil || !table.Empty() {
		t.Errorf("expected an empty, non-nil table but found %+v", table.Rows)
	}
	if table.Session != domain.SessionKindRace {
		t.Errorf("expected session '%s' but found '%s'", domain.SessionKindRace, table.Session)
	}
}

func TestMeetingInfo(t *testing.T) {
	t.Run("Legacy", func(t *testing.T) {
		p, _ := source.Parse(readFixture(t, "legacy-race.json"))
		m := MeetingInfo(p)
		if m.Name != "Bahrain Grand Prix" {
			t.Errorf("expected name '%s' but found '%s'", "Bahrain Grand Prix", m.Name)
		}
		if m.Place() != "Sakhir, Bahrain" {
			t.Errorf("expected place '%s' but found '%s'", "Sakhir, Bahrain", m.Place())
		}
		if m.Season != 2021 || m.RoundNumber != 1 {
			t.Errorf("expected season/round 2021/1 but found %d/%d", m.Season, m.RoundNumber)
		}
		if m.Date != "2021-03-28" {
			t.Errorf("expected date '%s' but found '%s'", "2021-03-28", m.Date)
		}
	})

	t.Run("Live", func(t *testing.T) {
		p, _ := source.Parse(readFixture(t, "live-session.json"))
		m := MeetingInfo(p)
		if m.Name != "Bahrain Grand Prix" {
			t.Errorf("expected name '%s' but found '%s'", "Bahrain Grand Prix", m.Name)
		}
		if m.Date != "2023-03-03" {
			t.Errorf("expected date '%s' but found '%s'", "2023-03-03", m.Date)
		}
		if m.Season != 2023 || m.RoundNumber != 0 {
			t.Errorf("expected season/round 2023/0 but found %d/%d", m.Season, m.RoundNumber)
		}
	})
}

// testdataDir gets the testdata directory path relative to the invocation of the tests.
func testdataDir() string {
	_, p, _, _ := runtime.Caller(0)
	return path.Join(filepath.Dir(p), "testdata")
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path.Join(testdataDir(), name))
	if err != nil {
		t.Fatal("unable to read static data required for test setup", err)
	}
	return raw
}

func normalizeFixture(t *testing.T, name string, kind domain.SessionKind) domain.ResultTable {
	t.Helper()
	table, err := NormalizeJSON(readFixture(t, name), kind)
	if err != nil {
		t.Fatalf("did not expect error but found: '%s'", err.Error())
	}
	return table
}

func expectSegments(t *testing.T, found []string, expected ...string) {
	t.Helper()
	if !reflect.DeepEqual(found, expected) {
		t.Errorf("expected segments %v but found %v", expected, found)
	}
}
