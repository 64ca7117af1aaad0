package export

import (
	"strings"
	"testing"

	"github.com/ribtools/ribscrape/internal/model"
)

func makeRecord(roundCount int) *model.MatchRecord {
	rec := &model.MatchRecord{
		Meta: model.MatchMeta{
			ParentEvent:             "Champions Tour 2026",
			EventName:               "EMEA Stage 2",
			EventTime:               "2026-07-01T16:00:00Z",
			EventRegion:             "EMEA",
			BestOf:                  3,
			Stage:                   "Playoffs",
			Bracket:                 "Upper",
			Team1:                   "Fnatic",
			Team2:                   "Team Liquid",
			Team1SeriesScore:        2,
			Team2SeriesScore:        1,
			MatchID:                 777,
			MapName:                 "Ascent",
			GameStartTime:           "2026-07-01T17:00:00Z",
			SeriesMatchNumber:       1,
			PatchID:                 412,
			SeriesWinningTeamNumber: 1,
			Team1MatchScore:         13,
			Team2MatchScore:         7,
			SeriesWinCondition:      "completed",
		},
	}
	for i := 1; i <= roundCount; i++ {
		rec.Rounds = append(rec.Rounds, model.RoundRecord{
			Round: model.Round{RoundNumber: i, WinningTeamNumber: 1, AttackingTeamNumber: 2, WinCondition: "elimination"},
			Team1Players: []model.ResolvedPlayerRecord{
				{PlayerIgn: "Alice", Agent: "Jett", TeamNumber: 1, RoundNumber: i, Kills: 1, LoadoutValue: 3900},
			},
			Team2Players: []model.ResolvedPlayerRecord{
				{PlayerIgn: "Bob", Agent: "Sova", TeamNumber: 2, RoundNumber: i, Deaths: 1},
			},
		})
	}
	return rec
}

func TestHeaderWidth(t *testing.T) {
	h := Header()
	want := len(MetadataColumns) + len(RoundColumns)
	if len(h) != want {
		t.Fatalf("header width = %d, want %d", len(h), want)
	}
	if h[0] != "parentEvent" || h[len(h)-1] != "team2Players" {
		t.Errorf("header order wrong: first %q last %q", h[0], h[len(h)-1])
	}
}

func TestRowsWithHeader(t *testing.T) {
	rows, err := Rows(makeRecord(2), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d", len(rows))
	}
	want := len(MetadataColumns) + len(RoundColumns)
	for i, row := range rows {
		if len(row) != want {
			t.Errorf("row %d width = %d, want %d", i, len(row), want)
		}
	}
	if rows[0][0] != "parentEvent" {
		t.Errorf("expected header first, got %q", rows[0][0])
	}
	if rows[1][0] != "Champions Tour 2026" {
		t.Errorf("metadata not leading the data row: %q", rows[1][0])
	}
}

func TestRowsWithoutHeader(t *testing.T) {
	rows, err := Rows(makeRecord(1), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(rows))
	}
	if rows[0][0] == "parentEvent" {
		t.Error("header row emitted when withHeader was false")
	}
}

// A zero-round match degenerates to a single metadata-only row and never
// emits a header, even when asked for one.
func TestRowsZeroRounds(t *testing.T) {
	rows, err := Rows(makeRecord(0), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(MetadataColumns) {
		t.Errorf("expected metadata-only width %d, got %d", len(MetadataColumns), len(rows[0]))
	}
	if rows[0][0] != "Champions Tour 2026" {
		t.Errorf("expected metadata row, got %q first", rows[0][0])
	}
}

func TestPlayersCellEncoding(t *testing.T) {
	rows, err := Rows(makeRecord(1), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := rows[0]
	team1 := row[len(row)-2]

	if !strings.Contains(team1, `"playerIgn":"Alice"`) {
		t.Errorf("team1 cell missing player: %s", team1)
	}
	// No purchase was made, so the weapon key must be absent entirely.
	if strings.Contains(team1, "weaponName") {
		t.Errorf("empty weapon should be omitted: %s", team1)
	}
}

func TestPlayersCellNil(t *testing.T) {
	rec := makeRecord(1)
	rec.Rounds[0].Team1Players = nil
	rec.Rounds[0].Team2Players = nil

	rows, err := Rows(rec, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := rows[0]
	if row[len(row)-2] != "null" || row[len(row)-1] != "null" {
		t.Errorf("expected literal null cells, got %q / %q", row[len(row)-2], row[len(row)-1])
	}
}
