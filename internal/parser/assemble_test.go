package parser

import (
	"errors"
	"testing"

	"github.com/ribtools/ribscrape/internal/model"
)

// makePayload builds a complete payload for the test match: 2 rounds, 2
// players (Alice on team 1, Bob on team 2), matching economies.
func makePayload() *model.MatchPayload {
	stats, econ := twoRoundFixture()
	match := *testMatch()
	match.Map = model.MapRef{Name: "Ascent"}
	match.StartDate = "2026-07-01T17:00:00Z"
	match.SeriesMatchNumber = 1
	match.PatchID = 412
	match.WinningTeamNumber = 1
	match.Team1Score = 13
	match.Team2Score = 7
	match.WinCondition = "completed"
	match.Rounds = []model.Round{
		{RoundNumber: 1, WinningTeamNumber: 1, AttackingTeamNumber: 2, WinCondition: "elimination"},
		{RoundNumber: 2, WinningTeamNumber: 2, AttackingTeamNumber: 2, WinCondition: "defuse"},
	}

	return &model.MatchPayload{
		MatchID: testMatchID,
		Series: model.Series{
			ParentEventName: "Champions Tour 2026",
			EventName:       "EMEA Stage 2",
			StartDate:       "2026-07-01T16:00:00Z",
			EventRegionID:   emeaID,
			BestOf:          3,
			Stage:           "Playoffs",
			Bracket:         "Upper",
			Team1:           model.TeamRef{Name: "Fnatic"},
			Team2:           model.TeamRef{Name: "Team Liquid"},
			Team1Score:      2,
			Team2Score:      1,
			Matches:         []model.Match{match},
			PlayerStats:     stats,
		},
		MatchDetails: model.MatchDetails{Economies: econ},
		Content:      testContent(),
	}
}

func TestBuildMatchRecord(t *testing.T) {
	rec, err := BuildMatchRecord(makePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := rec.Meta
	if m.ParentEvent != "Champions Tour 2026" || m.EventName != "EMEA Stage 2" {
		t.Errorf("event metadata mismatch: %+v", m)
	}
	if m.EventRegion != "EMEA" {
		t.Errorf("expected resolved region EMEA, got %q", m.EventRegion)
	}
	if m.Team1 != "Fnatic" || m.Team2 != "Team Liquid" {
		t.Errorf("team names mismatch: %q vs %q", m.Team1, m.Team2)
	}
	if m.MatchID != testMatchID || m.MapName != "Ascent" {
		t.Errorf("match metadata mismatch: %+v", m)
	}
	if m.Team1MatchScore != 13 || m.Team2MatchScore != 7 {
		t.Errorf("match score mismatch: %d-%d", m.Team1MatchScore, m.Team2MatchScore)
	}

	if len(rec.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rec.Rounds))
	}
	for i, round := range rec.Rounds {
		if len(round.Team1Players) != 1 || len(round.Team2Players) != 1 {
			t.Errorf("round %d: expected one player per side, got %d/%d",
				i+1, len(round.Team1Players), len(round.Team2Players))
		}
	}
}

// Round count in the output always equals the match's round list, and a side
// with no resolved players is an explicit nil, not a missing entry.
func TestBuildMatchRecordEmptySideIsNil(t *testing.T) {
	p := makePayload()
	// Strip all round-2 records: both sides of round 2 end up empty.
	p.Series.PlayerStats = p.Series.PlayerStats[:2]
	p.MatchDetails.Economies = p.MatchDetails.Economies[:2]

	rec, err := BuildMatchRecord(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rec.Rounds))
	}
	if rec.Rounds[1].Team1Players != nil || rec.Rounds[1].Team2Players != nil {
		t.Error("expected nil player lists for the empty round")
	}
}

func TestBuildMatchRecordMatchNotFound(t *testing.T) {
	p := makePayload()
	p.MatchID = testMatchID + 1

	_, err := BuildMatchRecord(p)
	if !errors.Is(err, model.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestBuildMatchRecordRegionMiss(t *testing.T) {
	p := makePayload()
	p.Series.EventRegionID = 404

	_, err := BuildMatchRecord(p)
	if !errors.Is(err, model.ErrLookupMiss) {
		t.Fatalf("expected ErrLookupMiss, got %v", err)
	}
}

func TestBuildMatchRecordZeroRounds(t *testing.T) {
	p := makePayload()
	p.Series.Matches[0].Rounds = nil

	rec, err := BuildMatchRecord(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Rounds) != 0 {
		t.Errorf("expected no rounds, got %d", len(rec.Rounds))
	}
	if rec.Meta.MapName != "Ascent" {
		t.Errorf("metadata should survive a zero-round match: %+v", rec.Meta)
	}
}
