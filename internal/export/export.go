// Package export flattens match records into header and data rows with a
// fixed, ordered column schema, and appends them to a CSV file.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ribtools/ribscrape/internal/model"
)

// MetadataColumns is the fixed column order for match metadata. Header and
// data rows are both built from this list, so they cannot drift apart.
var MetadataColumns = []string{
	"parentEvent", "eventName", "eventTime", "eventRegion", "bestOf",
	"stage", "bracket", "team1", "team2", "team1SeriesScore",
	"team2SeriesScore", "matchId", "mapName", "gameStartTime",
	"seriesMatchNumber", "patchId", "seriesWinningTeamNumber",
	"team1MatchScore", "team2MatchScore", "seriesWinCondition",
}

// RoundColumns is the fixed column order for per-round data, trailing the
// metadata columns in every data row.
var RoundColumns = []string{
	"roundNumber", "winningTeamNumber", "attackingTeamNumber",
	"winCondition", "ceremony", "team1LoadoutTier", "team2LoadoutTier",
	"team1Players", "team2Players",
}

// Header returns the full header row.
func Header() []string {
	h := make([]string, 0, len(MetadataColumns)+len(RoundColumns))
	h = append(h, MetadataColumns...)
	return append(h, RoundColumns...)
}

// Rows flattens a match record into CSV rows: one data row per round, each
// prefixed with the match metadata. withHeader prepends the header row.
//
// A match with zero rounds degenerates to a single metadata-only row with no
// header, preserving how matches lacking round detail have always been
// recorded.
func Rows(rec *model.MatchRecord, withHeader bool) ([][]string, error) {
	meta := metaCells(&rec.Meta)

	if len(rec.Rounds) == 0 {
		return [][]string{meta}, nil
	}

	rows := make([][]string, 0, len(rec.Rounds)+1)
	if withHeader {
		rows = append(rows, Header())
	}
	want := len(MetadataColumns) + len(RoundColumns)
	for _, round := range rec.Rounds {
		cells, err := roundCells(&round)
		if err != nil {
			return nil, err
		}
		row := append(append(make([]string, 0, want), meta...), cells...)
		if len(row) != want {
			return nil, fmt.Errorf("%w: got %d columns, want %d", model.ErrColumnMismatch, len(row), want)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func metaCells(m *model.MatchMeta) []string {
	return []string{
		m.ParentEvent, m.EventName, m.EventTime, m.EventRegion,
		strconv.Itoa(m.BestOf), m.Stage, m.Bracket, m.Team1, m.Team2,
		strconv.Itoa(m.Team1SeriesScore), strconv.Itoa(m.Team2SeriesScore),
		strconv.Itoa(m.MatchID), m.MapName, m.GameStartTime,
		strconv.Itoa(m.SeriesMatchNumber), strconv.Itoa(m.PatchID),
		strconv.Itoa(m.SeriesWinningTeamNumber),
		strconv.Itoa(m.Team1MatchScore), strconv.Itoa(m.Team2MatchScore),
		m.SeriesWinCondition,
	}
}

func roundCells(r *model.RoundRecord) ([]string, error) {
	team1, err := playersCell(r.Team1Players)
	if err != nil {
		return nil, err
	}
	team2, err := playersCell(r.Team2Players)
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.Itoa(r.RoundNumber),
		strconv.Itoa(r.WinningTeamNumber),
		strconv.Itoa(r.AttackingTeamNumber),
		r.WinCondition,
		r.Ceremony,
		strconv.Itoa(r.Team1LoadoutTier),
		strconv.Itoa(r.Team2LoadoutTier),
		team1,
		team2,
	}, nil
}

// playersCell serializes a side's resolved players into one cell. A nil
// slice marshals to the literal "null", the explicit no-data marker.
func playersCell(players []model.ResolvedPlayerRecord) (string, error) {
	data, err := json.Marshal(players)
	if err != nil {
		return "", fmt.Errorf("encode players: %w", err)
	}
	return string(data), nil
}
