package parser

import (
	"fmt"

	"github.com/ribtools/ribscrape/internal/model"
)

// AlignedRounds is the output of the round alignment: one resolved player
// list per team per round. Both slices always have length = round count; an
// element may be empty when no players resolved for that side.
type AlignedRounds struct {
	Team1 [][]model.ResolvedPlayerRecord
	Team2 [][]model.ResolvedPlayerRecord

	// UnmatchedStats counts stat records with no matching economy entry in
	// their round window. They are dropped from the output but surfaced
	// for run diagnostics.
	UnmatchedStats int
	// UnconsumedEconomies counts economy entries left over after their
	// round window was matched.
	UnconsumedEconomies int
}

// playerRound is the composite join key shared by stat and economy records.
type playerRound struct {
	playerID    int
	roundNumber int
}

// AlignRounds reconciles the series' flat playerStats sequence with the flat
// economies sequence for one match.
//
// Both sequences are implicitly ordered by round, numPlayers consecutive
// records per round: round i occupies records [i*numPlayers, (i+1)*numPlayers).
// Within each window the join is 1:1 on (playerId, roundNumber): each economy
// entry is indexed once, consumed at most once, and deleted on match so it
// cannot pair with a second stat record.
func AlignRounds(stats []model.PlayerStatRecord, economies []model.EconomyRecord, tables *Tables, matchID, roundCount int) (*AlignedRounds, error) {
	matchStats := make([]model.PlayerStatRecord, 0, len(stats))
	for _, s := range stats {
		if s.MatchID == matchID {
			matchStats = append(matchStats, s)
		}
	}

	out := &AlignedRounds{
		Team1: make([][]model.ResolvedPlayerRecord, roundCount),
		Team2: make([][]model.ResolvedPlayerRecord, roundCount),
	}

	numPlayers := tables.NumPlayers()
	for round := 0; round < roundCount; round++ {
		start := round * numPlayers
		if start >= len(matchStats) {
			break // remaining rounds stay empty
		}
		statEnd := start + numPlayers
		if statEnd > len(matchStats) {
			statEnd = len(matchStats)
		}

		// The economy window always spans the full numPlayers slots, even
		// when the stat window came up short: a missing stat record must not
		// shrink the window its teammates are matched against.
		window := indexEconomies(economies, start, start+numPlayers)
		for _, stat := range matchStats[start:statEnd] {
			key := playerRound{stat.PlayerID, stat.RoundNumber}
			econ, ok := window[key]
			if !ok {
				out.UnmatchedStats++
				continue
			}
			delete(window, key)

			resolved, err := resolvePlayer(stat, econ, tables)
			if err != nil {
				return nil, err
			}
			if stat.TeamNumber == 1 {
				out.Team1[round] = append(out.Team1[round], resolved)
			} else {
				out.Team2[round] = append(out.Team2[round], resolved)
			}
		}
		out.UnconsumedEconomies += len(window)
	}

	return out, nil
}

// indexEconomies builds the per-window join index. Bounds are clamped to the
// economies sequence, which shares the stat sequence's window layout.
func indexEconomies(economies []model.EconomyRecord, start, end int) map[playerRound]model.EconomyRecord {
	if start > len(economies) {
		start = len(economies)
	}
	if end > len(economies) {
		end = len(economies)
	}
	window := make(map[playerRound]model.EconomyRecord, end-start)
	for _, e := range economies[start:end] {
		window[playerRound{e.PlayerID, e.RoundNumber}] = e
	}
	return window
}

// resolvePlayer merges an economy record into its stat record and swaps the
// raw ids for names. Weapon resolution is skipped entirely when WeaponID is
// zero: no purchase, no weapon column.
func resolvePlayer(stat model.PlayerStatRecord, econ model.EconomyRecord, tables *Tables) (model.ResolvedPlayerRecord, error) {
	ign, err := tables.Ign(stat.PlayerID)
	if err != nil {
		return model.ResolvedPlayerRecord{}, fmt.Errorf("round %d: %w", stat.RoundNumber, err)
	}
	agent, err := tables.Agent(stat.AgentID)
	if err != nil {
		return model.ResolvedPlayerRecord{}, fmt.Errorf("round %d: %w", stat.RoundNumber, err)
	}
	var weapon string
	if stat.WeaponID != 0 {
		weapon, err = tables.Weapon(stat.WeaponID)
		if err != nil {
			return model.ResolvedPlayerRecord{}, fmt.Errorf("round %d: %w", stat.RoundNumber, err)
		}
	}

	return model.ResolvedPlayerRecord{
		PlayerIgn:      ign,
		Agent:          agent,
		WeaponName:     weapon,
		TeamNumber:     stat.TeamNumber,
		RoundNumber:    stat.RoundNumber,
		Kills:          stat.Kills,
		Deaths:         stat.Deaths,
		Assists:        stat.Assists,
		Score:          stat.Score,
		Planted:        stat.Planted,
		Defused:        stat.Defused,
		LoadoutValue:   econ.LoadoutValue,
		RemainingCreds: econ.RemainingCreds,
		SpentCreds:     econ.SpentCreds,
	}, nil
}
