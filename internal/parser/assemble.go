package parser

import (
	"fmt"

	"github.com/ribtools/ribscrape/internal/model"
)

// BuildMatchRecord assembles the complete record for the payload's target
// match: series/match metadata plus aligned, team-partitioned round data.
func BuildMatchRecord(p *model.MatchPayload) (*model.MatchRecord, error) {
	match, err := locateMatch(&p.Series, p.MatchID)
	if err != nil {
		return nil, err
	}

	tables := BuildTables(p.Content, match)

	region, err := tables.Region(p.Series.EventRegionID)
	if err != nil {
		return nil, err
	}

	aligned, err := AlignRounds(p.Series.PlayerStats, p.MatchDetails.Economies, tables, match.ID, len(match.Rounds))
	if err != nil {
		return nil, err
	}

	rounds := make([]model.RoundRecord, len(match.Rounds))
	for i, r := range match.Rounds {
		rounds[i] = model.RoundRecord{
			Round:        r,
			Team1Players: nonEmpty(aligned.Team1[i]),
			Team2Players: nonEmpty(aligned.Team2[i]),
		}
	}

	return &model.MatchRecord{
		Meta: model.MatchMeta{
			ParentEvent:             p.Series.ParentEventName,
			EventName:               p.Series.EventName,
			EventTime:               p.Series.StartDate,
			EventRegion:             region,
			BestOf:                  p.Series.BestOf,
			Stage:                   p.Series.Stage,
			Bracket:                 p.Series.Bracket,
			Team1:                   p.Series.Team1.Name,
			Team2:                   p.Series.Team2.Name,
			Team1SeriesScore:        p.Series.Team1Score,
			Team2SeriesScore:        p.Series.Team2Score,
			MatchID:                 match.ID,
			MapName:                 match.Map.Name,
			GameStartTime:           match.StartDate,
			SeriesMatchNumber:       match.SeriesMatchNumber,
			PatchID:                 match.PatchID,
			SeriesWinningTeamNumber: match.WinningTeamNumber,
			Team1MatchScore:         match.Team1Score,
			Team2MatchScore:         match.Team2Score,
			SeriesWinCondition:      match.WinCondition,
		},
		Rounds:              rounds,
		UnmatchedStats:      aligned.UnmatchedStats,
		UnconsumedEconomies: aligned.UnconsumedEconomies,
	}, nil
}

// locateMatch finds the target match within the series by id. A well-formed
// payload always contains it, but the check is cheap and the failure mode
// (wrong match's rounds) is not.
func locateMatch(series *model.Series, matchID int) (*model.Match, error) {
	for i := range series.Matches {
		if series.Matches[i].ID == matchID {
			return &series.Matches[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", model.ErrMatchNotFound, matchID)
}

// nonEmpty normalizes an empty side to nil so it exports as an explicit null
// rather than an empty list.
func nonEmpty(players []model.ResolvedPlayerRecord) []model.ResolvedPlayerRecord {
	if len(players) == 0 {
		return nil
	}
	return players
}
