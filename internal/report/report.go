package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ribtools/ribscrape/internal/model"
	"github.com/ribtools/ribscrape/internal/scraper"
)

// PrintMatchSummary prints a one-line summary header for a stored match.
func PrintMatchSummary(w io.Writer, m model.MatchMeta) {
	fmt.Fprintf(w, "\n%s — %s  |  %s %d–%d %s (BO%d)  |  Map: %s  |  Match ID: %d\n\n",
		m.ParentEvent, m.EventName, m.Team1, m.Team1SeriesScore, m.Team2SeriesScore,
		m.Team2, m.BestOf, m.MapName, m.MatchID)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRoundTable prints one row per round of a match.
func PrintRoundTable(w io.Writer, rounds []model.RoundRecord) {
	table := newTable(w)
	table.Header("ROUND", "WINNER", "ATTACKING", "CONDITION", "CEREMONY", "T1_TIER", "T2_TIER", "T1_PLAYERS", "T2_PLAYERS")

	for _, r := range rounds {
		table.Append(
			strconv.Itoa(r.RoundNumber),
			strconv.Itoa(r.WinningTeamNumber),
			strconv.Itoa(r.AttackingTeamNumber),
			r.WinCondition,
			r.Ceremony,
			strconv.Itoa(r.Team1LoadoutTier),
			strconv.Itoa(r.Team2LoadoutTier),
			sideCount(r.Team1Players),
			sideCount(r.Team2Players),
		)
	}
	table.Render()
}

func sideCount(players []model.ResolvedPlayerRecord) string {
	if players == nil {
		return "—"
	}
	return strconv.Itoa(len(players))
}

// PrintRoundPlayersTable prints the resolved players of a single round, both
// teams, team 1 first.
func PrintRoundPlayersTable(w io.Writer, round model.RoundRecord) {
	table := newTable(w)
	table.Header("TEAM", "IGN", "AGENT", "WEAPON", "K", "D", "A", "SCORE", "LOADOUT", "SPENT", "LEFT")

	for _, side := range [2][]model.ResolvedPlayerRecord{round.Team1Players, round.Team2Players} {
		for _, p := range side {
			weapon := p.WeaponName
			if weapon == "" {
				weapon = "—"
			}
			table.Append(
				strconv.Itoa(p.TeamNumber),
				p.PlayerIgn,
				p.Agent,
				weapon,
				strconv.Itoa(p.Kills),
				strconv.Itoa(p.Deaths),
				strconv.Itoa(p.Assists),
				strconv.Itoa(p.Score),
				strconv.Itoa(p.LoadoutValue),
				strconv.Itoa(p.SpentCreds),
				strconv.Itoa(p.RemainingCreds),
			)
		}
	}
	table.Render()
}

// PrintQueryResult renders an ad-hoc query result as a table.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	table.Header(anyCells(cols)...)
	for _, row := range rows {
		table.Append(anyCells(row)...)
	}
	table.Render()
}

func anyCells(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// PrintRunSummary prints the end-of-run totals for a scrape.
func PrintRunSummary(w io.Writer, stats *scraper.RunStats) {
	table := newTable(w)
	table.Header("SERIES", "WRITTEN", "SKIPPED", "ROWS", "UNMATCHED_STATS", "LEFTOVER_ECON")
	table.Append(
		strconv.Itoa(stats.Series),
		strconv.Itoa(stats.MatchesWritten),
		strconv.Itoa(stats.MatchesSkipped),
		strconv.Itoa(stats.RowsWritten),
		strconv.Itoa(stats.UnmatchedStats),
		strconv.Itoa(stats.UnconsumedEconomies),
	)
	table.Render()
}
