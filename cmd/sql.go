package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/report"
	"github.com/ribtools/ribscrape/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(match_id, parent_event, event_name, event_time, event_region, best_of,
    stage, bracket, team1, team2, team1_series_score, team2_series_score, map_name,
    game_start_time, series_match_number, patch_id, series_winning_team_number,
    team1_match_score, team2_match_score, series_win_condition)
  rounds(match_id, round_number, winning_team_number, attacking_team_number,
    win_condition, ceremony, team1_loadout_tier, team2_loadout_tier)
  round_players(match_id, round_number, team_number, player_ign, agent, weapon_name,
    kills, deaths, assists, score, planted, defused, loadout_value,
    remaining_creds, spent_creds)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintQueryResult(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
