package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'ribscrape scrape' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-10s  %-24s  %-32s  %5s  %s\n",
		"ID", "MAP", "EVENT", "TEAMS", "SCORE", "DATE")
	fmt.Fprintf(os.Stdout, "%-8s  %-10s  %-24s  %-32s  %5s  %s\n",
		"────────", "──────────", "────────────────────────", "────────────────────────────────", "─────", "──────────")
	for _, m := range matches {
		teams := fmt.Sprintf("%s vs %s", m.Team1, m.Team2)
		score := fmt.Sprintf("%d-%d", m.Team1MatchScore, m.Team2MatchScore)
		fmt.Fprintf(os.Stdout, "%-8d  %-10s  %-24.24s  %-32.32s  %5s  %.10s\n",
			m.MatchID, m.MapName, m.EventName, teams, score, m.GameStartTime)
	}
	return nil
}
