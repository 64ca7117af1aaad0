package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/report"
	"github.com/ribtools/ribscrape/internal/storage"
)

var showRound int

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show a stored match by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showRound, "round", 0, "drill down into one round's players")
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	rec, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No stored match with id %d\n", matchID)
		return nil
	}

	report.PrintMatchSummary(os.Stdout, rec.Meta)

	if showRound > 0 {
		for _, round := range rec.Rounds {
			if round.RoundNumber == showRound {
				report.PrintRoundPlayersTable(os.Stdout, round)
				return nil
			}
		}
		fmt.Fprintf(os.Stderr, "Match %d has no round %d\n", matchID, showRound)
		return nil
	}

	report.PrintRoundTable(os.Stdout, rec.Rounds)
	return nil
}
