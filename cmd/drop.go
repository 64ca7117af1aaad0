package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/storage"
)

var dropCmd = &cobra.Command{
	Use:   "drop <match-id>",
	Short: "Remove a stored match and its round data",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	dropped, err := db.DropMatch(matchID)
	if err != nil {
		return fmt.Errorf("drop match: %w", err)
	}
	if !dropped {
		fmt.Fprintf(os.Stderr, "No stored match with id %d\n", matchID)
		return nil
	}
	fmt.Printf("Dropped match %d\n", matchID)
	return nil
}
