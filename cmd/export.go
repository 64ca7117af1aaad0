package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/export"
	"github.com/ribtools/ribscrape/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored matches to a CSV file",
	Long: `Flattens every stored match to CSV rows, one row per round, metadata
columns first. The header is written once, before the first match that has
round data, and suppressed entirely when appending to an existing file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "pro_val_matches.csv", "output CSV path (.csv appended if missing)")
}

func runExport(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(os.Stderr, "No matches stored, nothing to export.")
		return nil
	}

	outPath := export.NormalizePath(exportOut)
	sink, existed, err := export.OpenCSV(outPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	headerWritten := existed
	total := 0
	for _, m := range matches {
		rec, err := db.GetMatch(m.MatchID)
		if err != nil {
			return fmt.Errorf("get match %d: %w", m.MatchID, err)
		}
		rows, err := export.Rows(rec, !headerWritten)
		if err != nil {
			return fmt.Errorf("flatten match %d: %w", m.MatchID, err)
		}
		if err := sink.AppendRows(rows); err != nil {
			return err
		}
		if !headerWritten && len(rec.Rounds) > 0 {
			headerWritten = true
		}
		total += len(rows)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d row(s) for %d match(es) to %s\n", total, len(matches), outPath)
	return nil
}
