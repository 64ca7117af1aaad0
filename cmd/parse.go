package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ribtools/ribscrape/internal/export"
	"github.com/ribtools/ribscrape/internal/parser"
	"github.com/ribtools/ribscrape/internal/report"
	"github.com/ribtools/ribscrape/internal/ribgg"
	"github.com/ribtools/ribscrape/internal/storage"
)

var (
	parseCSV     string
	parseNoStore bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a saved match page or payload JSON",
	Long: `Parses a match from a file instead of the network: either a saved match
page (HTML containing the embedded match data) or the raw payload JSON itself.
Prints the match summary and round table, stores the match, and optionally
appends CSV rows.

Examples:
  ribscrape parse match.html
  ribscrape parse payload.json --csv out.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseCSV, "csv", "", "also append rows to this CSV file")
	parseCmd.Flags().BoolVar(&parseNoStore, "no-store", false, "skip storing the parsed match")
}

func runParse(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	// HTML pages carry the payload in a script tag; bare JSON is the
	// payload already.
	raw := data
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		raw, err = ribgg.ExtractPayload(data)
		if err != nil {
			return err
		}
	}

	payload, err := parser.DecodePayload(raw)
	if err != nil {
		return err
	}
	rec, err := parser.BuildMatchRecord(payload)
	if err != nil {
		return err
	}

	report.PrintMatchSummary(os.Stdout, rec.Meta)
	report.PrintRoundTable(os.Stdout, rec.Rounds)
	if rec.UnmatchedStats > 0 || rec.UnconsumedEconomies > 0 {
		fmt.Fprintf(os.Stderr, "warn: %d unmatched stat record(s), %d leftover economy record(s)\n",
			rec.UnmatchedStats, rec.UnconsumedEconomies)
	}

	if !parseNoStore {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if err := db.SaveMatch(rec); err != nil {
			return fmt.Errorf("store match: %w", err)
		}
		fmt.Fprintf(os.Stderr, "stored match %d (%d rounds)\n", rec.Meta.MatchID, len(rec.Rounds))
	}

	if parseCSV != "" {
		sink, existed, err := export.OpenCSV(export.NormalizePath(parseCSV))
		if err != nil {
			return err
		}
		defer sink.Close()
		rows, err := export.Rows(rec, !existed)
		if err != nil {
			return err
		}
		if err := sink.AppendRows(rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "appended %d row(s) to %s\n", len(rows), parseCSV)
	}
	return nil
}
