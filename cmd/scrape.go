package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ribtools/ribscrape/internal/export"
	"github.com/ribtools/ribscrape/internal/report"
	"github.com/ribtools/ribscrape/internal/ribgg"
	"github.com/ribtools/ribscrape/internal/scraper"
	"github.com/ribtools/ribscrape/internal/storage"
)

// scrape command flags.
var (
	scrapeOut     string
	scrapeSeries  int
	scrapeStart   int
	scrapeRetries int
	scrapeConfig  string
	scrapeNoStore bool
)

// scrapeConfigFile is the schema for --config YAML files. Flags that were
// set explicitly override file values.
type scrapeConfigFile struct {
	BaseURL        string `yaml:"baseURL"`
	Output         string `yaml:"output"`
	NumSeries      int    `yaml:"numSeries"`
	StartPage      int    `yaml:"startPage"`
	Retries        int    `yaml:"retries"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape match results from rib.gg into a CSV file",
	Long: `Walks the rib.gg results listing series by series, fetches each match page,
parses the embedded match data, and appends one row per round to the output CSV.
Parsed matches are also stored in the local database unless --no-store is set.

A match that cannot be fetched or parsed is skipped with a diagnostic; the run
continues with the next match.

Example:
  ribscrape scrape --out pro_val_matches.csv --series 200`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeOut, "out", "pro_val_matches.csv", "output CSV path (.csv appended if missing)")
	scrapeCmd.Flags().IntVar(&scrapeSeries, "series", 10000, "maximum number of series to record")
	scrapeCmd.Flags().IntVar(&scrapeStart, "start", 1, "1-based results page to start from")
	scrapeCmd.Flags().IntVar(&scrapeRetries, "retries", 10, "fetch retry count for transient failures")
	scrapeCmd.Flags().StringVar(&scrapeConfig, "config", "", "YAML config file (flags override)")
	scrapeCmd.Flags().BoolVar(&scrapeNoStore, "no-store", false, "skip storing parsed matches in the database")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg := scrapeConfigFile{
		Output:         scrapeOut,
		NumSeries:      scrapeSeries,
		StartPage:      scrapeStart,
		Retries:        scrapeRetries,
		TimeoutSeconds: 30,
	}
	if scrapeConfig != "" {
		if err := loadScrapeConfig(scrapeConfig, &cfg, cmd); err != nil {
			return err
		}
	}

	outPath := export.NormalizePath(cfg.Output)
	sink, existed, err := export.OpenCSV(outPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	var store scraper.Store
	if !scrapeNoStore {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		store = db
	}

	client := ribgg.NewClient(cfg.BaseURL, cfg.Retries, time.Duration(cfg.TimeoutSeconds)*time.Second)
	listing := ribgg.NewListing(client, cfg.StartPage)

	orch := scraper.New(listing, client, sink, store, cfg.NumSeries, existed, os.Stderr)
	stats, err := orch.Run(context.Background())
	if stats != nil {
		fmt.Fprintf(os.Stderr, "\nWrote %s\n", outPath)
		report.PrintRunSummary(os.Stdout, stats)
	}
	return err
}

// loadScrapeConfig merges the YAML file under any explicitly set flags.
func loadScrapeConfig(path string, cfg *scrapeConfigFile, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var file scrapeConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.Output != "" && !cmd.Flags().Changed("out") {
		cfg.Output = file.Output
	}
	if file.NumSeries > 0 && !cmd.Flags().Changed("series") {
		cfg.NumSeries = file.NumSeries
	}
	if file.StartPage > 0 && !cmd.Flags().Changed("start") {
		cfg.StartPage = file.StartPage
	}
	if file.Retries > 0 && !cmd.Flags().Changed("retries") {
		cfg.Retries = file.Retries
	}
	if file.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = file.TimeoutSeconds
	}
	return nil
}
