// Package scraper drives the scrape run: it walks the results listing series
// by series, fetches each match payload, runs it through the parse/export
// pipeline, and appends the resulting rows to the sink.
package scraper

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ribtools/ribscrape/internal/export"
	"github.com/ribtools/ribscrape/internal/model"
	"github.com/ribtools/ribscrape/internal/parser"
)

// ListingSource supplies batches of series from the results listing. It
// returns an empty batch when the listing is exhausted.
type ListingSource interface {
	Next(ctx context.Context) ([]model.SeriesLinks, error)
}

// Fetcher retrieves and decodes one match payload. Transient failures are
// retried inside the fetcher; anything it still cannot deliver comes back as
// a SoftFailure.
type Fetcher interface {
	FetchMatch(ctx context.Context, url string) (*model.MatchPayload, error)
}

// Sink receives flattened rows, preserving order, durable before return.
type Sink interface {
	AppendRows(rows [][]string) error
}

// Store optionally persists parsed match records alongside the CSV output.
type Store interface {
	SaveMatch(rec *model.MatchRecord) error
}

// RunStats summarizes one scrape run.
type RunStats struct {
	Series              int
	MatchesWritten      int
	MatchesSkipped      int
	RowsWritten         int
	UnmatchedStats      int
	UnconsumedEconomies int
}

// Orchestrator runs the pipeline sequentially: one match is fetched, parsed,
// and written before the next begins.
type Orchestrator struct {
	listing ListingSource
	fetcher Fetcher
	sink    Sink
	store   Store // nil disables persistence

	// maxSeries caps how many series are processed; 0 means no cap.
	maxSeries int
	// headerWritten starts true when the output file already had rows.
	headerWritten bool

	log io.Writer
}

// New builds an orchestrator. log receives per-match progress lines.
func New(listing ListingSource, fetcher Fetcher, sink Sink, store Store, maxSeries int, headerWritten bool, log io.Writer) *Orchestrator {
	return &Orchestrator{
		listing:       listing,
		fetcher:       fetcher,
		sink:          sink,
		store:         store,
		maxSeries:     maxSeries,
		headerWritten: headerWritten,
		log:           log,
	}
}

// Run processes series until the listing is exhausted, the series cap is
// reached, or ctx is canceled. Per-match failures of any kind are logged and
// skipped; only sink and store failures abort the run.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}
	for o.maxSeries == 0 || stats.Series < o.maxSeries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		batch, err := o.listing.Next(ctx)
		if err != nil {
			return stats, fmt.Errorf("advance listing: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, series := range batch {
			if o.maxSeries != 0 && stats.Series >= o.maxSeries {
				break
			}
			stats.Series++
			if err := o.processSeries(ctx, series, stats); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// processSeries fetches and writes every match of one series, in map order.
func (o *Orchestrator) processSeries(ctx context.Context, series model.SeriesLinks, stats *RunStats) error {
	links := SortMatchLinks(series.MatchURLs)
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(o.log, "%s\n", link)

		payload, err := o.fetcher.FetchMatch(ctx, link)
		if err != nil {
			o.skip(stats, link, err)
			continue
		}
		rec, err := parser.BuildMatchRecord(payload)
		if err != nil {
			o.skip(stats, link, err)
			continue
		}

		rows, err := export.Rows(rec, !o.headerWritten)
		if err != nil {
			o.skip(stats, link, err)
			continue
		}
		if err := o.sink.AppendRows(rows); err != nil {
			return fmt.Errorf("append rows: %w", err)
		}
		// A zero-round match emits a bare metadata row with no header, so
		// the header slot stays open for the next match that has rounds.
		if !o.headerWritten && len(rec.Rounds) > 0 {
			o.headerWritten = true
		}
		if o.store != nil {
			if err := o.store.SaveMatch(rec); err != nil {
				return fmt.Errorf("store match %d: %w", rec.Meta.MatchID, err)
			}
		}

		stats.MatchesWritten++
		stats.RowsWritten += len(rows)
		stats.UnmatchedStats += rec.UnmatchedStats
		stats.UnconsumedEconomies += rec.UnconsumedEconomies
	}
	return nil
}

func (o *Orchestrator) skip(stats *RunStats, link string, err error) {
	stats.MatchesSkipped++
	fmt.Fprintf(o.log, "  [skip] %s: %v\n", link, err)
}

// SortMatchLinks orders match links ascending by the numeric value of their
// trailing =-delimited query parameter, so map 1 precedes map 2. Links
// without a parseable number keep their relative order at the end.
func SortMatchLinks(links []string) []string {
	sorted := make([]string, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aok := trailingNumber(sorted[i])
		b, bok := trailingNumber(sorted[j])
		if aok != bok {
			return aok
		}
		return a < b
	})
	return sorted
}

func trailingNumber(link string) (int, bool) {
	idx := strings.LastIndexByte(link, '=')
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(link[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
