package ribgg

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ribtools/ribscrape/internal/model"
)

// Results-listing selectors. The site is a MUI app; these class names track
// its generated stylesheet and are pinned to the current markup.
const (
	seriesRowSelector = "div.MuiBox-root.css-7erhtc"
	matchLinkSelector = "a.MuiLink-root"
)

// Listing walks /results page by page, yielding the series rows of each page
// as one batch. It implements scraper.ListingSource.
type Listing struct {
	client *Client
	page   int
	done   bool
}

// NewListing returns a listing that starts at the given 1-based page.
func NewListing(client *Client, startPage int) *Listing {
	if startPage < 1 {
		startPage = 1
	}
	return &Listing{client: client, page: startPage}
}

// Next fetches and parses the next listing page. An empty batch means the
// listing is exhausted. Listing fetch failures are hard errors: without the
// listing there is nothing left to scrape.
func (l *Listing) Next(ctx context.Context) ([]model.SeriesLinks, error) {
	if l.done {
		return nil, nil
	}

	url := fmt.Sprintf("%s/results?page=%d", l.client.BaseURL(), l.page)
	body, err := l.client.get(ctx, url)
	if err != nil {
		return nil, err
	}

	batch, err := ParseSeriesList(body, l.client.BaseURL())
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		l.done = true
		return nil, nil
	}
	l.page++
	return batch, nil
}

// ParseSeriesList extracts the series rows and their match links from a
// results-listing fragment. Relative links are joined onto baseURL. Series
// rows without match links are dropped.
func ParseSeriesList(fragment []byte, baseURL string) ([]model.SeriesLinks, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var series []model.SeriesLinks
	doc.Find(seriesRowSelector).Each(func(_ int, row *goquery.Selection) {
		var links []string
		row.Find(matchLinkSelector).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok || href == "" {
				return
			}
			if strings.HasPrefix(href, "/") {
				href = baseURL + href
			}
			links = append(links, href)
		})
		if len(links) > 0 {
			series = append(series, model.SeriesLinks{MatchURLs: links})
		}
	})
	return series, nil
}
