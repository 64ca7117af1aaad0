// Package ribgg is a minimal client for www.rib.gg: it fetches match pages,
// extracts the embedded __NEXT_DATA__ payload, and walks the paginated
// results listing.
package ribgg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/ribtools/ribscrape/internal/model"
	"github.com/ribtools/ribscrape/internal/parser"
)

// defaultBaseURL is the site root; match links from the listing are relative
// to it.
const defaultBaseURL = "https://www.rib.gg"

// Client fetches rib.gg pages. Transient failures are retried by the
// underlying resty client; whatever still fails surfaces as a SoftFailure so
// the orchestrator skips the match and moves on.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient returns a client that retries transient failures up to retries
// times with a short backoff.
func NewClient(baseURL string, retries int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return &Client{http: httpc, baseURL: baseURL}
}

// BaseURL returns the configured site root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchMatch fetches one match page and decodes its embedded payload.
// Network errors, server errors, and pages without embedded match data all
// come back as SoftFailure.
func (c *Client) FetchMatch(ctx context.Context, url string) (*model.MatchPayload, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractPayload(body)
	if err != nil {
		return nil, err
	}
	return parser.DecodePayload(raw)
}

// get fetches a page body, mapping every failure mode to SoftFailure.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &model.SoftFailure{Reason: fmt.Sprintf("get %s: %v", url, err)}
	}
	switch {
	case resp.StatusCode() == http.StatusInternalServerError:
		return nil, &model.SoftFailure{Reason: fmt.Sprintf("get %s: server error", url)}
	case resp.StatusCode() != http.StatusOK:
		return nil, &model.SoftFailure{Reason: fmt.Sprintf("get %s: HTTP %d", url, resp.StatusCode())}
	}
	return resp.Body(), nil
}

// ExtractPayload pulls props.pageProps out of a match page's __NEXT_DATA__
// script tag.
func ExtractPayload(body []byte) (json.RawMessage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &model.SoftFailure{Reason: fmt.Sprintf("parse html: %v", err)}
	}
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil, &model.SoftFailure{Reason: "no embedded match data"}
	}

	var next struct {
		Props struct {
			PageProps json.RawMessage `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(script.Text()), &next); err != nil {
		return nil, &model.SoftFailure{Reason: fmt.Sprintf("decode __NEXT_DATA__: %v", err)}
	}
	if len(next.Props.PageProps) == 0 {
		return nil, &model.SoftFailure{Reason: "no embedded match data"}
	}
	return next.Props.PageProps, nil
}
