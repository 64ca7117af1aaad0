// Package parser turns a raw rib.gg match payload into a flat MatchRecord:
// it builds the id→name lookup tables, aligns per-round player statistics
// with per-round economy snapshots, and assembles the match metadata.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/ribtools/ribscrape/internal/model"
)

// DecodePayload decodes the pageProps JSON document of a match page and
// validates that the sections the pipeline depends on are present.
//
// A payload that embeds a server error document (statusCode 500) is reported
// as a SoftFailure, matching the skip-and-continue contract of the fetcher.
func DecodePayload(data []byte) (*model.MatchPayload, error) {
	// Presence check first: a missing section must be distinguishable from
	// an empty one.
	var probe struct {
		MatchID      json.RawMessage `json:"matchId"`
		Series       json.RawMessage `json:"series"`
		MatchDetails json.RawMessage `json:"matchDetails"`
		Content      json.RawMessage `json:"content"`
		StatusCode   int             `json:"statusCode"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if probe.StatusCode == 500 {
		return nil, &model.SoftFailure{Reason: "payload embeds server error document"}
	}
	for _, sec := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"matchId", probe.MatchID},
		{"series", probe.Series},
		{"matchDetails", probe.MatchDetails},
		{"content", probe.Content},
	} {
		if len(sec.raw) == 0 || string(sec.raw) == "null" {
			return nil, fmt.Errorf("%w: missing %q", model.ErrMalformedPayload, sec.name)
		}
	}

	var p model.MatchPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &p, nil
}
