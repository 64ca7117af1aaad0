package ribgg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ribtools/ribscrape/internal/model"
)

// matchPage wraps a pageProps document in the page skeleton the site serves.
func matchPage(pageProps string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>rib.gg</title></head>
<body><div id="__next">loading</div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":%s},"page":"/series/[...slug]"}</script>
</body></html>`, pageProps)
}

const testPageProps = `{
	"matchId": 777,
	"series": {
		"parentEventName": "Champions Tour 2026",
		"eventRegionId": 3,
		"matches": [{
			"id": 777,
			"map": {"name": "Ascent"},
			"players": [
				{"player": {"id": 1, "ign": "Alice"}},
				{"player": {"id": 2, "ign": "Bob"}}
			],
			"rounds": [{"roundNumber": 1, "winningTeamNumber": 1}]
		}],
		"playerStats": [
			{"matchId": 777, "playerId": 1, "roundNumber": 1, "teamNumber": 1, "agentId": 10, "kills": 2},
			{"matchId": 777, "playerId": 2, "roundNumber": 1, "teamNumber": 2, "agentId": 11}
		]
	},
	"matchDetails": {
		"economies": [
			{"playerId": 1, "roundNumber": 1, "loadoutValue": 3900, "remaining": 100, "spent": 3800},
			{"playerId": 2, "roundNumber": 1, "loadoutValue": 2400, "remaining": 50, "spent": 2350}
		]
	},
	"content": {
		"agents": [{"id": 10, "name": "Jett"}, {"id": 11, "name": "Sova"}],
		"weapons": [{"id": 5, "name": "Vandal"}],
		"regions": [{"id": 3, "name": "EMEA"}]
	}
}`

func newTestClient(url string) *Client {
	return NewClient(url, 0, 5*time.Second)
}

func TestFetchMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, matchPage(testPageProps))
	}))
	defer srv.Close()

	p, err := newTestClient(srv.URL).FetchMatch(context.Background(), srv.URL+"/series/test?match=777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MatchID != 777 {
		t.Errorf("matchId = %d, want 777", p.MatchID)
	}
	if len(p.Series.Matches) != 1 || p.Series.Matches[0].Map.Name != "Ascent" {
		t.Errorf("series not decoded: %+v", p.Series)
	}
	if len(p.MatchDetails.Economies) != 2 {
		t.Errorf("economies not decoded: %d", len(p.MatchDetails.Economies))
	}
}

func TestFetchMatchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchMatch(context.Background(), srv.URL+"/series/test?match=1")
	if !model.IsSoftFailure(err) {
		t.Fatalf("expected SoftFailure, got %v", err)
	}
}

func TestFetchMatchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchMatch(context.Background(), srv.URL+"/series/gone?match=1")
	if !model.IsSoftFailure(err) {
		t.Fatalf("expected SoftFailure, got %v", err)
	}
}

func TestFetchMatchEmbeddedErrorDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, matchPage(`{"statusCode": 500, "message": "Internal Server Error"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchMatch(context.Background(), srv.URL+"/series/test?match=1")
	if !model.IsSoftFailure(err) {
		t.Fatalf("expected SoftFailure, got %v", err)
	}
}

func TestExtractPayload(t *testing.T) {
	raw, err := ExtractPayload([]byte(matchPage(`{"matchId": 42}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var probe struct {
		MatchID int `json:"matchId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if probe.MatchID != 42 {
		t.Errorf("matchId = %d, want 42", probe.MatchID)
	}
}

func TestExtractPayloadNoScript(t *testing.T) {
	_, err := ExtractPayload([]byte(`<html><body><p>no data here</p></body></html>`))
	if !model.IsSoftFailure(err) {
		t.Fatalf("expected SoftFailure, got %v", err)
	}
}

func TestExtractPayloadEmptyPageProps(t *testing.T) {
	_, err := ExtractPayload([]byte(`<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{}}</script></body></html>`))
	if !model.IsSoftFailure(err) {
		t.Fatalf("expected SoftFailure, got %v", err)
	}
}
