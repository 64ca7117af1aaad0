package model

// ---- Raw payload types (rib.gg __NEXT_DATA__ pageProps) ----

// MatchPayload is the embedded JSON document for one match page. It is
// decoded once per match and never mutated afterwards.
type MatchPayload struct {
	MatchID      int          `json:"matchId"`
	Series       Series       `json:"series"`
	MatchDetails MatchDetails `json:"matchDetails"`
	Content      Content      `json:"content"`
	// StatusCode is set by the site when the page embeds an error document
	// instead of match data (observed value: 500).
	StatusCode int `json:"statusCode"`
}

// Series holds series-level metadata plus the flat playerStats sequence
// shared by every match in the series.
type Series struct {
	ParentEventName string             `json:"parentEventName"`
	EventName       string             `json:"eventName"`
	StartDate       string             `json:"startDate"`
	EventRegionID   int                `json:"eventRegionId"`
	BestOf          int                `json:"bestOf"`
	Stage           string             `json:"stage"`
	Bracket         string             `json:"bracket"`
	Team1           TeamRef            `json:"team1"`
	Team2           TeamRef            `json:"team2"`
	Team1Score      int                `json:"team1Score"`
	Team2Score      int                `json:"team2Score"`
	Matches         []Match            `json:"matches"`
	PlayerStats     []PlayerStatRecord `json:"playerStats"`
}

type TeamRef struct {
	Name string `json:"name"`
}

// Match is one played map within a series.
type Match struct {
	ID                int           `json:"id"`
	Map               MapRef        `json:"map"`
	StartDate         string        `json:"startDate"`
	SeriesMatchNumber int           `json:"seriesMatchNumber"`
	PatchID           int           `json:"patchId"`
	WinningTeamNumber int           `json:"winningTeamNumber"`
	Team1Score        int           `json:"team1Score"`
	Team2Score        int           `json:"team2Score"`
	WinCondition      string        `json:"winCondition"`
	Players           []MatchPlayer `json:"players"`
	Rounds            []Round       `json:"rounds"`
}

type MapRef struct {
	Name string `json:"name"`
}

type MatchPlayer struct {
	Player PlayerRef `json:"player"`
}

type PlayerRef struct {
	ID  int    `json:"id"`
	Ign string `json:"ign"`
}

// Round is the raw per-round data carried by a match.
type Round struct {
	RoundNumber         int    `json:"roundNumber"`
	WinningTeamNumber   int    `json:"winningTeamNumber"`
	AttackingTeamNumber int    `json:"attackingTeamNumber"`
	WinCondition        string `json:"winCondition"`
	Ceremony            string `json:"ceremony"`
	Team1LoadoutTier    int    `json:"team1LoadoutTier"`
	Team2LoadoutTier    int    `json:"team2LoadoutTier"`
}

// PlayerStatRecord is one player's raw statistics for one round, keyed by
// (PlayerID, RoundNumber). Foreign ids are resolved away during alignment.
type PlayerStatRecord struct {
	MatchID     int  `json:"matchId"`
	PlayerID    int  `json:"playerId"`
	RoundNumber int  `json:"roundNumber"`
	TeamNumber  int  `json:"teamNumber"`
	AgentID     int  `json:"agentId"`
	WeaponID    int  `json:"weaponId"` // 0 when the player made no purchase
	Kills       int  `json:"kills"`
	Deaths      int  `json:"deaths"`
	Assists     int  `json:"assists"`
	Score       int  `json:"score"`
	Planted     bool `json:"planted"`
	Defused     bool `json:"defused"`
}

type MatchDetails struct {
	Economies []EconomyRecord `json:"economies"`
}

// EconomyRecord is one player's purchase/loadout snapshot for one round,
// keyed by (PlayerID, RoundNumber). Each record matches at most one
// PlayerStatRecord.
type EconomyRecord struct {
	PlayerID       int `json:"playerId"`
	RoundNumber    int `json:"roundNumber"`
	LoadoutValue   int `json:"loadoutValue"`
	RemainingCreds int `json:"remaining"`
	SpentCreds     int `json:"spent"`
}

// Content holds the reference tables used to resolve ids into names.
type Content struct {
	Weapons []NamedEntity `json:"weapons"`
	Agents  []NamedEntity `json:"agents"`
	Regions []NamedEntity `json:"regions"`
}

type NamedEntity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ---- Resolved record types ----

// ResolvedPlayerRecord is the post-merge union of a PlayerStatRecord and its
// matching EconomyRecord, with ids replaced by names. WeaponName is empty
// when no purchase was made. Immutable after creation.
type ResolvedPlayerRecord struct {
	PlayerIgn      string `json:"playerIgn"`
	Agent          string `json:"agent"`
	WeaponName     string `json:"weaponName,omitempty"`
	TeamNumber     int    `json:"teamNumber"`
	RoundNumber    int    `json:"roundNumber"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	Score          int    `json:"score"`
	Planted        bool   `json:"planted"`
	Defused        bool   `json:"defused"`
	LoadoutValue   int    `json:"loadoutValue"`
	RemainingCreds int    `json:"remaining"`
	SpentCreds     int    `json:"spent"`
}

// RoundRecord is a raw round augmented with its team-partitioned resolved
// players. A side with no resolved players holds a nil slice, which exports
// as an explicit null.
type RoundRecord struct {
	Round
	Team1Players []ResolvedPlayerRecord
	Team2Players []ResolvedPlayerRecord
}

// MatchMeta is the fixed series- and match-level metadata attached to every
// exported row for a match.
type MatchMeta struct {
	ParentEvent             string
	EventName               string
	EventTime               string
	EventRegion             string
	BestOf                  int
	Stage                   string
	Bracket                 string
	Team1                   string
	Team2                   string
	Team1SeriesScore        int
	Team2SeriesScore        int
	MatchID                 int
	MapName                 string
	GameStartTime           string
	SeriesMatchNumber       int
	PatchID                 int
	SeriesWinningTeamNumber int
	Team1MatchScore         int
	Team2MatchScore         int
	SeriesWinCondition      string
}

// MatchRecord is one fully parsed match: metadata plus its ordered rounds.
// Constructed once per fetched payload and flattened to rows immediately.
type MatchRecord struct {
	Meta   MatchMeta
	Rounds []RoundRecord

	// Alignment diagnostics, carried for run-level reporting. Unmatched
	// stat records are dropped silently but counted here.
	UnmatchedStats      int
	UnconsumedEconomies int
}

// SeriesLinks holds the match page URLs extracted from one series row of the
// results listing, in playing order once sorted.
type SeriesLinks struct {
	MatchURLs []string
}
