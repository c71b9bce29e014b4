package games

import "time"

// Team identifies one side of a game as delivered by the upstream API.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TeamInfo is a franchise entry from the upstream team listing.
type TeamInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamName     string `json:"teamName"`
	Abbreviation string `json:"abbreviation"`
}

// RawGame is a schedule entry as fetched, before any tracked-team attribution.
// HomeRuns and AwayRuns are nil for games that have not been played.
type RawGame struct {
	GamePK   int64  `json:"gamePk"`
	GameDate string `json:"gameDate"`
	Status   string `json:"status"`
	Home     Team   `json:"home"`
	Away     Team   `json:"away"`
	HomeRuns *int   `json:"homeRuns"`
	AwayRuns *int   `json:"awayRuns"`
	Venue    string `json:"venue"`
	GameType string `json:"gameType"`
}

// Row is a game seen from the tracked team's side.
type Row struct {
	GamePK       int64     `json:"gamePk"`
	Date         time.Time `json:"date"`
	Season       int       `json:"season"`
	Status       string    `json:"status"`
	GameType     string    `json:"gameType"`
	IsHome       bool      `json:"isHome"`
	TeamRuns     *int      `json:"teamRuns"`
	OpponentRuns *int      `json:"opponentRuns"`
	Opponent     string    `json:"opponent"`
	Venue        string    `json:"venue"`
	Outcome      Outcome   `json:"outcome"`

	Home     Team `json:"home"`
	Away     Team `json:"away"`
	HomeRuns *int `json:"homeRuns"`
	AwayRuns *int `json:"awayRuns"`
}

// Played reports whether both run counts are known.
func (r Row) Played() bool {
	return r.TeamRuns != nil && r.OpponentRuns != nil
}

// Runs returns an int pointer, handy for fixtures and mappers.
func Runs(n int) *int {
	return &n
}
