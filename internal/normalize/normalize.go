// Package normalize turns raw schedule records into rows seen from the tracked team's side.
package normalize

import (
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// Matcher identifies the tracked team by a substring of its full name.
// Matching is case-sensitive unless FoldCase is set. Dates are converted to
// Location before season and month are derived; nil means UTC.
type Matcher struct {
	Substring string
	FoldCase  bool
	Location  *time.Location
}

func (m Matcher) contains(name string) bool {
	if m.FoldCase {
		return strings.Contains(strings.ToLower(name), strings.ToLower(m.Substring))
	}
	return strings.Contains(name, m.Substring)
}

func (m Matcher) location() *time.Location {
	if m.Location == nil {
		return time.UTC
	}
	return m.Location
}

// Games normalizes every record in order. The first failing record aborts the run.
func Games(raw []games.RawGame, m Matcher) ([]games.Row, error) {
	rows := make([]games.Row, 0, len(raw))
	for i, g := range raw {
		row, err := normalizeAt(i, g, m)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Game normalizes a single record.
func Game(g games.RawGame, m Matcher) (games.Row, error) {
	return normalizeAt(0, g, m)
}

func normalizeAt(index int, g games.RawGame, m Matcher) (games.Row, error) {
	if g.GamePK == 0 {
		return games.Row{}, &MalformedRecordError{Index: index, Field: "gamePk"}
	}
	if strings.TrimSpace(g.GameDate) == "" {
		return games.Row{}, &MalformedRecordError{Index: index, GamePK: g.GamePK, Field: "gameDate"}
	}
	ts, err := timeutil.ParseGameTime(strings.TrimSpace(g.GameDate))
	if err != nil {
		return games.Row{}, &MalformedRecordError{Index: index, GamePK: g.GamePK, Field: "gameDate", Value: g.GameDate}
	}

	homeHit := m.contains(g.Home.Name)
	awayHit := m.contains(g.Away.Name)
	if homeHit == awayHit {
		return games.Row{}, &AmbiguousTeamMatchError{
			Index:   index,
			GamePK:  g.GamePK,
			Matcher: m.Substring,
			Home:    g.Home.Name,
			Away:    g.Away.Name,
			Both:    homeHit,
		}
	}

	date := ts.In(m.location())
	row := games.Row{
		GamePK:   g.GamePK,
		Date:     date,
		Season:   date.Year(),
		Status:   g.Status,
		GameType: g.GameType,
		IsHome:   homeHit,
		Venue:    g.Venue,
		Home:     g.Home,
		Away:     g.Away,
		HomeRuns: g.HomeRuns,
		AwayRuns: g.AwayRuns,
	}
	if row.IsHome {
		row.TeamRuns, row.OpponentRuns, row.Opponent = g.HomeRuns, g.AwayRuns, g.Away.Name
	} else {
		row.TeamRuns, row.OpponentRuns, row.Opponent = g.AwayRuns, g.HomeRuns, g.Home.Name
	}
	row.Outcome = games.OutcomeFor(row.TeamRuns, row.OpponentRuns)
	return row, nil
}
