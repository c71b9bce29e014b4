// Package aggregate groups normalized rows into win/loss summaries.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// ErrUnknownDimension is returned for a grouping the aggregator does not support.
var ErrUnknownDimension = errors.New("unknown report dimension")

// Options controls a single aggregation run.
// Groups with fewer than MinDecidedGames wins plus losses are dropped.
// PerSeason splits every group by season.
type Options struct {
	Dimension       reports.Dimension
	MinDecidedGames int
	PerSeason       bool
}

// Aggregate groups rows by the given dimension across all seasons.
func Aggregate(rows []games.Row, by reports.Dimension, minGames int) ([]reports.Row, error) {
	return Run(rows, Options{Dimension: by, MinDecidedGames: minGames})
}

// Run groups rows according to opts. Output is ordered by season, then key.
func Run(rows []games.Row, opts Options) ([]reports.Row, error) {
	keyFn, err := keyFor(opts.Dimension)
	if err != nil {
		return nil, err
	}

	type groupID struct {
		season int
		key    string
	}
	groups := make(map[groupID]*reports.Row)
	for _, row := range rows {
		id := groupID{key: keyFn(row)}
		if opts.PerSeason {
			id.season = row.Season
		}
		acc, ok := groups[id]
		if !ok {
			acc = &reports.Row{Dimension: opts.Dimension, Key: id.key, Season: id.season}
			groups[id] = acc
		}
		add(acc, row)
	}

	out := make([]reports.Row, 0, len(groups))
	for _, acc := range groups {
		if acc.DecidedGames < opts.MinDecidedGames {
			continue
		}
		acc.WinPct = winPct(acc.Wins, acc.DecidedGames)
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func add(acc *reports.Row, row games.Row) {
	acc.TotalGames++
	switch row.Outcome {
	case games.OutcomeWin:
		acc.Wins++
		acc.DecidedGames++
	case games.OutcomeLoss:
		acc.Losses++
		acc.DecidedGames++
	case games.OutcomeTie:
		acc.Ties++
	default:
		acc.Unknown++
	}
	if row.Outcome.Decided() {
		acc.RunsScored += *row.TeamRuns
		acc.RunsAllowed += *row.OpponentRuns
	}
}

func winPct(wins, decided int) *float64 {
	if decided == 0 {
		return nil
	}
	pct := float64(wins) / float64(decided)
	return &pct
}

func keyFor(d reports.Dimension) (func(games.Row) string, error) {
	switch d {
	case reports.DimensionMonth:
		return func(r games.Row) string { return timeutil.MonthKey(r.Date) }, nil
	case reports.DimensionOpponent:
		return func(r games.Row) string { return r.Opponent }, nil
	case reports.DimensionHomeAway:
		return func(r games.Row) string {
			if r.IsHome {
				return "home"
			}
			return "away"
		}, nil
	case reports.DimensionVenue:
		return func(r games.Row) string {
			if r.Venue == "" {
				return reports.UnknownVenue
			}
			return r.Venue
		}, nil
	case reports.DimensionSeason:
		return func(r games.Row) string { return strconv.Itoa(r.Season) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
}
