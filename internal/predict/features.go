// Package predict fits and serves a small logistic win model over a team's
// game history.
package predict

import (
	"sort"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// FeatureNames lists model inputs in weight order, after the bias term.
var FeatureNames = []string{"is_home", "last_result", "month"}

// Features are the model inputs for one game.
type Features struct {
	IsHome     bool `json:"isHome"`
	LastResult bool `json:"lastResult"` // previous game was a win
	Month      int  `json:"month"`
}

// Sample is a labelled feature row.
type Sample struct {
	Features
	Win bool `json:"win"`
}

// vector returns the bias-prefixed input. Month is scaled into (0,1] so a
// single learning rate suits every weight.
func (f Features) vector() []float64 {
	return []float64{1, boolFloat(f.IsHome), boolFloat(f.LastResult), float64(f.Month) / 12}
}

// Samples builds training rows from normalized games. Unplayed games are
// skipped; the rest are ordered by date and each carries the previous row's
// result. The first game's LastResult is false. Ties count as non-wins.
func Samples(rows []games.Row) []Sample {
	played := make([]games.Row, 0, len(rows))
	for _, r := range rows {
		if r.Played() {
			played = append(played, r)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Date.Before(played[j].Date)
	})

	out := make([]Sample, 0, len(played))
	last := false
	for _, r := range played {
		win := *r.TeamRuns > *r.OpponentRuns
		out = append(out, Sample{
			Features: Features{IsHome: r.IsHome, LastResult: last, Month: int(r.Date.Month())},
			Win:      win,
		})
		last = win
	}
	return out
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
