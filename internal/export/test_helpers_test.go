package export

import (
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

func sampleGames() []games.RawGame {
	return []games.RawGame{
		{
			GamePK:   745444,
			GameDate: "2024-03-28T17:10:00Z",
			Status:   "Final",
			Home:     games.Team{ID: 121, Name: "New York Mets"},
			Away:     games.Team{ID: 158, Name: "Milwaukee Brewers"},
			HomeRuns: games.Runs(1),
			AwayRuns: games.Runs(3),
			Venue:    "Citi Field",
			GameType: "R",
		},
		{
			GamePK:   745445,
			GameDate: "2024-03-29T23:10:00Z",
			Status:   "Postponed",
			Home:     games.Team{ID: 121, Name: "New York Mets"},
			Away:     games.Team{ID: 158, Name: "Milwaukee Brewers, Inc"},
			Venue:    "Citi Field",
			GameType: "R",
		},
	}
}

func fixedWriter(t *testing.T, dir string) *Writer {
	t.Helper()
	w := NewWriter(dir, "mets")
	w.now = func() time.Time { return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC) }
	return w
}
