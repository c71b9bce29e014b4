package testutil

import (
	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// SampleGame returns a final game between home and away on the given RFC3339 date.
func SampleGame(pk int64, date, home, away string, homeRuns, awayRuns int) games.RawGame {
	return games.RawGame{
		GamePK:   pk,
		GameDate: date,
		Status:   "Final",
		Home:     games.Team{ID: int(pk % 1000), Name: home},
		Away:     games.Team{ID: int(pk%1000) + 1, Name: away},
		HomeRuns: games.Runs(homeRuns),
		AwayRuns: games.Runs(awayRuns),
		Venue:    home + " Park",
		GameType: "R",
	}
}

// ScheduledGame returns a game with no runs recorded yet.
func ScheduledGame(pk int64, date, home, away string) games.RawGame {
	g := SampleGame(pk, date, home, away, 0, 0)
	g.Status = "Scheduled"
	g.HomeRuns, g.AwayRuns = nil, nil
	return g
}

// SampleSeason returns a small Mets schedule covering wins, losses, a tie and
// an unplayed game across two months and both sides of the field.
func SampleSeason() []games.RawGame {
	return []games.RawGame{
		SampleGame(1, "2024-04-01T23:10:00Z", "New York Mets", "Atlanta Braves", 5, 3),
		SampleGame(2, "2024-04-02T23:10:00Z", "New York Mets", "Atlanta Braves", 1, 4),
		SampleGame(3, "2024-04-20T17:05:00Z", "Philadelphia Phillies", "New York Mets", 2, 2),
		SampleGame(4, "2024-05-03T23:10:00Z", "Miami Marlins", "New York Mets", 3, 6),
		ScheduledGame(5, "2024-05-04T23:10:00Z", "Miami Marlins", "New York Mets"),
	}
}
