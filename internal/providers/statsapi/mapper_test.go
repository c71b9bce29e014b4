package statsapi

import "testing"

func TestMapGameTakesRunsFromLinescore(t *testing.T) {
	home, away := 4, 2
	resp := gameResponse{
		GamePK:   1,
		GameDate: "2024-05-01T23:10:00Z",
		Status:   statusResponse{DetailedState: "Final"},
		Teams: gameTeamsResponse{
			Home: sideResponse{Team: teamRef{ID: 121, Name: "New York Mets"}},
			Away: sideResponse{Team: teamRef{ID: 144, Name: "Atlanta Braves"}},
		},
		Venue: venueResponse{Name: "Citi Field"},
	}

	game := mapGame(resp)
	if game.HomeRuns != nil || game.AwayRuns != nil {
		t.Fatalf("expected nil runs without a linescore, got %v-%v", game.HomeRuns, game.AwayRuns)
	}

	resp.Linescore = &linescoreResponse{}
	resp.Linescore.Teams.Home.Runs = &home
	resp.Linescore.Teams.Away.Runs = &away
	game = mapGame(resp)
	if game.HomeRuns == nil || *game.HomeRuns != 4 || *game.AwayRuns != 2 {
		t.Fatalf("unexpected runs %v-%v", game.HomeRuns, game.AwayRuns)
	}
	home = 9
	if *game.HomeRuns != 4 {
		t.Fatalf("expected mapped runs to be copied")
	}
}

func TestMapTeam(t *testing.T) {
	got := mapTeam(teamResponse{ID: 121, Name: "New York Mets", TeamName: "Mets", Abbreviation: "NYM"})
	if got.ID != 121 || got.Name != "New York Mets" || got.TeamName != "Mets" || got.Abbreviation != "NYM" {
		t.Fatalf("unexpected team %+v", got)
	}
}
