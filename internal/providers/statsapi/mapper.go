package statsapi

import (
	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// mapGame keeps the upstream fields the normalizer needs.
// Runs come from the linescore only; a game without one has no runs yet.
func mapGame(g gameResponse) games.RawGame {
	raw := games.RawGame{
		GamePK:   g.GamePK,
		GameDate: g.GameDate,
		Status:   g.Status.DetailedState,
		Home:     mapTeamRef(g.Teams.Home.Team),
		Away:     mapTeamRef(g.Teams.Away.Team),
		Venue:    g.Venue.Name,
		GameType: g.GameType,
	}
	if g.Linescore != nil {
		raw.HomeRuns = copyInt(g.Linescore.Teams.Home.Runs)
		raw.AwayRuns = copyInt(g.Linescore.Teams.Away.Runs)
	}
	return raw
}

func mapTeamRef(t teamRef) games.Team {
	return games.Team{ID: t.ID, Name: t.Name}
}

func mapTeam(t teamResponse) games.TeamInfo {
	return games.TeamInfo{
		ID:           t.ID,
		Name:         t.Name,
		TeamName:     t.TeamName,
		Abbreviation: t.Abbreviation,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return games.Runs(*v)
}
