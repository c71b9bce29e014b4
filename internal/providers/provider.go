package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// ScheduleProvider fetches a team's regular schedule for one season.
// Returned games keep upstream order and carry nil runs for unplayed games.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, teamID int, season int) ([]games.RawGame, error)
}

// TeamProvider fetches the league's team listing.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]games.TeamInfo, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	TeamProvider
}

// ResolveTeamID picks the first team whose name equals name, or whose team
// name or full name contains it. Comparison ignores case.
func ResolveTeamID(teams []games.TeamInfo, name string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0, fmt.Errorf("%w: empty team name", ErrTeamNotFound)
	}
	for _, t := range teams {
		full := strings.ToLower(t.Name)
		if full == needle || strings.Contains(strings.ToLower(t.TeamName), needle) || strings.Contains(full, needle) {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
}
