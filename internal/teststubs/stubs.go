package teststubs

import (
	"context"
	"errors"
	"io/fs"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	Schedules     map[int][]games.RawGame // keyed by season
	Teams         []games.TeamInfo
	ScheduleErr   error
	TeamsErr      error
	ScheduleCalls atomic.Int32
	TeamCalls     atomic.Int32
	LastTeamID    atomic.Int32
}

// FetchSchedule returns the configured season while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, teamID int, season int) ([]games.RawGame, error) {
	_ = ctx
	s.ScheduleCalls.Add(1)
	s.LastTeamID.Store(int32(teamID))
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}
	return s.Schedules[season], nil
}

// FetchTeams returns the configured teams while tracking calls.
func (s *StubProvider) FetchTeams(ctx context.Context) ([]games.TeamInfo, error) {
	_ = ctx
	s.TeamCalls.Add(1)
	if s.TeamsErr != nil {
		return nil, s.TeamsErr
	}
	return s.Teams, nil
}

// StubTableStore is a test double for export.Store.
type StubTableStore struct {
	Seasons map[int][]games.RawGame
	LoadErr error
	Loads   int
}

// LoadGames returns the season's games if present.
func (s *StubTableStore) LoadGames(season int) ([]games.RawGame, error) {
	s.Loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	raw, ok := s.Seasons[season]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return raw, nil
}

// HasGames reports whether the season is present.
func (s *StubTableStore) HasGames(season int) bool {
	_, ok := s.Seasons[season]
	return ok
}

// ErrStub is a generic failure for tests that only care that an error surfaced.
var ErrStub = errors.New("stub failure")
