package teststubs

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

func TestStubProviderTracksCalls(t *testing.T) {
	p := &StubProvider{Schedules: map[int][]games.RawGame{2024: {{GamePK: 1}}}}
	out, err := p.FetchSchedule(context.Background(), 121, 2024)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected schedule %v %v", out, err)
	}
	if p.ScheduleCalls.Load() != 1 || p.LastTeamID.Load() != 121 {
		t.Fatalf("expected call tracking, got calls=%d team=%d", p.ScheduleCalls.Load(), p.LastTeamID.Load())
	}

	p.ScheduleErr = ErrStub
	if _, got := p.FetchSchedule(context.Background(), 121, 2024); !errors.Is(got, ErrStub) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	p.TeamsErr = ErrStub
	if _, got := p.FetchTeams(context.Background()); !errors.Is(got, ErrStub) || p.TeamCalls.Load() != 1 {
		t.Fatalf("expected teams error passthrough, got %v", got)
	}
}

func TestStubTableStore(t *testing.T) {
	s := &StubTableStore{Seasons: map[int][]games.RawGame{2024: {{GamePK: 7}}}}
	if !s.HasGames(2024) || s.HasGames(2025) {
		t.Fatalf("unexpected HasGames results")
	}
	if _, err := s.LoadGames(2025); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	raw, err := s.LoadGames(2024)
	if err != nil || raw[0].GamePK != 7 || s.Loads != 2 {
		t.Fatalf("unexpected load %v %v loads=%d", raw, err, s.Loads)
	}
}
