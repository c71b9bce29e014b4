package games

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/dataset"
	domaingames "github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
	"github.com/preston-bernstein/mlb-season-service/internal/normalize"
	"github.com/preston-bernstein/mlb-season-service/internal/store"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// Loader assembles raw games for a set of seasons.
type Loader interface {
	Load(ctx context.Context, seasons []int) ([]domaingames.RawGame, []dataset.SeasonResult, error)
	Fetch(ctx context.Context, seasons []int) ([]domaingames.RawGame, []dataset.SeasonResult, error)
}

// RefreshResult summarizes a completed refresh.
type RefreshResult struct {
	Games       int                    `json:"games"`
	Seasons     []dataset.SeasonResult `json:"seasons"`
	RefreshedAt time.Time              `json:"refreshedAt"`
}

// Service coordinates game operations over a store filled by a Loader.
type Service struct {
	store   store.GameStore
	loader  Loader
	seasons []int
	matcher normalize.Matcher
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time

	refreshMu   sync.Mutex
	stateMu     sync.RWMutex
	lastRefresh time.Time
}

// Config wires a Service.
type Config struct {
	Store   store.GameStore
	Loader  Loader
	Seasons []int
	Matcher normalize.Matcher
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewService constructs a Service with the provided dependencies.
func NewService(cfg Config) *Service {
	return &Service{
		store:   cfg.Store,
		loader:  cfg.Loader,
		seasons: append([]int(nil), cfg.Seasons...),
		matcher: cfg.Matcher,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		now:     time.Now,
	}
}

// Seasons returns the configured seasons.
func (s *Service) Seasons() []int {
	return append([]int(nil), s.seasons...)
}

// Refresh reloads every configured season into the store. With force set,
// every season is refetched from the provider. Refreshes are serialized.
func (s *Service) Refresh(ctx context.Context, force bool) (RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	logger := logging.FromContext(ctx, s.logger)
	start := time.Now()
	load := s.loader.Load
	if force {
		load = s.loader.Fetch
	}

	raw, seasons, err := load(ctx, s.seasons)
	if err == nil {
		err = s.store.SetGames(raw)
	}
	duration := time.Since(start)
	s.metrics.RecordRefresh(duration, err)
	if err != nil {
		logging.Error(logger, "refresh failed", err, logging.FieldDurationMS, duration.Milliseconds())
		return RefreshResult{}, fmt.Errorf("refresh: %w", err)
	}

	refreshedAt := s.now().UTC()
	s.stateMu.Lock()
	s.lastRefresh = refreshedAt
	s.stateMu.Unlock()

	logging.Info(logger, "refresh complete",
		logging.FieldCount, len(raw),
		"force", force,
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	return RefreshResult{Games: len(raw), Seasons: seasons, RefreshedAt: refreshedAt}, nil
}

// Ready reports whether at least one refresh has completed.
func (s *Service) Ready() bool {
	return !s.LastRefresh().IsZero()
}

// LastRefresh returns when the store was last filled.
func (s *Service) LastRefresh() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastRefresh
}

// Games returns the stored raw games. season 0 returns every season.
func (s *Service) Games(season int) ([]domaingames.RawGame, error) {
	raw, err := s.store.ListGames()
	if err != nil {
		return nil, err
	}
	if season == 0 {
		return raw, nil
	}
	out := make([]domaingames.RawGame, 0, len(raw))
	for _, g := range raw {
		t, err := timeutil.ParseGameTime(g.GameDate)
		if err != nil {
			continue
		}
		if t.In(s.location()).Year() == season {
			out = append(out, g)
		}
	}
	return out, nil
}

// GameByPK returns a single game if present.
func (s *Service) GameByPK(gamePK int64) (domaingames.RawGame, bool, error) {
	return s.store.GetGame(gamePK)
}

// Rows normalizes the stored games from the tracked team's side.
// season 0 returns every season.
func (s *Service) Rows(season int) ([]domaingames.Row, error) {
	raw, err := s.store.ListGames()
	if err != nil {
		return nil, err
	}
	rows, err := normalize.Games(raw, s.matcher)
	if err != nil {
		return nil, err
	}
	if season == 0 {
		return rows, nil
	}
	out := make([]domaingames.Row, 0, len(rows))
	for _, r := range rows {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) location() *time.Location {
	if s.matcher.Location != nil {
		return s.matcher.Location
	}
	return time.UTC
}
