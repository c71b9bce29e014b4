// Package dataset assembles the multi-season game list from exported tables
// and the upstream provider.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/export"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
)

// Source records where a season's games came from.
type Source string

const (
	SourceTable    Source = "table"
	SourceProvider Source = "provider"
)

// SeasonResult describes one season of an assembly run.
type SeasonResult struct {
	Season   int    `json:"season"`
	Source   Source `json:"source"`
	Games    int    `json:"games"`
	Path     string `json:"path,omitempty"`
	Duration time.Duration
}

// Assembler loads seasons from exported tables, fetching and writing any that are missing.
type Assembler struct {
	provider providers.DataProvider
	tables   export.Store
	writer   *export.Writer
	teamName string
	logger   *slog.Logger

	mu     sync.Mutex
	teamID int
}

// New constructs an Assembler. tables and writer may be nil, in which case
// every season is fetched and nothing is written.
func New(provider providers.DataProvider, tables export.Store, writer *export.Writer, teamName string, logger *slog.Logger) *Assembler {
	return &Assembler{
		provider: provider,
		tables:   tables,
		writer:   writer,
		teamName: teamName,
		logger:   logger,
	}
}

// TeamID resolves the tracked team's upstream id once and caches it.
func (a *Assembler) TeamID(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.teamID != 0 {
		return a.teamID, nil
	}
	if a.provider == nil {
		return 0, fmt.Errorf("resolve team: %w", providers.ErrProviderUnavailable)
	}
	teams, err := a.provider.FetchTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch teams: %w", err)
	}
	id, err := providers.ResolveTeamID(teams, a.teamName)
	if err != nil {
		return 0, err
	}
	a.teamID = id
	logging.Info(logging.FromContext(ctx, a.logger), "resolved team", "team", a.teamName, logging.FieldTeamID, id)
	return id, nil
}

// Load returns the merged games for seasons, reading existing tables and
// fetching the rest.
func (a *Assembler) Load(ctx context.Context, seasons []int) ([]games.RawGame, []SeasonResult, error) {
	return a.assemble(ctx, seasons, false)
}

// Fetch refetches every season from the provider and overwrites the tables.
func (a *Assembler) Fetch(ctx context.Context, seasons []int) ([]games.RawGame, []SeasonResult, error) {
	return a.assemble(ctx, seasons, true)
}

func (a *Assembler) assemble(ctx context.Context, seasons []int, force bool) ([]games.RawGame, []SeasonResult, error) {
	logger := logging.FromContext(ctx, a.logger)
	batches := make([][]games.RawGame, 0, len(seasons))
	results := make([]SeasonResult, 0, len(seasons))

	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}
		start := time.Now()
		raw, result, err := a.season(ctx, season, force)
		if err != nil {
			return nil, results, fmt.Errorf("season %d: %w", season, err)
		}
		result.Duration = time.Since(start)
		logging.Info(logger, "season assembled",
			logging.FieldSeason, season,
			"source", result.Source,
			logging.FieldCount, result.Games,
			logging.FieldDurationMS, result.Duration.Milliseconds(),
		)
		batches = append(batches, raw)
		results = append(results, result)
	}
	return Merge(batches...), results, nil
}

func (a *Assembler) season(ctx context.Context, season int, force bool) ([]games.RawGame, SeasonResult, error) {
	result := SeasonResult{Season: season}
	if !force && a.tables != nil && a.tables.HasGames(season) {
		raw, err := a.tables.LoadGames(season)
		if err != nil {
			return nil, result, err
		}
		result.Source = SourceTable
		result.Games = len(raw)
		logging.Debug(logging.FromContext(ctx, a.logger), "games table hit", logging.FieldSeason, season)
		return raw, result, nil
	}

	teamID, err := a.TeamID(ctx)
	if err != nil {
		return nil, result, err
	}
	raw, err := a.provider.FetchSchedule(ctx, teamID, season)
	if err != nil {
		return nil, result, fmt.Errorf("fetch schedule: %w", err)
	}
	result.Source = SourceProvider
	result.Games = len(raw)

	if a.writer != nil {
		path, err := a.writer.WriteGames(season, raw)
		if err != nil {
			return nil, result, fmt.Errorf("write games table: %w", err)
		}
		result.Path = path
	}
	return raw, result, nil
}

// Merge concatenates batches in order, keeping one game per gamePk at the
// position it first appeared. Postponed games come back under the same gamePk
// on their makeup date, so a later copy with both run counts replaces an
// earlier copy without them. Otherwise the first copy wins.
func Merge(batches ...[]games.RawGame) []games.RawGame {
	seen := make(map[int64]int)
	out := make([]games.RawGame, 0)
	for _, batch := range batches {
		for _, g := range batch {
			i, dup := seen[g.GamePK]
			if !dup {
				seen[g.GamePK] = len(out)
				out = append(out, g)
				continue
			}
			if !hasRuns(out[i]) && hasRuns(g) {
				out[i] = g
			}
		}
	}
	return out
}

func hasRuns(g games.RawGame) bool {
	return g.HomeRuns != nil && g.AwayRuns != nil
}
