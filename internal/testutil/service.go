package testutil

import (
	"context"

	appgames "github.com/preston-bernstein/mlb-season-service/internal/app/games"
	"github.com/preston-bernstein/mlb-season-service/internal/dataset"
	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/normalize"
	"github.com/preston-bernstein/mlb-season-service/internal/store"
)

// StaticLoader hands back the same games for every load.
type StaticLoader struct {
	Games []games.RawGame
	Err   error
}

func (l StaticLoader) Load(ctx context.Context, seasons []int) ([]games.RawGame, []dataset.SeasonResult, error) {
	_ = ctx
	if l.Err != nil {
		return nil, nil, l.Err
	}
	results := make([]dataset.SeasonResult, 0, len(seasons))
	for _, s := range seasons {
		results = append(results, dataset.SeasonResult{Season: s, Source: dataset.SourceTable})
	}
	return l.Games, results, nil
}

func (l StaticLoader) Fetch(ctx context.Context, seasons []int) ([]games.RawGame, []dataset.SeasonResult, error) {
	return l.Load(ctx, seasons)
}

// MetsMatcher tracks the Mets with case-sensitive matching in UTC.
var MetsMatcher = normalize.Matcher{Substring: "Mets"}

// NewServiceWithGames builds a games service backed by an in-memory store
// preloaded with raw. The service is not marked ready until Refresh runs.
func NewServiceWithGames(raw []games.RawGame) *appgames.Service {
	ms := store.NewMemoryStore()
	if len(raw) > 0 {
		_ = ms.SetGames(raw)
	}
	return appgames.NewService(appgames.Config{
		Store:   ms,
		Loader:  StaticLoader{Games: raw},
		Seasons: []int{2024},
		Matcher: MetsMatcher,
	})
}
