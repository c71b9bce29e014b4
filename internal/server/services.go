package server

import (
	"errors"
	"io/fs"
	"log/slog"

	appgames "github.com/preston-bernstein/mlb-season-service/internal/app/games"
	"github.com/preston-bernstein/mlb-season-service/internal/app/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/config"
	"github.com/preston-bernstein/mlb-season-service/internal/dataset"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/export"
	"github.com/preston-bernstein/mlb-season-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
	"github.com/preston-bernstein/mlb-season-service/internal/normalize"
	"github.com/preston-bernstein/mlb-season-service/internal/predict"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
	"github.com/preston-bernstein/mlb-season-service/internal/store"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

func buildStore(cfg config.Config) (store.GameStore, error) {
	if cfg.Store.Driver == config.StoreSQLite {
		return store.OpenSQLite(cfg.Store.SQLitePath)
	}
	return store.NewMemoryStore(), nil
}

// Matcher derives the tracked-team matcher from configuration.
func Matcher(cfg config.Config) normalize.Matcher {
	return normalize.Matcher{
		Substring: cfg.Team.Matcher,
		FoldCase:  cfg.Team.FoldCase,
		Location:  timeutil.ResolveLocation(cfg.Team.Timezone),
	}
}

// Thresholds maps configured minimum decided games onto report dimensions.
func Thresholds(cfg config.Config) map[domainreports.Dimension]int {
	return map[domainreports.Dimension]int{
		domainreports.DimensionOpponent: cfg.Reports.MinGamesOpponent,
		domainreports.DimensionVenue:    cfg.Reports.MinGamesVenue,
		domainreports.DimensionMonth:    cfg.Reports.MinGamesMonth,
		domainreports.DimensionHomeAway: cfg.Reports.MinGamesHomeAway,
	}
}

// NewAssembler wires the dataset assembler over the export directory.
func NewAssembler(cfg config.Config, provider providers.DataProvider, logger *slog.Logger) *dataset.Assembler {
	tables := export.NewFSStore(cfg.Data.Dir, cfg.Data.Prefix)
	writer := export.NewWriter(cfg.Data.Dir, cfg.Data.Prefix)
	return dataset.New(provider, tables, writer, cfg.Team.Name, logger)
}

func buildServices(cfg config.Config, gameStore store.GameStore, provider providers.DataProvider, recorder *metrics.Recorder, logger *slog.Logger) (*appgames.Service, *reports.Service) {
	gameSvc := appgames.NewService(appgames.Config{
		Store:   gameStore,
		Loader:  NewAssembler(cfg, provider, logger),
		Seasons: cfg.Seasons,
		Matcher: Matcher(cfg),
		Metrics: recorder,
		Logger:  logger,
	})
	reportSvc := reports.NewService(gameSvc, Thresholds(cfg), recorder, logger)
	return gameSvc, reportSvc
}

// loadModel returns nil when no trained model is available; /predict then answers 503.
func loadModel(path string, logger *slog.Logger) handlers.Predictor {
	if path == "" {
		return nil
	}
	m, err := predict.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if logger != nil {
				logger.Info("no trained model found", slog.String("path", path))
			}
		} else if logger != nil {
			logger.Warn("failed to load model", slog.String("path", path), slog.Any("err", err))
		}
		return nil
	}
	return m
}
