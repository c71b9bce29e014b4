package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-season-service/internal/config"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
	"github.com/preston-bernstein/mlb-season-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-season-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderStatsAPI, "":
		return statsapi.NewClient(statsapi.Config{
			BaseURL:    cfg.StatsAPI.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.StatsAPI.Timeout},
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
