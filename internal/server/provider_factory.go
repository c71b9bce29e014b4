package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-season-service/internal/config"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
)

// providerFactory assembles the provider with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.StatsAPI.RetryAttempts, 0)
}

// NewProvider builds the configured provider wrapped with retries, for callers outside the server.
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.DataProvider {
	return newProviderFactory(logger, recorder).build(cfg)
}
