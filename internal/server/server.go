package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	appgames "github.com/preston-bernstein/mlb-season-service/internal/app/games"
	"github.com/preston-bernstein/mlb-season-service/internal/app/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/config"
	httpserver "github.com/preston-bernstein/mlb-season-service/internal/http"
	"github.com/preston-bernstein/mlb-season-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
	"github.com/preston-bernstein/mlb-season-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          store.GameStore
	gamesService   *appgames.Service
	reportsService *reports.Service
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New constructs a server with the configured provider, store and services.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	gameStore, err := buildStore(cfg)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, fmt.Errorf("open game store: %w", err)
	}
	gameSvc, reportSvc := buildServices(cfg, gameStore, provider, recorder, logger)
	model := loadModel(cfg.Data.ModelPath, logger)
	httpSrv := buildHTTPServer(cfg, gameSvc, reportSvc, model, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          gameStore,
		gamesService:   gameSvc,
		reportsService: reportSvc,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		metricsStop:    metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *appgames.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, gameSvc *appgames.Service, reportSvc *reports.Service, model handlers.Predictor, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(gameSvc, reportSvc, model, logger)
	var admin *handlers.AdminHandler
	// The admin route is only mounted when a token is configured.
	if cfg.HTTP.AdminToken != "" {
		admin = handlers.NewAdminHandler(gameSvc, cfg.HTTP.AdminToken, logger)
	}
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:     handler,
		Admin:       admin,
		CORSOrigins: cfg.HTTP.CORSAllowedOrigins,
		Logger:      logger,
		Metrics:     recorder,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the listeners, loads the dataset once, then waits for context
// cancellation to shut down gracefully. A failed initial load leaves the
// server up but not ready.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.initialRefresh(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) initialRefresh(ctx context.Context) {
	if s.gamesService == nil {
		return
	}
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	if _, err := s.gamesService.Refresh(refreshCtx, false); err != nil {
		logging.Warn(s.logger, "initial refresh failed, serving without data", "err", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Games exposes the games service (useful for tests).
func (s *Server) Games() *appgames.Service {
	return s.gamesService
}
