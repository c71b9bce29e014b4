package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/preston-bernstein/mlb-season-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-season-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
)

// RouterConfig collects what NewRouter needs to assemble the API.
type RouterConfig struct {
	Handler     *handlers.Handler
	Admin       *handlers.AdminHandler
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewRouter registers HTTP routes and wraps them with CORS, request logging
// and panic recovery.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/games", h.Games).Methods(nethttp.MethodGet)
	r.HandleFunc("/games/{gamePk}", h.GameByPK).Methods(nethttp.MethodGet)
	r.HandleFunc("/summary", h.Summary).Methods(nethttp.MethodGet)
	r.HandleFunc("/reports/{dimension}", h.Report).Methods(nethttp.MethodGet)
	r.HandleFunc("/predict", h.Predict).Methods(nethttp.MethodGet)
	if cfg.Admin != nil {
		r.HandleFunc("/admin/refresh", cfg.Admin.Refresh).Methods(nethttp.MethodPost)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, middleware.Recovery(c.Handler(r)))
}
