package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/mlb-season-service/internal/app/reports"
	domaingames "github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/predict"
)

// GameSource exposes the stored schedule.
type GameSource interface {
	Games(season int) ([]domaingames.RawGame, error)
	GameByPK(gamePK int64) (domaingames.RawGame, bool, error)
	Ready() bool
	LastRefresh() time.Time
}

// ReportSource builds grouped reports.
type ReportSource interface {
	Report(ctx context.Context, q reports.Query) (domainreports.Report, error)
	Summary(ctx context.Context) (domainreports.Report, error)
}

// Predictor scores a single game.
type Predictor interface {
	Predict(f predict.Features) float64
}

// Handler wires HTTP routes to the domain services.
type Handler struct {
	games   GameSource
	reports ReportSource
	model   Predictor
	logger  *slog.Logger
}

// NewHandler constructs a Handler. model may be nil when no trained model is available.
func NewHandler(games GameSource, reports ReportSource, model Predictor, logger *slog.Logger) *Handler {
	return &Handler{
		games:   games,
		reports: reports,
		model:   model,
		logger:  logger,
	}
}

// GamesResponse lists the stored games for a season.
type GamesResponse struct {
	Season int                   `json:"season,omitempty"`
	Count  int                   `json:"count"`
	Games  []domaingames.RawGame `json:"games"`
}

// PredictResponse carries a win probability and the inputs that produced it.
type PredictResponse struct {
	Features       predict.Features `json:"features"`
	WinProbability float64          `json:"winProbability"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the dataset has been loaded at least once.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.games == nil || !h.games.Ready() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status":      "ready",
		"lastRefresh": h.games.LastRefresh(),
	}, h.logger)
}

// Games returns stored games, optionally filtered by ?season=.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	season, ok := intParam(w, r, "season", 1, h.logger)
	if !ok {
		return
	}
	list, err := h.games.Games(season)
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, GamesResponse{Season: season, Count: len(list), Games: list}, h.logger)
}

// GameByPK returns one stored game for the {gamePk} path variable.
func (h *Handler) GameByPK(w nethttp.ResponseWriter, r *nethttp.Request) {
	gamePK, err := strconv.ParseInt(mux.Vars(r)["gamePk"], 10, 64)
	if err != nil || gamePK <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid gamePk", h.logger)
		return
	}
	game, ok, err := h.games.GameByPK(gamePK)
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// Summary returns per-season totals.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	report, err := h.reports.Summary(r.Context())
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

// Report returns a grouped report for the {dimension} path variable.
func (h *Handler) Report(w nethttp.ResponseWriter, r *nethttp.Request) {
	dimension, known := domainreports.ParseDimension(mux.Vars(r)["dimension"])
	if !known {
		writeError(w, r, nethttp.StatusNotFound, "unknown report dimension", h.logger)
		return
	}

	q := reports.Query{Dimension: dimension}
	var ok bool
	if q.Season, ok = intParam(w, r, "season", 1, h.logger); !ok {
		return
	}
	if q.Limit, ok = intParam(w, r, "limit", 0, h.logger); !ok {
		return
	}
	if raw := r.URL.Query().Get("min_games"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, nethttp.StatusBadRequest, "min_games must be a non-negative integer", h.logger)
			return
		}
		q.MinGames = &n
	}
	if q.PerSeason, ok = boolParam(w, r, "per_season", h.logger); !ok {
		return
	}
	order, valid := reports.ParseOrder(strings.ToLower(r.URL.Query().Get("order")))
	if !valid {
		writeError(w, r, nethttp.StatusBadRequest, "order must be one of key, best, worst", h.logger)
		return
	}
	q.Order = order

	report, err := h.reports.Report(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

// Predict scores a hypothetical game from ?is_home=&last_result=&month=.
func (h *Handler) Predict(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.model == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "model not loaded", h.logger)
		return
	}
	isHome, ok := boolParam(w, r, "is_home", h.logger)
	if !ok {
		return
	}
	lastResult, ok := boolParam(w, r, "last_result", h.logger)
	if !ok {
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, r, nethttp.StatusBadRequest, "month must be between 1 and 12", h.logger)
		return
	}

	f := predict.Features{IsHome: isHome, LastResult: lastResult, Month: month}
	writeJSON(w, nethttp.StatusOK, PredictResponse{Features: f, WinProbability: h.model.Predict(f)}, h.logger)
}

// NotFound renders unknown routes as JSON.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders method mismatches as JSON.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// intParam reads an optional integer query parameter. Absent means 0.
func intParam(w nethttp.ResponseWriter, r *nethttp.Request, name string, minVal int, logger *slog.Logger) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minVal {
		writeError(w, r, nethttp.StatusBadRequest, "invalid "+name, logger)
		return 0, false
	}
	return n, true
}

// boolParam reads an optional boolean query parameter. Absent means false.
func boolParam(w nethttp.ResponseWriter, r *nethttp.Request, name string, logger *slog.Logger) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid "+name, logger)
		return false, false
	}
	return b, true
}
