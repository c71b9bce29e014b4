package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"

	appgames "github.com/preston-bernstein/mlb-season-service/internal/app/games"
	"github.com/preston-bernstein/mlb-season-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
)

// Refresher reloads the dataset.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (appgames.RefreshResult, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables admin routes.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh reloads every configured season. ?force=true refetches from the
// provider instead of reading exported tables.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid force", logger)
			return
		}
		force = parsed
	}

	result, err := h.refresher.Refresh(r.Context(), force)
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Bool("force", force), slog.Any("err", err))
		writeDomainError(w, r, err, logger)
		return
	}

	logging.Info(logger, "admin refresh complete",
		slog.Bool("force", force),
		slog.Int(logging.FieldCount, result.Games),
	)
	writeJSON(w, http.StatusOK, result, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
