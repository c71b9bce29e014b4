package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-season-service/internal/aggregate"
	"github.com/preston-bernstein/mlb-season-service/internal/app/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/normalize"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeDomainError maps service errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error(logger, "request failed", err)
		msg = "internal error"
	}
	writeError(w, r, status, msg, logger)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, reports.ErrInvalidQuery), errors.Is(err, aggregate.ErrUnknownDimension):
		return http.StatusBadRequest
	case errors.Is(err, normalize.ErrMalformedRecord), errors.Is(err, normalize.ErrAmbiguousTeamMatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, providers.ErrProviderUnavailable), errors.Is(err, providers.ErrTeamNotFound):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
