package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	defaultProviderName  = "provider"
)

// retryingProvider wraps a DataProvider with exponential backoff and per-attempt metrics.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
// Non-retryable upstream statuses fail on the first attempt.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, rec *metrics.Recorder, name string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if name == "" {
		name = defaultProviderName
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			return b
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, teamID int, season int) ([]games.RawGame, error) {
	return withRetry(ctx, r, "schedule", func(ctx context.Context) ([]games.RawGame, error) {
		return r.inner.FetchSchedule(ctx, teamID, season)
	}, slog.Int(logging.FieldTeamID, teamID), slog.Int(logging.FieldSeason, season))
}

func (r *retryingProvider) FetchTeams(ctx context.Context) ([]games.TeamInfo, error) {
	return withRetry(ctx, r, "teams", r.inner.FetchTeams)
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error), attrs ...any) (T, error) {
	var (
		result  T
		attempt int
	)
	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)

	operation := func() error {
		attempt++
		start := time.Now()
		out, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err != nil {
			if statusErr, ok := AsStatusError(err); ok && !statusErr.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		result = out
		return nil
	}
	notify := func(err error, delay time.Duration) {
		r.log(ctx, slog.LevelWarn, "provider fetch retry",
			append([]any{"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, "err", err}, attrs...)...)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		r.log(ctx, slog.LevelWarn, "provider fetch failed",
			append([]any{"op", op, "attempts", attempt, "err", err}, attrs...)...)
		var zero T
		return zero, err
	}
	return result, nil
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, append(args, slog.String(logging.FieldProvider, r.providerName))...)
}
