package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/aggregate"
	domaingames "github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
)

// Order controls how report rows are sorted.
type Order string

const (
	OrderKey   Order = "key"
	OrderBest  Order = "best"
	OrderWorst Order = "worst"
)

// ParseOrder maps a user supplied order; empty means OrderKey.
func ParseOrder(raw string) (Order, bool) {
	switch Order(raw) {
	case "", OrderKey:
		return OrderKey, true
	case OrderBest, OrderWorst:
		return Order(raw), true
	default:
		return "", false
	}
}

// ErrInvalidQuery is returned for report queries that cannot be answered.
var ErrInvalidQuery = errors.New("invalid report query")

// RowSource supplies normalized rows. season 0 means every season.
type RowSource interface {
	Rows(season int) ([]domaingames.Row, error)
}

// Query selects and shapes one report. A nil MinGames uses the dimension default.
type Query struct {
	Dimension domainreports.Dimension
	Season    int
	MinGames  *int
	PerSeason bool
	Order     Order
	Limit     int
}

// DefaultThresholds hides opponents met fewer than three decided times.
func DefaultThresholds() map[domainreports.Dimension]int {
	return map[domainreports.Dimension]int{
		domainreports.DimensionOpponent: 3,
	}
}

// Service builds grouped reports over a RowSource.
type Service struct {
	rows       RowSource
	thresholds map[domainreports.Dimension]int
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

// NewService constructs a report Service. A nil thresholds map uses DefaultThresholds.
func NewService(rows RowSource, thresholds map[domainreports.Dimension]int, rec *metrics.Recorder, logger *slog.Logger) *Service {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	copied := make(map[domainreports.Dimension]int, len(thresholds))
	for k, v := range thresholds {
		copied[k] = v
	}
	return &Service{rows: rows, thresholds: copied, metrics: rec, logger: logger}
}

// Threshold returns the default minimum decided games for a dimension.
func (s *Service) Threshold(d domainreports.Dimension) int {
	return s.thresholds[d]
}

// Report aggregates rows along q.Dimension.
func (s *Service) Report(ctx context.Context, q Query) (domainreports.Report, error) {
	start := time.Now()
	report, err := s.build(q)
	s.metrics.RecordReport(string(q.Dimension), time.Since(start), err)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "report failed",
			logging.FieldDimension, string(q.Dimension), logging.FieldSeason, q.Season, "err", err)
		return domainreports.Report{}, err
	}
	return report, nil
}

// Summary reports games, wins, losses, runs and win percentage per season.
func (s *Service) Summary(ctx context.Context) (domainreports.Report, error) {
	zero := 0
	return s.Report(ctx, Query{Dimension: domainreports.DimensionSeason, MinGames: &zero})
}

func (s *Service) build(q Query) (domainreports.Report, error) {
	order, ok := ParseOrder(string(q.Order))
	if !ok {
		return domainreports.Report{}, fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, q.Order)
	}
	if q.Limit < 0 {
		return domainreports.Report{}, fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	if _, known := domainreports.ParseDimension(string(q.Dimension)); !known {
		return domainreports.Report{}, fmt.Errorf("%w: %q", aggregate.ErrUnknownDimension, q.Dimension)
	}

	minGames := s.thresholds[q.Dimension]
	if q.MinGames != nil {
		minGames = *q.MinGames
	}
	if minGames < 0 {
		minGames = 0
	}

	rows, err := s.rows.Rows(q.Season)
	if err != nil {
		return domainreports.Report{}, err
	}
	grouped, err := aggregate.Run(rows, aggregate.Options{
		Dimension:       q.Dimension,
		MinDecidedGames: minGames,
		PerSeason:       q.PerSeason,
	})
	if err != nil {
		return domainreports.Report{}, err
	}

	sortRows(grouped, order)
	if q.Limit > 0 && len(grouped) > q.Limit {
		grouped = grouped[:q.Limit]
	}
	return domainreports.Report{Dimension: q.Dimension, MinGames: minGames, Rows: grouped}, nil
}

// sortRows reorders rows by win percentage; groups without one always sort last.
// OrderKey keeps the aggregator's season/key order.
func sortRows(rows []domainreports.Row, order Order) {
	if order == OrderKey {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].WinPct, rows[j].WinPct
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		case *a == *b:
			return rows[i].DecidedGames > rows[j].DecidedGames
		case order == OrderBest:
			return *a > *b
		default:
			return *a < *b
		}
	})
}
