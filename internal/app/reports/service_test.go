package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/mlb-season-service/internal/aggregate"
	domaingames "github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
	"github.com/preston-bernstein/mlb-season-service/internal/testutil"
)

type stubRows struct {
	rows   []domaingames.Row
	err    error
	season int
}

func (s *stubRows) Rows(season int) ([]domaingames.Row, error) {
	s.season = season
	return s.rows, s.err
}

func row(opponent string, season int, team, opp *int) domaingames.Row {
	return domaingames.Row{
		GamePK:       1,
		Date:         testutil.GameTime("2024-05-01T23:10:00Z"),
		Season:       season,
		Opponent:     opponent,
		TeamRuns:     team,
		OpponentRuns: opp,
		Outcome:      domaingames.OutcomeFor(team, opp),
	}
}

func win(opponent string) domaingames.Row {
	return row(opponent, 2024, domaingames.Runs(5), domaingames.Runs(1))
}

func loss(opponent string) domaingames.Row {
	return row(opponent, 2024, domaingames.Runs(1), domaingames.Runs(5))
}

func sampleRows() []domaingames.Row {
	return []domaingames.Row{
		win("Braves"), win("Braves"), loss("Braves"),
		loss("Phillies"), loss("Phillies"), loss("Phillies"), win("Phillies"),
		win("Marlins"), win("Marlins"), win("Marlins"),
		win("Nationals"),
		row("Rays", 2024, domaingames.Runs(2), domaingames.Runs(2)),
	}
}

func intPtr(v int) *int { return &v }

func keys(rows []domainreports.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

func TestReportUsesOpponentDefaultThreshold(t *testing.T) {
	rec := metrics.NewRecorder()
	svc := NewService(&stubRows{rows: sampleRows()}, nil, rec, nil)

	report, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionOpponent})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.MinGames != 3 {
		t.Fatalf("expected default threshold 3, got %d", report.MinGames)
	}
	got := keys(report.Rows)
	if len(got) != 3 || got[0] != "Braves" || got[1] != "Marlins" || got[2] != "Phillies" {
		t.Fatalf("unexpected keys %v", got)
	}
	if rec.ReportRuns("opponent") != 1 {
		t.Fatalf("expected report metric")
	}
}

func TestReportExplicitThresholdOverridesDefault(t *testing.T) {
	svc := NewService(&stubRows{rows: sampleRows()}, nil, nil, nil)
	report, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionOpponent, MinGames: intPtr(0)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Rows) != 5 {
		t.Fatalf("expected all five opponents, got %v", keys(report.Rows))
	}
}

func TestReportOrdering(t *testing.T) {
	svc := NewService(&stubRows{rows: sampleRows()}, nil, nil, nil)

	best, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionOpponent, MinGames: intPtr(0), Order: OrderBest})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := keys(best.Rows)
	want := []string{"Marlins", "Nationals", "Braves", "Phillies", "Rays"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("best order: expected %v, got %v", want, got)
		}
	}

	worst, _ := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionOpponent, MinGames: intPtr(0), Order: OrderWorst, Limit: 2})
	got = keys(worst.Rows)
	if len(got) != 2 || got[0] != "Phillies" || got[1] != "Braves" {
		t.Fatalf("worst order with limit: got %v", got)
	}
}

func TestReportPassesSeasonAndPerSeason(t *testing.T) {
	rows := append(sampleRows(), row("Braves", 2025, domaingames.Runs(3), domaingames.Runs(0)))
	src := &stubRows{rows: rows}
	svc := NewService(src, nil, nil, nil)

	report, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionOpponent, Season: 2025, MinGames: intPtr(0), PerSeason: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if src.season != 2025 {
		t.Fatalf("expected season passed to row source, got %d", src.season)
	}
	last := report.Rows[len(report.Rows)-1]
	if last.Season != 2025 || last.Key != "Braves" {
		t.Fatalf("expected per-season rows, got %+v", last)
	}
}

func TestSummaryGroupsBySeason(t *testing.T) {
	svc := NewService(&stubRows{rows: sampleRows()}, map[domainreports.Dimension]int{domainreports.DimensionSeason: 50}, nil, nil)
	report, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Dimension != domainreports.DimensionSeason || len(report.Rows) != 1 {
		t.Fatalf("unexpected summary %+v", report)
	}
	s := report.Rows[0]
	if s.Key != "2024" || s.TotalGames != 12 || s.Wins != 7 || s.Losses != 4 || s.Ties != 1 {
		t.Fatalf("unexpected season row %+v", s)
	}
}

func TestReportErrors(t *testing.T) {
	rec := metrics.NewRecorder()
	svc := NewService(&stubRows{rows: sampleRows()}, nil, rec, nil)

	if _, err := svc.Report(context.Background(), Query{Dimension: "weekday"}); !errors.Is(err, aggregate.ErrUnknownDimension) {
		t.Fatalf("expected ErrUnknownDimension, got %v", err)
	}
	if _, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionVenue, Order: "random"}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for order, got %v", err)
	}
	if _, err := svc.Report(context.Background(), Query{Dimension: domainreports.DimensionVenue, Limit: -1}); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for limit, got %v", err)
	}

	boom := errors.New("store down")
	failing := NewService(&stubRows{err: boom}, nil, nil, nil)
	if _, err := failing.Report(context.Background(), Query{Dimension: domainreports.DimensionMonth}); !errors.Is(err, boom) {
		t.Fatalf("expected row source error, got %v", err)
	}
	if rec.ReportRuns("weekday") != 1 {
		t.Fatalf("expected failed reports to be recorded")
	}
}

func TestParseOrder(t *testing.T) {
	for raw, want := range map[string]Order{"": OrderKey, "key": OrderKey, "best": OrderBest, "worst": OrderWorst} {
		got, ok := ParseOrder(raw)
		if !ok || got != want {
			t.Fatalf("ParseOrder(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseOrder("desc"); ok {
		t.Fatal("expected unknown order to fail")
	}
}

func TestNewServiceCopiesThresholds(t *testing.T) {
	thresholds := map[domainreports.Dimension]int{domainreports.DimensionVenue: 2}
	svc := NewService(&stubRows{}, thresholds, nil, nil)
	thresholds[domainreports.DimensionVenue] = 9
	if svc.Threshold(domainreports.DimensionVenue) != 2 || svc.Threshold(domainreports.DimensionOpponent) != 0 {
		t.Fatalf("expected copied thresholds")
	}
}
