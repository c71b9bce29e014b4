package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/config"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/export"
	"github.com/preston-bernstein/mlb-season-service/internal/predict"
	"github.com/preston-bernstein/mlb-season-service/internal/teststubs"
	"github.com/preston-bernstein/mlb-season-service/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Port = "0"
	cfg.Provider = config.ProviderFixture
	cfg.Seasons = []int{2024}
	cfg.StatsAPI.RetryAttempts = 1
	cfg.Data.Dir = filepath.Join(dir, "data")
	cfg.Data.ModelPath = filepath.Join(dir, "models", "model.json")
	cfg.Store.SQLitePath = filepath.Join(dir, "games.db")
	cfg.HTTP.AdminToken = "secret"
	cfg.Metrics.Enabled = false
	return cfg
}

func TestServerServesRefreshedDataset(t *testing.T) {
	cfg := testConfig(t)
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	router := srv.Handler()

	testutil.AssertErrorStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)

	srv.initialRefresh(context.Background())

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/games?season=2024", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var games struct {
		Count int `json:"count"`
	}
	testutil.DecodeJSON(t, rr, &games)
	if games.Count == 0 {
		t.Fatalf("expected fixture games after refresh")
	}

	rr = testutil.Serve(router, http.MethodGet, "/summary", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var summary domainreports.Report
	testutil.DecodeJSON(t, rr, &summary)
	if len(summary.Rows) != 1 || summary.Rows[0].Key != "2024" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Rows[0].TotalGames != games.Count {
		t.Fatalf("summary total %d should match stored games %d", summary.Rows[0].TotalGames, games.Count)
	}

	if _, err := os.Stat(export.GamesPath(cfg.Data.Dir, cfg.Data.Prefix, 2024)); err != nil {
		t.Fatalf("expected season table written: %v", err)
	}
	if got := srv.metrics.Refreshes().Runs; got != 1 {
		t.Fatalf("expected one refresh recorded, got %d", got)
	}
}

func TestServerAdminRefreshMounted(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rr := testutil.ServeAuthorized(srv.Handler(), http.MethodPost, "/admin/refresh?force=true", "secret")
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !srv.Games().Ready() {
		t.Fatalf("expected ready after admin refresh")
	}
}

func TestServerAdminRefreshHiddenWithoutToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.AdminToken = ""
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rr := testutil.ServeAuthorized(srv.Handler(), http.MethodPost, "/admin/refresh", "secret")
	testutil.AssertErrorStatus(t, rr, http.StatusNotFound)
}

func TestServerHandlesProviderErrorGracefully(t *testing.T) {
	provider := &teststubs.StubProvider{TeamsErr: teststubs.ErrStub}
	srv, err := newServerWithProvider(testConfig(t), nil, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv.initialRefresh(context.Background())

	if srv.Games().Ready() {
		t.Fatalf("expected server not ready after failed refresh")
	}
	testutil.AssertErrorStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
	if provider.TeamCalls.Load() != 1 {
		t.Fatalf("expected a single attempt with retries disabled, got %d", provider.TeamCalls.Load())
	}
}

func TestNewWithSQLiteStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = config.StoreSQLite
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv.initialRefresh(context.Background())
	list, err := srv.Games().Games(0)
	if err != nil || len(list) == 0 {
		t.Fatalf("expected games from sqlite store, got %d err %v", len(list), err)
	}
	if _, err := os.Stat(cfg.Store.SQLitePath); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
	srv.gracefulShutdown()
}

func TestNewFailsWhenStoreCannotOpen(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Store.Driver = config.StoreSQLite
	cfg.Store.SQLitePath = filepath.Join(blocker, "nested", "games.db")

	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unusable sqlite path")
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	if loadModel("", nil) != nil {
		t.Fatalf("expected nil model for empty path")
	}
	if loadModel(filepath.Join(dir, "missing.json"), nil) != nil {
		t.Fatalf("expected nil model when file is missing")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger, buf := testutil.NewBufferLogger()
	if loadModel(bad, logger) != nil {
		t.Fatalf("expected nil model for corrupt file")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected corrupt model to be logged")
	}

	good := filepath.Join(dir, "good.json")
	m := &predict.Model{Features: predict.FeatureNames, Weights: []float64{0, 1, 0, 0}}
	if err := m.Save(good); err != nil {
		t.Fatal(err)
	}
	if loadModel(good, nil) == nil {
		t.Fatalf("expected model to load")
	}
}

func TestServerPredictUsesSavedModel(t *testing.T) {
	cfg := testConfig(t)
	m := &predict.Model{Features: predict.FeatureNames, Weights: []float64{0, 2, 0, 0}}
	if err := m.Save(cfg.Data.ModelPath); err != nil {
		t.Fatal(err)
	}
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/predict?is_home=true&month=5", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body struct {
		WinProbability float64 `json:"winProbability"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.WinProbability <= 0.5 {
		t.Fatalf("expected home edge from saved weights, got %f", body.WinProbability)
	}
}

func TestThresholdsAndMatcher(t *testing.T) {
	cfg := config.Defaults()
	cfg.Reports.MinGamesVenue = 2
	cfg.Team.FoldCase = true
	cfg.Team.Timezone = "America/New_York"

	th := Thresholds(cfg)
	if th[domainreports.DimensionOpponent] != 3 || th[domainreports.DimensionVenue] != 2 {
		t.Fatalf("unexpected thresholds %v", th)
	}
	m := Matcher(cfg)
	if m.Substring != "Mets" || !m.FoldCase || m.Location == nil || m.Location.String() != "America/New_York" {
		t.Fatalf("unexpected matcher %+v", m)
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv)
	srv.gracefulShutdown()

	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.Shutdowns())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &testutil.StubHTTPServer{
		HandlerVal: http.NewServeMux(),
		Block:      make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, nil, blocking)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.Shutdowns())
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunRefreshesThenShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := testutil.NewServiceWithGames(testutil.SampleSeason())
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}
	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	deadline := time.After(500 * time.Millisecond)
	for !svc.Ready() {
		select {
		case <-deadline:
			t.Fatal("initial refresh did not complete")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.Shutdowns() != 1 || httpSrv.Listens() != 1 {
		t.Fatalf("expected one listen and one shutdown, got %d and %d", httpSrv.Listens(), httpSrv.Shutdowns())
	}
}
