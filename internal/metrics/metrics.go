package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type refreshStats struct {
	runs        int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// dataset refreshes and report runs. When built by Setup it also forwards
// to OpenTelemetry instruments.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	refresh refreshStats
	reports map[string]int
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*providerStats),
		reports: make(map[string]int),
		otel:    otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRefresh tracks a dataset reload into the game store.
func (r *Recorder) RecordRefresh(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refresh.runs++
	r.refresh.lastLatency = duration
	if err != nil {
		r.refresh.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, err)
	}
}

// RecordReport tracks one aggregation run for a dimension.
func (r *Recorder) RecordReport(dimension string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.reports[dimension]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordReport(dimension, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the stats recorded for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RefreshSnapshot is a copy of the dataset refresh stats.
type RefreshSnapshot struct {
	Runs        int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) Refreshes() RefreshSnapshot {
	if r == nil {
		return RefreshSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RefreshSnapshot{
		Runs:        r.refresh.runs,
		Errors:      r.refresh.errors,
		LastLatency: r.refresh.lastLatency,
	}
}

// ReportRuns returns how many reports were built for a dimension.
func (r *Recorder) ReportRuns(dimension string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports[dimension]
}
