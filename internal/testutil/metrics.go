package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-season-service/internal/metrics"
)

// MetricsSetup stands in for metrics.Setup. It hands out Recorder and Handler,
// fails with Err when set, and counts shutdown calls.
type MetricsSetup struct {
	Recorder  *metrics.Recorder
	Handler   http.Handler
	Err       error
	Configs   []metrics.TelemetryConfig
	Shutdowns atomic.Int32
}

// NewMetricsSetup returns a stub serving an empty mux with a fresh recorder.
func NewMetricsSetup() *MetricsSetup {
	return &MetricsSetup{Recorder: metrics.NewRecorder(), Handler: http.NewServeMux()}
}

// Setup matches the metrics.Setup signature.
func (m *MetricsSetup) Setup(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	_ = ctx
	m.Configs = append(m.Configs, cfg)
	if m.Err != nil {
		return nil, nil, nil, m.Err
	}
	return m.Recorder, m.Handler, func(context.Context) error {
		m.Shutdowns.Add(1)
		return nil
	}, nil
}
