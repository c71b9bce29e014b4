package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	cases := []struct {
		name             string
		service, version string
		want             []string
	}{
		{name: "both", service: "mlb-season-service", version: "v1", want: []string{FieldService, FieldVersion}},
		{name: "service only", service: "mlb-season-service", want: []string{FieldService}},
		{name: "none"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attrs := WithCommon([]slog.Attr{slog.Int(FieldSeason, 2024)}, tc.service, tc.version)
			if len(attrs) != len(tc.want)+1 || attrs[0].Key != FieldSeason {
				t.Fatalf("expected existing attr plus %v, got %+v", tc.want, attrs)
			}
			for i, key := range tc.want {
				if attrs[i+1].Key != key {
					t.Fatalf("expected %s at %d, got %+v", key, i+1, attrs[i+1])
				}
			}
		})
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestHelpersWriteLevelsAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Output: &buf})

	Debug(logger, "table hit", FieldSeason, 2024)
	Info(logger, "refresh complete")
	Warn(logger, "retrying")
	Error(logger, "refresh failed", errors.New("upstream down"))

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "level=INFO", "level=WARN", "level=ERROR", "season=2024", `error="upstream down"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
