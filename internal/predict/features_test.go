package predict

import (
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

func row(date string, home bool, team, opp *int) games.Row {
	t, _ := time.Parse(time.RFC3339, date)
	return games.Row{Date: t, IsHome: home, TeamRuns: team, OpponentRuns: opp}
}

func TestSamplesOrdersAndCarriesLastResult(t *testing.T) {
	rows := []games.Row{
		row("2024-05-02T23:00:00Z", false, games.Runs(2), games.Runs(2)), // tie
		row("2024-04-01T23:00:00Z", true, games.Runs(5), games.Runs(3)),  // win
		row("2024-04-15T23:00:00Z", true, nil, nil),                      // unplayed
		row("2024-04-20T23:00:00Z", false, games.Runs(1), games.Runs(4)), // loss
		row("2024-06-01T23:00:00Z", true, games.Runs(7), nil),            // half known
	}

	got := Samples(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}

	want := []Sample{
		{Features: Features{IsHome: true, LastResult: false, Month: 4}, Win: true},
		{Features: Features{IsHome: false, LastResult: true, Month: 4}, Win: false},
		{Features: Features{IsHome: false, LastResult: false, Month: 5}, Win: false},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSamplesEmpty(t *testing.T) {
	if got := Samples(nil); len(got) != 0 {
		t.Fatalf("expected no samples, got %d", len(got))
	}
}

func TestVectorScalesMonth(t *testing.T) {
	v := Features{IsHome: true, Month: 6}.vector()
	if len(v) != len(FeatureNames)+1 {
		t.Fatalf("expected bias plus features, got %d", len(v))
	}
	if v[0] != 1 || v[1] != 1 || v[2] != 0 || v[3] != 0.5 {
		t.Fatalf("unexpected vector %v", v)
	}
}
