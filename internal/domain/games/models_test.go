package games

import (
	"reflect"
	"testing"
)

func TestOutcomeValues(t *testing.T) {
	expected := map[Outcome]string{
		OutcomeWin:     "W",
		OutcomeLoss:    "L",
		OutcomeTie:     "T",
		OutcomeUnknown: "NA",
	}

	for outcome, want := range expected {
		if string(outcome) != want {
			t.Fatalf("expected %q got %q", want, outcome)
		}
	}
}

func TestOutcomeFor(t *testing.T) {
	cases := []struct {
		name     string
		team     *int
		opponent *int
		want     Outcome
	}{
		{"win", Runs(5), Runs(3), OutcomeWin},
		{"loss", Runs(1), Runs(4), OutcomeLoss},
		{"tie", Runs(2), Runs(2), OutcomeTie},
		{"missing team runs", nil, Runs(2), OutcomeUnknown},
		{"missing opponent runs", Runs(2), nil, OutcomeUnknown},
		{"both missing", nil, nil, OutcomeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutcomeFor(tc.team, tc.opponent); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestOutcomeDecided(t *testing.T) {
	if !OutcomeWin.Decided() || !OutcomeLoss.Decided() {
		t.Fatal("expected wins and losses to be decided")
	}
	if OutcomeTie.Decided() || OutcomeUnknown.Decided() {
		t.Fatal("expected ties and unknown outcomes to be undecided")
	}
}

func TestRowPlayed(t *testing.T) {
	if (Row{TeamRuns: Runs(1)}).Played() {
		t.Fatal("expected row with one run count to be unplayed")
	}
	if !(Row{TeamRuns: Runs(1), OpponentRuns: Runs(0)}).Played() {
		t.Fatal("expected row with both run counts to be played")
	}
}

func TestRawGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(RawGame{})
	fields := []fieldCheck{
		{"GamePK", "gamePk"},
		{"GameDate", "gameDate"},
		{"Status", "status"},
		{"Home", "home"},
		{"Away", "away"},
		{"HomeRuns", "homeRuns"},
		{"AwayRuns", "awayRuns"},
		{"Venue", "venue"},
		{"GameType", "gameType"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}
