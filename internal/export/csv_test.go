package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
)

func TestEncodeGamesWritesHeaderAndEmptyRuns(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGames(&buf, sampleGames(), 2024); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(GamesHeader, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "745444,2024-03-28T17:10:00Z,Final,121,New York Mets,158,Milwaukee Brewers,1,3,Citi Field,R,2024" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], `"Milwaukee Brewers, Inc",,,Citi Field`) {
		t.Fatalf("expected quoted name and empty run cells, got %q", lines[2])
	}
}

func TestDecodeGamesRoundTripsEncodedTable(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGames(&buf, sampleGames(), 2024); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeGames(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := sampleGames()
	if len(got) != len(want) {
		t.Fatalf("expected %d games, got %d", len(want), len(got))
	}
	if got[0].GamePK != want[0].GamePK || *got[0].HomeRuns != 1 || *got[0].AwayRuns != 3 || got[0].Home.ID != 121 {
		t.Fatalf("unexpected first game %+v", got[0])
	}
	if got[1].HomeRuns != nil || got[1].AwayRuns != nil || got[1].Away.Name != "Milwaukee Brewers, Inc" {
		t.Fatalf("unexpected second game %+v", got[1])
	}
}

func TestDecodeGamesAcceptsFloatRunsAndReorderedColumns(t *testing.T) {
	table := "season,gameDate,gamePk,home_team_name,away_team_name,home_runs,away_runs,extra\n" +
		"2024,2024-04-05 23:10:00+00:00,1,New York Mets,Atlanta Braves,5.0,3.0,x\n" +
		"2024,2024-04-06 23:10:00+00:00,2,New York Mets,Atlanta Braves,,NaN,y\n"

	got, err := DecodeGames(strings.NewReader(table))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 || *got[0].HomeRuns != 5 || *got[0].AwayRuns != 3 {
		t.Fatalf("unexpected games %+v", got)
	}
	if got[1].HomeRuns != nil || got[1].AwayRuns != nil {
		t.Fatalf("expected missing runs for second game, got %+v", got[1])
	}
	if got[0].Venue != "" || got[0].Home.ID != 0 {
		t.Fatalf("expected absent columns to stay empty, got %+v", got[0])
	}
}

func TestDecodeGamesErrors(t *testing.T) {
	if _, err := DecodeGames(strings.NewReader("gamePk,gameDate\n1,2024-04-05\n")); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	bad := "gamePk,gameDate,home_team_name,away_team_name,home_runs\n1,2024-04-05,A,B,3.5\n"
	if _, err := DecodeGames(strings.NewReader(bad)); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line-numbered parse error, got %v", err)
	}
	empty, err := DecodeGames(strings.NewReader(""))
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result for empty table, got %v %v", empty, err)
	}
}

func TestEncodeReportLeavesUndefinedWinPctEmpty(t *testing.T) {
	pct := 0.5
	rows := []reports.Row{
		{Key: "Braves", TotalGames: 2, DecidedGames: 2, Wins: 1, Losses: 1, RunsScored: 6, RunsAllowed: 7, WinPct: &pct},
		{Season: 2024, Key: "Phillies", TotalGames: 1, Ties: 1},
	}
	var buf bytes.Buffer
	if err := EncodeReport(&buf, rows); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != strings.Join(ReportHeader, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != ",Braves,2,2,1,1,0,0,6,7,0.500000" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[2] != "2024,Phillies,1,0,0,0,1,0,0,0," {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}
