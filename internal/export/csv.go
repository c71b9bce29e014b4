package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// GamesHeader is the column order of a games table.
var GamesHeader = []string{
	"gamePk",
	"gameDate",
	"status",
	"home_team_id",
	"home_team_name",
	"away_team_id",
	"away_team_name",
	"home_runs",
	"away_runs",
	"venue",
	"game_type",
	"season",
}

// ReportHeader is the column order of a summary table.
var ReportHeader = []string{
	"season",
	"key",
	"total_games",
	"decided_games",
	"wins",
	"losses",
	"ties",
	"unknown",
	"runs_scored",
	"runs_allowed",
	"win_pct",
}

// ErrMissingColumn is returned when a games table lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// EncodeGames writes raw games as a games table. The season column is the
// year of the game date, falling back to season when the date does not parse.
func EncodeGames(w io.Writer, raw []games.RawGame, season int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(GamesHeader); err != nil {
		return err
	}
	for _, g := range raw {
		rowSeason := season
		if t, err := timeutil.ParseGameTime(g.GameDate); err == nil {
			rowSeason = t.UTC().Year()
		}
		record := []string{
			strconv.FormatInt(g.GamePK, 10),
			g.GameDate,
			g.Status,
			fmtID(g.Home.ID),
			g.Home.Name,
			fmtID(g.Away.ID),
			g.Away.Name,
			fmtRuns(g.HomeRuns),
			fmtRuns(g.AwayRuns),
			g.Venue,
			g.GameType,
			strconv.Itoa(rowSeason),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeGames reads a games table back into raw games. Columns are matched
// by header name, so tables with extra or reordered columns still load.
func DecodeGames(r io.Reader) ([]games.RawGame, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []games.RawGame{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))] = i
	}
	for _, required := range []string{"gamePk", "gameDate", "home_team_name", "away_team_name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	out := make([]games.RawGame, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		g := games.RawGame{
			GameDate: get("gameDate"),
			Status:   get("status"),
			Venue:    get("venue"),
			GameType: get("game_type"),
		}
		if g.GamePK, err = parseInt64(get("gamePk")); err != nil {
			return nil, fmt.Errorf("line %d: gamePk: %w", line, err)
		}
		g.Home.Name = get("home_team_name")
		g.Away.Name = get("away_team_name")
		if g.Home.ID, err = parseID(get("home_team_id")); err != nil {
			return nil, fmt.Errorf("line %d: home_team_id: %w", line, err)
		}
		if g.Away.ID, err = parseID(get("away_team_id")); err != nil {
			return nil, fmt.Errorf("line %d: away_team_id: %w", line, err)
		}
		if g.HomeRuns, err = parseRuns(get("home_runs")); err != nil {
			return nil, fmt.Errorf("line %d: home_runs: %w", line, err)
		}
		if g.AwayRuns, err = parseRuns(get("away_runs")); err != nil {
			return nil, fmt.Errorf("line %d: away_runs: %w", line, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// EncodeReport writes aggregated rows as a summary table.
func EncodeReport(w io.Writer, rows []reports.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		season := ""
		if r.Season != 0 {
			season = strconv.Itoa(r.Season)
		}
		record := []string{
			season,
			r.Key,
			strconv.Itoa(r.TotalGames),
			strconv.Itoa(r.DecidedGames),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.Ties),
			strconv.Itoa(r.Unknown),
			strconv.Itoa(r.RunsScored),
			strconv.Itoa(r.RunsAllowed),
			fmtPct(r.WinPct),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func fmtRuns(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtPct(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

// parseNumber accepts integers and whole floats such as "3.0", which is how
// tables with missing cells store integer columns.
func parseNumber(raw string) (int64, bool, error) {
	switch strings.ToLower(raw) {
	case "", "nan", "none", "null":
		return 0, false, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("not an integer: %q", raw)
	}
	return int64(f), true, nil
}

func parseInt64(raw string) (int64, error) {
	n, _, err := parseNumber(raw)
	return n, err
}

func parseID(raw string) (int, error) {
	n, _, err := parseNumber(raw)
	return int(n), err
}

func parseRuns(raw string) (*int, error) {
	n, ok, err := parseNumber(raw)
	if err != nil || !ok {
		return nil, err
	}
	return games.Runs(int(n)), nil
}
