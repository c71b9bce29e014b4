package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/providers"
	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// Config controls how the stats API client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	SportID    int
}

// Client fetches schedules and teams from the MLB stats API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	sportID    int
}

// NewClient constructs a stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	sportID := cfg.SportID
	if sportID <= 0 {
		sportID = defaultSportID
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		sportID:    sportID,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchSchedule retrieves every game for teamID between March 1 and November 30 of season.
func (c *Client) FetchSchedule(ctx context.Context, teamID int, season int) ([]games.RawGame, error) {
	start, end := timeutil.SeasonWindow(season)
	q := map[string]string{
		"sportId":   strconv.Itoa(c.sportID),
		"teamId":    strconv.Itoa(teamID),
		"startDate": start,
		"endDate":   end,
		"hydrate":   scheduleHydrate,
	}

	var payload scheduleResponse
	if err := c.getJSON(ctx, "/schedule", q, &payload); err != nil {
		return nil, err
	}

	out := make([]games.RawGame, 0)
	for _, block := range payload.Dates {
		for _, g := range block.Games {
			out = append(out, mapGame(g))
		}
	}
	return out, nil
}

// FetchTeams retrieves the league's team listing.
func (c *Client) FetchTeams(ctx context.Context) ([]games.TeamInfo, error) {
	var payload teamsResponse
	if err := c.getJSON(ctx, "/teams", map[string]string{"sportIds": strconv.Itoa(c.sportID)}, &payload); err != nil {
		return nil, err
	}
	out := make([]games.TeamInfo, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		out = append(out, mapTeam(t))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", providerName, providers.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", providerName, path, err)
	}
	return nil
}
