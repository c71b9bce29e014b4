package statsapi

import "time"

const (
	providerName       = "statsapi"
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 30 * time.Second
	defaultSportID     = 1
	scheduleHydrate    = "game,linescore"
	maxErrorBody       = 512
)
