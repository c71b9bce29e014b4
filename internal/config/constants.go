package config

import "time"

const (
	envConfigFile       = "CONFIG_FILE"
	envPort             = "PORT"
	envTeamName         = "TEAM_NAME"
	envTeamMatcher      = "TEAM_MATCHER"
	envTeamFoldCase     = "TEAM_MATCH_FOLD_CASE"
	envTeamTimezone     = "TEAM_TIMEZONE"
	envSeasons          = "SEASONS"
	envProvider         = "PROVIDER"
	envStatsAPIBaseURL  = "STATSAPI_BASE_URL"
	envStatsAPITimeout  = "STATSAPI_TIMEOUT"
	envRetryAttempts    = "PROVIDER_RETRY_ATTEMPTS"
	envDataDir          = "DATA_DIR"
	envDataPrefix       = "DATA_PREFIX"
	envModelPath        = "MODEL_PATH"
	envStoreDriver      = "STORE_DRIVER"
	envSQLitePath       = "SQLITE_PATH"
	envMinGamesOpponent = "MIN_GAMES_OPPONENT"
	envMinGamesVenue    = "MIN_GAMES_VENUE"
	envMinGamesMonth    = "MIN_GAMES_MONTH"
	envMinGamesHomeAway = "MIN_GAMES_HOME_AWAY"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken       = "ADMIN_TOKEN"
	envCORSOrigins      = "CORS_ALLOWED_ORIGINS"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultPort            = "4000"
	defaultTeamName        = "New York Mets"
	defaultTeamMatcher     = "Mets"
	defaultProvider        = ProviderStatsAPI
	defaultStatsAPIBaseURL = "https://statsapi.mlb.com/api/v1"
	defaultStatsAPITimeout = 30 * time.Second
	defaultRetryAttempts   = 3
	defaultDataDir         = "data"
	defaultDataPrefix      = "mets"
	defaultModelPath       = "models/simple_win_predictor.json"
	defaultStoreDriver     = StoreMemory
	defaultSQLitePath      = "data/games.db"
	// Opponents met only once or twice make for noisy win percentages.
	defaultMinGamesOpponent = 3
	defaultMetricsPort      = "9090"
	defaultServiceName      = "mlb-season-service"
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

// Provider and store driver names.
const (
	ProviderStatsAPI = "statsapi"
	ProviderFixture  = "fixture"
	StoreMemory      = "memory"
	StoreSQLite      = "sqlite"
)

var defaultSeasons = []int{2024, 2025}
