package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port     string         `yaml:"port"`
	Team     TeamConfig     `yaml:"team"`
	Seasons  []int          `yaml:"seasons"`
	Provider string         `yaml:"provider"`
	StatsAPI StatsAPIConfig `yaml:"statsapi"`
	Data     DataConfig     `yaml:"data"`
	Store    StoreConfig    `yaml:"store"`
	Reports  ReportsConfig  `yaml:"reports"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// TeamConfig identifies the tracked team. Name resolves the upstream team id;
// Matcher picks the tracked side of each game.
type TeamConfig struct {
	Name     string `yaml:"name"`
	Matcher  string `yaml:"matcher"`
	FoldCase bool   `yaml:"foldCase"`
	Timezone string `yaml:"timezone"`
}

// StatsAPIConfig controls how we talk to the MLB stats API.
type StatsAPIConfig struct {
	BaseURL       string        `yaml:"baseURL"`
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retryAttempts"`
}

// DataConfig locates exported tables and the trained model.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	Prefix    string `yaml:"prefix"`
	ModelPath string `yaml:"modelPath"`
}

// StoreConfig selects the game store backend.
type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlitePath"`
}

// ReportsConfig holds per-dimension default minimum decided games.
type ReportsConfig struct {
	MinGamesOpponent int `yaml:"minGamesOpponent"`
	MinGamesVenue    int `yaml:"minGamesVenue"`
	MinGamesMonth    int `yaml:"minGamesMonth"`
	MinGamesHomeAway int `yaml:"minGamesHomeAway"`
}

// HTTPConfig controls the API surface.
type HTTPConfig struct {
	AdminToken         string   `yaml:"adminToken"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port: defaultPort,
		Team: TeamConfig{
			Name:    defaultTeamName,
			Matcher: defaultTeamMatcher,
		},
		Seasons:  append([]int(nil), defaultSeasons...),
		Provider: defaultProvider,
		StatsAPI: StatsAPIConfig{
			BaseURL:       defaultStatsAPIBaseURL,
			Timeout:       defaultStatsAPITimeout,
			RetryAttempts: defaultRetryAttempts,
		},
		Data: DataConfig{
			Dir:       defaultDataDir,
			Prefix:    defaultDataPrefix,
			ModelPath: defaultModelPath,
		},
		Store: StoreConfig{
			Driver:     defaultStoreDriver,
			SQLitePath: defaultSQLitePath,
		},
		Reports: ReportsConfig{MinGamesOpponent: defaultMinGamesOpponent},
		HTTP:    HTTPConfig{CORSAllowedOrigins: []string{"*"}},
		Log:     LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Metrics: defaultMetrics(),
	}
}

// Load builds configuration from defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	cfg = cfg.withEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) withEnv() Config {
	return Config{
		Port: envOrDefault(envPort, c.Port),
		Team: TeamConfig{
			Name:     envOrDefault(envTeamName, c.Team.Name),
			Matcher:  envOrDefault(envTeamMatcher, c.Team.Matcher),
			FoldCase: boolEnvOrDefault(envTeamFoldCase, c.Team.FoldCase),
			Timezone: envOrDefault(envTeamTimezone, c.Team.Timezone),
		},
		Seasons:  seasonsEnvOrDefault(envSeasons, c.Seasons),
		Provider: envOrDefault(envProvider, c.Provider),
		StatsAPI: StatsAPIConfig{
			BaseURL:       envOrDefault(envStatsAPIBaseURL, c.StatsAPI.BaseURL),
			Timeout:       durationEnvOrDefault(envStatsAPITimeout, c.StatsAPI.Timeout),
			RetryAttempts: intEnvOrDefault(envRetryAttempts, c.StatsAPI.RetryAttempts),
		},
		Data: DataConfig{
			Dir:       envOrDefault(envDataDir, c.Data.Dir),
			Prefix:    envOrDefault(envDataPrefix, c.Data.Prefix),
			ModelPath: envOrDefault(envModelPath, c.Data.ModelPath),
		},
		Store: StoreConfig{
			Driver:     envOrDefault(envStoreDriver, c.Store.Driver),
			SQLitePath: envOrDefault(envSQLitePath, c.Store.SQLitePath),
		},
		Reports: ReportsConfig{
			MinGamesOpponent: countEnvOrDefault(envMinGamesOpponent, c.Reports.MinGamesOpponent),
			MinGamesVenue:    countEnvOrDefault(envMinGamesVenue, c.Reports.MinGamesVenue),
			MinGamesMonth:    countEnvOrDefault(envMinGamesMonth, c.Reports.MinGamesMonth),
			MinGamesHomeAway: countEnvOrDefault(envMinGamesHomeAway, c.Reports.MinGamesHomeAway),
		},
		HTTP: HTTPConfig{
			AdminToken:         envOrDefault(envAdminToken, c.HTTP.AdminToken),
			CORSAllowedOrigins: listEnvOrDefault(envCORSOrigins, c.HTTP.CORSAllowedOrigins),
		},
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, c.Log.Level),
			Format: envOrDefault(envLogFormat, c.Log.Format),
		},
		Metrics: c.Metrics.withEnv(),
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Team.Name == "" {
		errs = append(errs, errors.New("team name is required"))
	}
	if c.Team.Matcher == "" {
		errs = append(errs, errors.New("team matcher is required"))
	}
	if len(c.Seasons) == 0 {
		errs = append(errs, errors.New("at least one season is required"))
	}
	switch c.Provider {
	case ProviderStatsAPI, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Team.Timezone != "" {
		if _, err := time.LoadLocation(c.Team.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("team timezone: %w", err))
		}
	}
	return errors.Join(errs...)
}
