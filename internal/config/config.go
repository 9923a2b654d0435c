package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Engine   EngineConfig
	LogLevel logging.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds the source files of every dataset
type DataConfig struct {
	Dir      string
	Datasets []DatasetFile
}

// DatasetFile binds a dataset name to the file it is loaded from.
type DatasetFile struct {
	Name string
	Path string
}

// EngineConfig holds evaluation settings
type EngineConfig struct {
	Workers         int
	DefaultPageSize int
}

// Dataset names shown in the selector, in display order.
const (
	MatchSummary           = "Match Summary"
	BattingSummary         = "Batting Summary"
	BowlingSummary         = "Bowling Summary"
	PlayerInfo             = "Player Info"
	CompleteBattingSummary = "Complete Batting Summary"
	CompleteBowlingSummary = "Complete Bowling Summary"
)

// datasetDefaults lists each dataset with its file override variable and
// default file name.
var datasetDefaults = []struct {
	name, env, file string
}{
	{MatchSummary, "MATCH_SUMMARY_FILE", "Match Summary.csv"},
	{BattingSummary, "BATTING_SUMMARY_FILE", "Batting summaries for every match.csv"},
	{BowlingSummary, "BOWLING_SUMMARY_FILE", "Bowling summaries for every match.csv"},
	{PlayerInfo, "PLAYER_INFO_FILE", "Player_Info with Images T20 WC 2024.csv"},
	{CompleteBattingSummary, "COMPLETE_BATTING_FILE", "complete_batting_summary.csv"},
	{CompleteBowlingSummary, "COMPLETE_BOWLING_FILE", "complete_bowling_summary.csv"},
}

// Load reads configuration from the environment, after loading an optional
// .env file, and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the current environment only.
func FromEnv() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	level, ok := logging.ParseLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if !ok {
		return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	config.LogLevel = level

	engineConfig, err := loadEngineConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}
	config.Engine = *engineConfig

	config.Data = *loadDataConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadEngineConfig() (*EngineConfig, error) {
	workers, err := getEnvInt("EVAL_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	pageSize, err := getEnvInt("DEFAULT_PAGE_SIZE", 50)
	if err != nil {
		return nil, err
	}
	return &EngineConfig{Workers: workers, DefaultPageSize: pageSize}, nil
}

func loadDataConfig() *DataConfig {
	dir := getEnvOrDefault("DATA_DIR", "data")
	files := make([]DatasetFile, 0, len(datasetDefaults))
	for _, d := range datasetDefaults {
		file := getEnvOrDefault(d.env, d.file)
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		files = append(files, DatasetFile{Name: d.name, Path: file})
	}
	return &DataConfig{Dir: dir, Datasets: files}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Engine.Workers < 1 {
		return errors.ConfigInvalid("EVAL_WORKERS must be at least 1")
	}
	if config.Engine.DefaultPageSize < 1 {
		return errors.ConfigInvalid("DEFAULT_PAGE_SIZE must be at least 1")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return intValue, nil
}
