package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Media Configuration:
// - MEDIA_DIRS: comma-separated directories scanned for subtitle pairs (required)
//
// Alignment Configuration:
// - ALIGN_PRIMARY_LANG: primary track language token (default: en)
// - ALIGN_SECONDARY_LANG: secondary track language token (default: ru)
// - MATCH_TOLERANCE_MS: matcher timing tolerance in milliseconds (default: 1000)
// - WORKER_CONCURRENCY: parallel pair workers per run (default: 4)
// - CRON_EXPR: schedule for alignment runs (default: "0 0 * * *")
//
// Store Configuration:
// - DB_PATH: sqlite database path (default: data/subreverse.db)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error or fatal (default: info)

type Config struct {
	Media  MediaConfig  `json:"media"`
	Align  AlignConfig  `json:"align"`
	Store  StoreConfig  `json:"store"`
	System SystemConfig `json:"system"`
}

// MediaConfig holds the scan roots for subtitle pair discovery.
type MediaConfig struct {
	Dirs []string `json:"dirs"`
}

// AlignConfig holds the alignment pipeline settings.
type AlignConfig struct {
	PrimaryLanguage   string `json:"primary_language"`
	SecondaryLanguage string `json:"secondary_language"`
	ToleranceMS       int    `json:"tolerance_ms"`
	Concurrency       int    `json:"concurrency"`
	CronExpr          string `json:"cron_expr"`
}

// Tolerance returns the matcher tolerance as a duration.
func (c AlignConfig) Tolerance() time.Duration {
	return time.Duration(c.ToleranceMS) * time.Millisecond
}

// StoreConfig holds the ingestion store settings.
type StoreConfig struct {
	DBPath string `json:"db_path"`
}

// SystemConfig holds the system configuration.
type SystemConfig struct {
	LogLevel string `json:"log_level"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Media: MediaConfig{
			Dirs: splitDirs(getEnvString("MEDIA_DIRS", "")),
		},
		Align: AlignConfig{
			PrimaryLanguage:   getEnvString("ALIGN_PRIMARY_LANG", "en"),
			SecondaryLanguage: getEnvString("ALIGN_SECONDARY_LANG", "ru"),
			ToleranceMS:       getEnvInt("MATCH_TOLERANCE_MS", 1000),
			Concurrency:       getEnvInt("WORKER_CONCURRENCY", 4),
			CronExpr:          getEnvString("CRON_EXPR", "0 0 * * *"),
		},
		Store: StoreConfig{
			DBPath: getEnvString("DB_PATH", "data/subreverse.db"),
		},
		System: SystemConfig{
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if len(c.Media.Dirs) == 0 {
		return fmt.Errorf("MEDIA_DIRS is required")
	}
	if c.Align.ToleranceMS < 0 {
		return fmt.Errorf("MATCH_TOLERANCE_MS must not be negative")
	}
	if c.Align.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	return nil
}

func splitDirs(raw string) []string {
	ret := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
