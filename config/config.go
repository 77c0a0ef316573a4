package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	LogLevel   slog.Level
	LogFormat  string // "text" or "json"
	LogFile    string // empty disables logging
	Seed       int64  // 0 means seed from the clock
	TypeDelay  time.Duration
	ContentDir string // empty means the embedded content
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:    getEnv("LOG_FILE", ""),
		ContentDir: getEnv("DQ_CONTENT_DIR", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT value %q: want text or json", cfg.LogFormat)
	}

	seed, err := strconv.ParseInt(getEnv("DQ_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DQ_SEED value: %w", err)
	}
	cfg.Seed = seed

	delay, err := time.ParseDuration(getEnv("DQ_TYPE_DELAY", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DQ_TYPE_DELAY value: %w", err)
	}
	if delay < 0 {
		return nil, fmt.Errorf("invalid DQ_TYPE_DELAY value: %s is negative", delay)
	}
	cfg.TypeDelay = delay

	return cfg, nil
}

// SeedOrClock returns the configured seed, or the current time when unset.
func (c *Config) SeedOrClock() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// getEnv retrieves an environment variable or returns a default value.
// An empty variable counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
