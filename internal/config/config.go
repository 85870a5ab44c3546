// Package config provides configuration management for the dashboard service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Provider base URLs are overridable
// so tests and local mirrors can point the adapters elsewhere.
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	YahooBaseURL string
	SGSBaseURL   string
	HTTPTimeout  time.Duration

	CacheDSN  string
	MarketTTL time.Duration // raw market fetches
	SeriesTTL time.Duration // normalized per-indicator results

	JanitorSchedule string // cron spec for expired-entry sweeps, empty disables
}

// Load reads configuration from a .env file (when present) and environment
// variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("DASHBOARD_PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvBool("DEV_MODE", false),
		YahooBaseURL:    getEnv("YAHOO_BASE_URL", ""),
		SGSBaseURL:      getEnv("SGS_BASE_URL", ""),
		HTTPTimeout:     getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		CacheDSN:        getEnv("CACHE_DSN", ""),
		MarketTTL:       getEnvDuration("MARKET_CACHE_TTL", time.Hour),
		SeriesTTL:       getEnvDuration("SERIES_CACHE_TTL", 30*time.Minute),
		JanitorSchedule: getEnv("JANITOR_SCHEDULE", "@every 10m"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.MarketTTL <= 0 || cfg.SeriesTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive")
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("provider timeout must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare numbers are treated as seconds, matching how the TTLs are
		// usually quoted.
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
