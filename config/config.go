package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration, read from the environment.
type Config struct {
	Host          string
	Port          string
	DatabaseURL   string
	HistoryFile   string
	UseBrowser    bool
	FetchTimeout  time.Duration
	CheckSchedule string
	RateLimit     float64
}

// Load reads the configuration from environment variables with
// sensible defaults.
func Load() *Config {
	return &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		HistoryFile:   getEnv("HISTORY_FILE", "price_history.csv"),
		UseBrowser:    getEnvBool("USE_BROWSER_FETCHER", false),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		CheckSchedule: getEnv("CHECK_SCHEDULE", "0 0 */12 * * *"),
		RateLimit:     getEnvFloat("RATE_LIMIT_RPS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
