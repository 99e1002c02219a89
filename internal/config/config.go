package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the listing server and bidctl
type Config struct {
	Port        string
	LogLevel    string
	BaseURL     string
	HTTPTimeout time.Duration
}

// Load reads an optional .env file, then the environment.
// Variables already set in the environment win over .env entries.
func Load(files ...string) *Config {
	// a missing .env is fine
	_ = godotenv.Load(files...)

	return &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("BIDDER_BASE_URL", "http://localhost:8080"),
		HTTPTimeout: getEnvAsDuration("BIDDER_HTTP_TIMEOUT", 10*time.Second),
	}
}

// Addr is the listen address for the listing server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("5s") or plain seconds ("5")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
