package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// DefaultUserID is the single local user when none is configured.
const DefaultUserID = "00000000-0000-0000-0000-000000000001"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	UserID    string
	Timezone  string

	// Storage. An empty DatabaseURL selects local SQLite.
	DatabaseURL string
	SQLitePath  string

	// Redis. Empty keeps plan snapshots in memory.
	RedisURL string

	// RabbitMQ. Empty dispatches plan events in process.
	RabbitMQURL string

	// Planning
	PlanMaxTasks int
	RankLimit    int
	PlanCacheTTL time.Duration

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
		UserID:    getEnv("DAYFOCUS_USER_ID", DefaultUserID),
		Timezone:  getEnv("DAYFOCUS_TIMEZONE", "Local"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("DAYFOCUS_SQLITE_PATH", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		PlanMaxTasks: getIntEnv("PLAN_MAX_TASKS", 5),
		RankLimit:    getIntEnv("RANK_LIMIT", 15),
		PlanCacheTTL: getDurationEnv("PLAN_CACHE_TTL", 12*time.Hour),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	if _, err := cfg.User(); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsLocalMode reports whether tasks live in a local SQLite file.
func (c *Config) IsLocalMode() bool {
	return c.DatabaseURL == ""
}

// User returns the configured user id.
func (c *Config) User() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %v", ErrInvalidUserID, c.UserID, err)
	}
	return id, nil
}

// Location resolves the timezone plans are built in.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
