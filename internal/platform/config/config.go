// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Events      EventsConfig
	Log         LogConfig
	ContentPath string
}

// ServerConfig holds HTTP and websocket server settings.
type ServerConfig struct {
	Port           int
	Host           string
	AllowedOrigins []string // websocket origin patterns; empty allows same-origin only
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL
// disables the SQL event sink.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// CacheConfig holds Dragonfly/Redis connection settings. An empty URL
// disables the stream event sink.
type CacheConfig struct {
	URL string
}

// Enabled reports whether a cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.URL != ""
}

// EventsConfig holds learner event sink settings.
type EventsConfig struct {
	Stream       string
	StreamMaxLen int64
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           envInt("LEARN_SERVER_PORT", 8080),
			Host:           envStr("LEARN_SERVER_HOST", "0.0.0.0"),
			AllowedOrigins: envList("LEARN_WS_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:      envStr("LEARN_DATABASE_URL", ""),
			MaxConns: envInt("LEARN_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("LEARN_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("LEARN_CACHE_URL", ""),
		},
		Events: EventsConfig{
			Stream:       envStr("LEARN_EVENTS_STREAM", "course_events"),
			StreamMaxLen: int64(envInt("LEARN_EVENTS_STREAM_MAXLEN", 100000)),
		},
		Log: LogConfig{
			Level:  envStr("LEARN_LOG_LEVEL", "info"),
			Format: envStr("LEARN_LOG_FORMAT", "json"),
		},
		ContentPath: envStr("LEARN_CONTENT_PATH", "./content"),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ContentPath == "" {
		return fmt.Errorf("LEARN_CONTENT_PATH is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARN_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LEARN_LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("LEARN_DATABASE_MIN_CONNS (%d) exceeds LEARN_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Cache.Enabled() && c.Events.Stream == "" {
		return fmt.Errorf("LEARN_EVENTS_STREAM is required when LEARN_CACHE_URL is set")
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
