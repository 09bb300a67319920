// Package config provides application configuration loaded from environment
// variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// BackendConfig points at the REST API that owns all business logic.
type BackendConfig struct {
	BaseURL string
	Timeout int // seconds
}

// SessionConfig holds the local session store settings. The store keeps
// only the bearer token and a cached user copy per browser session.
type SessionConfig struct {
	Secret   string
	TTLHours int
	Driver   string // "sqlite" or "postgres"
	DSN      string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
	// UPI payee identity encoded into payment deep links and QR codes.
	UPIPayeeID   string
	UPIPayeeName string
}

// TTL returns the session lifetime as a duration.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
			Timeout: getEnvInt("API_TIMEOUT", 15),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "devsessionsecret"),
			TTLHours: getEnvInt("SESSION_TTL_HOURS", 24*14),
			Driver:   getEnv("SESSION_DB_DRIVER", "sqlite"),
			DSN:      getEnv("SESSION_DB_DSN", "sessions.db"),
		},
		App: AppConfig{
			Dev:          getEnvBool("DEV", true),
			UPIPayeeID:   getEnv("UPI_PAYEE_ID", ""),
			UPIPayeeName: getEnv("UPI_PAYEE_NAME", "School Store"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
