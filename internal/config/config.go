package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	AllowedOrigin   string
	JWTSecret       string
	RetentionCron   string
	RetentionMaxAge time.Duration
}

// Load loads configuration from environment variables or sets defaults.
// The JWT signing secret has no default and must be supplied externally;
// it is never logged.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	retentionDays, err := strconv.Atoi(getEnv("RETENTION_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./board.db"),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		JWTSecret:       secret,
		RetentionCron:   getEnv("RETENTION_CRON", "0 3 * * *"),
		RetentionMaxAge: time.Duration(retentionDays) * 24 * time.Hour,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
