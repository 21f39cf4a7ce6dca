// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port   string
	DBPath string

	// CatalogURL is the base URL of the remote catalog collection. Empty
	// means the bundled static catalog is used exclusively.
	CatalogURL     string
	CatalogTimeout time.Duration

	JWTSecret     string
	TokenDuration time.Duration

	// SeedUsername and SeedPassword provision the bootstrap operator on
	// first start so the admin panel is reachable on a fresh install.
	SeedUsername string
	SeedPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./data/papafactory.db"),
		CatalogURL:     getEnv("CATALOG_API_URL", ""),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 10*time.Second),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenDuration:  getDuration("TOKEN_DURATION", 12*time.Hour),
		SeedUsername:   getEnv("ADMIN_USERNAME", "admin"),
		SeedPassword:   getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "papafactory-dev-secret"
		slog.Warn("JWT_SECRET not set, using insecure development secret")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
