package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries the environment-driven settings for the agreement services.
type Config struct {
	Env             string
	DatabaseURL     string
	SigningSecret   string
	SigningTokenTTL time.Duration
	RelayWorkers    int
	RelayBatchSize  int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads configuration from the environment. A missing DATABASE_URL is
// reported as an error value so callers can decide whether it is fatal.
func Load() (Config, error) {
	cfg := Config{
		Env:             getenv("APP_ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SigningSecret:   getenv("SIGNING_TOKEN_SECRET", ""),
		SigningTokenTTL: getenvDuration("SIGNING_TOKEN_TTL", 72*time.Hour),
		RelayWorkers:    getenvInt("OUTBOX_RELAY_WORKERS", 4),
		RelayBatchSize:  getenvInt("OUTBOX_RELAY_BATCH", 50),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}
