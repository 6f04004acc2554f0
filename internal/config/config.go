package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// DefaultPassword seeds the Settings row the first time authentication
	// runs with no password stored. Shipping a fixed default is a known
	// security smell; it is kept overridable so deployments can rotate it
	// before first login.
	DefaultPassword string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:finance.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DefaultPassword = getEnv("DEFAULT_PASSWORD", "admin123")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var", "key", key, "value", v)
			return def
		}
		return b
	}
	return def
}
