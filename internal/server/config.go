package server

import (
	"os"
	"strconv"
)

// Config holds the extraction service settings.
type Config struct {
	// Addr is the listen address.
	Addr string

	// APIKey guards the extract endpoint when set. Empty disables auth.
	APIKey string

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64
}

// Load reads configuration from the environment.
func Load() Config {
	cfg := Config{
		Addr:         envOr("TAKE_ADDR", ":8417"),
		APIKey:       os.Getenv("TAKE_API_KEY"),
		MaxBodyBytes: envInt64("TAKE_MAX_BODY_BYTES", 10<<20),
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
