package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Session registry
	SessionTTL  time.Duration
	MaxSessions int

	// Chapter table
	MaxChapters int

	// Page-text preview
	PreviewCharLimit int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		SessionTTL:  envDuration("SESSION_TTL", 30*time.Minute),
		MaxSessions: envInt("MAX_SESSIONS", 64),

		MaxChapters: envInt("MAX_CHAPTERS", 200),

		PreviewCharLimit: envInt("PREVIEW_CHAR_LIMIT", 500),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 64
	}
	if cfg.MaxChapters <= 0 {
		cfg.MaxChapters = 200
	}
	if cfg.PreviewCharLimit <= 0 {
		cfg.PreviewCharLimit = 500
	}

	return cfg
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be in 1-65535, got %d", port)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
