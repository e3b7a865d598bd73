package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/passgen/passgen-go/internal/crypto"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	DefaultLength  int
	MinLength      int
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	RescanDebounce time.Duration
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getLevel("LOG_LEVEL", slog.LevelInfo),
		DefaultLength:  getInt("DEFAULT_LENGTH", crypto.DefaultLength),
		MinLength:      getInt("MIN_LENGTH", crypto.MinLength),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),
		MaxBodyBytes:   int64(getInt("MAX_BODY_BYTES", 1<<20)),
		RescanDebounce: getDuration("RESCAN_DEBOUNCE", 100*time.Millisecond),
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.MinLength < 1 || c.MinLength > crypto.MaxLength {
		return fmt.Errorf("MIN_LENGTH must be between 1 and %d, got %d", crypto.MaxLength, c.MinLength)
	}
	if c.DefaultLength < c.MinLength || c.DefaultLength > crypto.MaxLength {
		return fmt.Errorf("DEFAULT_LENGTH must be between %d and %d, got %d", c.MinLength, crypto.MaxLength, c.DefaultLength)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.RescanDebounce < 0 {
		return fmt.Errorf("RESCAN_DEBOUNCE must not be negative")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring malformed integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring malformed number setting", "key", key, "value", v)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring malformed duration setting", "key", key, "value", v)
		return fallback
	}
	return d
}

func getLevel(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("ignoring malformed log level", "key", key, "value", v)
		return fallback
	}
	return level
}
