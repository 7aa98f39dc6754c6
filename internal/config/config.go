// Package config assembles process settings from QUIZ_* environment
// variables; command-line flags override the result.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/quizbuddy/internal/cache"
	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/refill"
	"github.com/abhisek/quizbuddy/internal/supply"
)

// Config holds every tunable of the process.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	// The --db flag overrides it.
	DBPath string

	// RedisURL selects the Redis response cache when set.
	RedisURL string

	// Addr is the HTTP listen address.
	Addr string

	// LogMode is "dev" or "prod".
	LogMode string

	// CacheTTL is the response cache freshness window.
	CacheTTL time.Duration

	Supply supply.Config
	Refill refill.Config
	LLM    llm.Config
}

// Default returns the built-in defaults with no environment applied.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogMode:  "dev",
		CacheTTL: cache.DefaultTTL,
		Supply:   supply.DefaultConfig(),
		Refill:   refill.DefaultConfig(),
		LLM:      llm.DefaultConfig(),
	}
}

// Load applies the environment on top of Default. Malformed numeric or
// duration values are errors rather than silently ignored.
func Load() (Config, error) {
	cfg := Default()
	cfg.LLM = llm.ConfigFromEnv()

	cfg.DBPath = DBPathFromEnv()
	cfg.RedisURL = os.Getenv("QUIZ_REDIS_URL")
	if v := os.Getenv("QUIZ_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("QUIZ_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}

	if err := envInt("QUIZ_BATCH_SIZE", &cfg.Supply.BatchSize); err != nil {
		return Config{}, err
	}
	if err := envDuration("QUIZ_GEN_TIMEOUT", &cfg.Supply.GenerationTimeout); err != nil {
		return Config{}, err
	}
	if err := envDuration("QUIZ_REFILL_DELAY", &cfg.Refill.Delay); err != nil {
		return Config{}, err
	}
	if err := envDuration("QUIZ_CACHE_TTL", &cfg.CacheTTL); err != nil {
		return Config{}, err
	}

	// Background refills share the foreground generation bound.
	cfg.Refill.Timeout = cfg.Supply.GenerationTimeout

	return cfg, cfg.Validate()
}

// DBPathFromEnv returns QUIZ_DB. Commands that only read the database use
// it without loading the rest of the settings.
func DBPathFromEnv() string {
	return os.Getenv("QUIZ_DB")
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Supply.BatchSize <= 0:
		return fmt.Errorf("batch size must be positive, got %d", c.Supply.BatchSize)
	case c.Supply.MinServe > c.Supply.BatchSize:
		return fmt.Errorf("batch size %d is below the minimum served batch %d", c.Supply.BatchSize, c.Supply.MinServe)
	case c.Supply.GenerationTimeout <= 0:
		return fmt.Errorf("generation timeout must be positive, got %s", c.Supply.GenerationTimeout)
	case c.Refill.Delay < 0:
		return fmt.Errorf("refill delay must not be negative, got %s", c.Refill.Delay)
	case c.CacheTTL <= 0:
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
