package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZ_DB", "QUIZ_REDIS_URL", "QUIZ_ADDR", "QUIZ_LOG_MODE",
		"QUIZ_BATCH_SIZE", "QUIZ_GEN_TIMEOUT", "QUIZ_REFILL_DELAY", "QUIZ_CACHE_TTL",
		"QUIZ_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 7, cfg.Supply.BatchSize)
	assert.Equal(t, 5, cfg.Supply.MinServe)
	assert.Equal(t, 15, cfg.Supply.LowWater)
	assert.Equal(t, 10*time.Second, cfg.Supply.GenerationTimeout)
	assert.Equal(t, 40*time.Second, cfg.Supply.RateLimitRetryAfter)
	assert.Equal(t, 5*time.Second, cfg.Refill.Delay)
	assert.Equal(t, 10*time.Second, cfg.Refill.Timeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZ_DB", "/tmp/quizbuddy-test.db")
	t.Setenv("QUIZ_ADDR", "127.0.0.1:9000")
	t.Setenv("QUIZ_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("QUIZ_LOG_MODE", "prod")
	t.Setenv("QUIZ_BATCH_SIZE", "9")
	t.Setenv("QUIZ_GEN_TIMEOUT", "3s")
	t.Setenv("QUIZ_REFILL_DELAY", "250ms")
	t.Setenv("QUIZ_CACHE_TTL", "30m")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/quizbuddy-test.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 9, cfg.Supply.BatchSize)
	assert.Equal(t, 3*time.Second, cfg.Supply.GenerationTimeout)
	assert.Equal(t, 3*time.Second, cfg.Refill.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Refill.Delay)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "openai", cfg.LLM.Provider)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"QUIZ_BATCH_SIZE", "seven", "QUIZ_BATCH_SIZE"},
		{"QUIZ_GEN_TIMEOUT", "10", "QUIZ_GEN_TIMEOUT"},
		{"QUIZ_BATCH_SIZE", "3", "minimum served batch"},
		{"QUIZ_BATCH_SIZE", "0", "batch size must be positive"},
		{"QUIZ_CACHE_TTL", "0s", "cache TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
