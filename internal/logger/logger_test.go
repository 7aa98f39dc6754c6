package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{"category", "colors", "gemini_api_key", "abc123", "dangling"})
	assert.Equal(t, []any{"category", "colors", "gemini_api_key", "[REDACTED]", "dangling"}, got)
}

func TestLoggerRedactsCredentials(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("request_id", "r-1").Info("provider ready", "provider", "gemini", "APIKey", "secret-value")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "r-1", fields["request_id"])
		assert.Equal(t, "gemini", fields["provider"])
		assert.Equal(t, "[REDACTED]", fields["APIKey"])
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Warn("ignored", "k", "v")
	l.Sync()
}
