package supply

import "time"

// Config holds the orchestrator tunables.
type Config struct {
	// BatchSize is how many questions a served batch holds at most.
	BatchSize int

	// MinServe is the smallest pool sample served without generating.
	MinServe int

	// LowWater is the pool size under which serving from the pool also
	// schedules a background refill.
	LowWater int

	// TopUpThreshold is the remaining-question count at or below which
	// TopUp appends more pool questions.
	TopUpThreshold int

	// GenerationTimeout bounds one foreground generation.
	GenerationTimeout time.Duration

	// RateLimitRetryAfter is reported to callers when throttling left them
	// without content.
	RateLimitRetryAfter time.Duration
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:           7,
		MinServe:            5,
		LowWater:            15,
		TopUpThreshold:      2,
		GenerationTimeout:   10 * time.Second,
		RateLimitRetryAfter: 40 * time.Second,
	}
}
