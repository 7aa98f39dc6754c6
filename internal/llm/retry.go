package llm

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries rate-limited requests with
// exponential backoff. Every other failure is returned on the first attempt.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	// sleep waits for d or until ctx is done. Replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return newRetryProvider(p, cfg)
}

func newRetryProvider(p Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepContext}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.shouldRetry(ctx, err) {
			return nil, err
		}

		// Retries exhausted: surface the rate limit.
		if attempt == r.config.MaxRetries {
			break
		}

		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry reports whether err is worth another attempt. Only rate
// limits qualify; a cancelled caller never retries.
func (r *RetryProvider) shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return Classify(err) == KindRateLimited
}

// backoff computes the wait before the retry following attempt. The
// nominal wait is InitialWait * Multiplier^attempt, capped at MaxWait.
// Jitter only ever lengthens the wait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 && wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	if r.config.Jitter > 0 {
		wait += wait * r.config.Jitter * rand.Float64()
	}

	d := time.Duration(wait)

	// Respect a longer RetryAfter hint from the provider.
	if ra := retryAfter(err); ra > d {
		d = ra
	}
	return d
}

func retryAfter(err error) time.Duration {
	if rl, ok := asRateLimit(err); ok {
		return rl.RetryAfter
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
