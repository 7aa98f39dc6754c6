package supply

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoContent is returned when a category has no static questions and
	// neither the pool nor generation produced any.
	ErrNoContent = errors.New("no questions available")

	// ErrTimeout is surfaced when generation does not finish within the
	// configured bound.
	ErrTimeout = errors.New("question generation timed out")

	// ErrMissingCategory rejects a request without a category.
	ErrMissingCategory = errors.New("category is required")
)

// RateLimitedError marks a no-content failure caused by throttling. Callers
// should wait RetryAfter before asking again.
type RateLimitedError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
}

func (e *RateLimitedError) Unwrap() error {
	return e.Err
}
