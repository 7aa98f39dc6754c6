package llm

import (
	"errors"
	"strings"
)

// Kind is the failure class of a generation error.
type Kind string

const (
	KindNone          Kind = ""
	KindRateLimited   Kind = "rate_limited"
	KindMalformed     Kind = "malformed_response"
	KindConfiguration Kind = "configuration_error"
	KindTransport     Kind = "transport_error"
)

// rateLimitMarkers are substrings providers use to report throttling when
// the error does not carry a typed 429.
var rateLimitMarkers = []string{
	"429",
	"rate limit",
	"rate_limit",
	"ratelimit",
	"quota",
	"resource_exhausted",
	"too many requests",
}

// Classify maps an error to its failure class. A nil error is KindNone.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var cfg *ErrConfiguration
	if errors.As(err, &cfg) {
		return KindConfiguration
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return KindRateLimited
	}

	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return KindMalformed
	}

	if IsRateLimitMessage(err.Error()) {
		return KindRateLimited
	}

	return KindTransport
}

// IsRateLimitMessage reports whether a provider error message signals
// throttling or quota exhaustion.
func IsRateLimitMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
