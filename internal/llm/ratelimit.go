package llm

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// retryHintPattern matches "try again in 20s" style hints that some
// providers put in the error message instead of a header.
var retryHintPattern = regexp.MustCompile(`(?i)(?:try again|retry) in ([0-9]+(?:\.[0-9]+)?(?:ms|s|m))`)

// mapStatus turns an HTTP status reported by a provider SDK into the
// package's error taxonomy. hint is the server-suggested wait, if any.
func mapStatus(err error, status int, hint time.Duration) error {
	switch {
	case status == http.StatusTooManyRequests, IsRateLimitMessage(err.Error()):
		// Quota exhaustion arrives as 403 from some providers.
		return rateLimited(err, hint)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return &ErrConfiguration{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// rateLimited builds an ErrRateLimit, falling back to a wait hint in the
// message text when the transport carried none.
func rateLimited(err error, hint time.Duration) *ErrRateLimit {
	if hint <= 0 {
		hint = retryHintFromMessage(err.Error())
	}
	return &ErrRateLimit{RetryAfter: hint, Err: err}
}

// parseRetryAfter reads a Retry-After header value in either delta-seconds
// or HTTP-date form. Unparseable or past values yield zero.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func retryAfterHeader(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	return parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
}

func retryHintFromMessage(msg string) time.Duration {
	m := retryHintPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	d, err := time.ParseDuration(m[1])
	if err != nil {
		return 0
	}
	return d
}
