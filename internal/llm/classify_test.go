package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"typed rate limit", &ErrRateLimit{}, KindRateLimited},
		{"wrapped rate limit", fmt.Errorf("generate: %w", &ErrRateLimit{}), KindRateLimited},
		{"429 in message", errors.New("googleapi: Error 429: slow down"), KindRateLimited},
		{"quota message", errors.New("Quota exceeded for metric"), KindRateLimited},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), KindRateLimited},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad json")}, KindMalformed},
		{"configuration", &ErrConfiguration{Err: errors.New("no key")}, KindConfiguration},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("503")}, KindTransport},
		{"deadline", context.DeadlineExceeded, KindTransport},
		{"plain", errors.New("connection reset by peer"), KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify_ConfigurationBeatsMessage(t *testing.T) {
	// A configuration error mentioning a quota must still not be retried.
	err := &ErrConfiguration{Err: errors.New("quota project not set")}
	if got := Classify(err); got != KindConfiguration {
		t.Fatalf("got %q, want %q", got, KindConfiguration)
	}
}
