// Package cache holds recently generated batches so an identical request
// within the freshness window skips the remote call.
package cache

import (
	"context"
	"time"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// DefaultTTL is the freshness window of a cached batch.
const DefaultTTL = time.Hour

// Cache stores the latest batch per (category, topic).
type Cache interface {
	// Get returns the batch stored for the pair if it is still fresh.
	Get(ctx context.Context, category, topic string) ([]quizgen.Question, bool)

	// Put replaces the batch stored for the pair.
	Put(ctx context.Context, category, topic string, batch []quizgen.Question) error
}

type entry struct {
	batch      []quizgen.Question
	producedAt time.Time
}

type key struct {
	category string
	topic    string
}
