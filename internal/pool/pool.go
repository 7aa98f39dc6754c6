// Package pool keeps a bounded, duplicate-free backlog of known questions
// per category so repeat visits can be served without a remote call.
package pool

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// DefaultCapacity is the maximum number of questions kept per category.
const DefaultCapacity = 100

// Pool is the persistent question pool. Merge and Sample are serialized by
// a single mutex, so concurrent merges never lose each other's questions.
type Pool struct {
	mu       sync.Mutex
	storage  Storage
	capacity int
	log      *logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Pool.
type Option func(*Pool)

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(p *Pool) { p.capacity = n }
}

// WithRand makes sampling deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(p *Pool) { p.rng = rng }
}

// WithLogger sets the logger for storage failures.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pool) { p.log = l }
}

// New creates a Pool over storage.
func New(storage Storage, opts ...Option) *Pool {
	p := &Pool{
		storage:  storage,
		capacity: DefaultCapacity,
		log:      logger.Nop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Read returns the stored sequence of category, oldest first. A missing or
// unreadable record reads as an empty pool.
func (p *Pool) Read(ctx context.Context, category string) []quizgen.Question {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.read(ctx, category)
}

func (p *Pool) read(ctx context.Context, category string) []quizgen.Question {
	qs, err := p.storage.Load(ctx, category)
	if err != nil {
		p.log.Warn("pool read failed, treating as empty", "category", category, "error", err)
		return nil
	}
	return qs
}

// Merge appends batch to the pool of category, drops later duplicates of a
// prompt already present, and evicts the oldest entries beyond capacity.
// Merging the same batch twice leaves the pool as merging it once.
func (p *Pool) Merge(ctx context.Context, category string, batch []quizgen.Question) error {
	if len(batch) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	merged := mergeBounded(p.read(ctx, category), batch, p.capacity)
	return p.storage.Save(ctx, category, merged)
}

// mergeBounded is existing ++ batch, deduplicated by prompt keeping the
// first occurrence, trimmed to the last capacity entries.
func mergeBounded(existing, batch []quizgen.Question, capacity int) []quizgen.Question {
	seen := make(map[string]struct{}, len(existing)+len(batch))
	out := make([]quizgen.Question, 0, len(existing)+len(batch))
	for _, src := range [][]quizgen.Question{existing, batch} {
		for _, q := range src {
			if _, dup := seen[q.Key()]; dup {
				continue
			}
			seen[q.Key()] = struct{}{}
			out = append(out, q)
		}
	}
	if capacity > 0 && len(out) > capacity {
		out = out[len(out)-capacity:]
	}
	return out
}

// Sample returns up to n distinct questions of category in random order.
// An empty pool yields an empty slice.
func (p *Pool) Sample(ctx context.Context, category string, n int) []quizgen.Question {
	qs := p.Read(ctx, category)
	if len(qs) == 0 || n <= 0 {
		return nil
	}

	p.rngMu.Lock()
	shuffled := quizgen.Shuffle(qs, p.rng)
	p.rngMu.Unlock()

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// Size returns the number of questions stored for category.
func (p *Pool) Size(ctx context.Context, category string) int {
	return len(p.Read(ctx, category))
}

// Categories lists categories that have a stored pool.
func (p *Pool) Categories(ctx context.Context) ([]string, error) {
	return p.storage.Categories(ctx)
}
