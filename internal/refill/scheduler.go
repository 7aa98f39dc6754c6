// Package refill tops up thin question pools in the background so later
// visits can be served without waiting on generation.
package refill

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/pool"
	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// Config holds scheduler tunables.
type Config struct {
	// Delay is how long a scheduled refill waits before generating, so a
	// refill never competes with the request that triggered it.
	Delay time.Duration

	// Timeout bounds one background generation.
	Timeout time.Duration
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		Delay:   5 * time.Second,
		Timeout: 10 * time.Second,
	}
}

// Outcome reports how one refill ended.
type Outcome struct {
	Category string
	Added    int
	Err      error
}

// Scheduler runs at most one pending refill per category.
type Scheduler struct {
	gen  quizgen.Generator
	pool *pool.Pool
	cfg  Config
	log  *logger.Logger

	// onDone, when set, is called after every refill finishes.
	onDone func(Outcome)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
	closed   bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// OnDone registers a callback invoked after each refill.
func OnDone(fn func(Outcome)) Option {
	return func(s *Scheduler) { s.onDone = fn }
}

// New creates a Scheduler. Call Close to stop pending refills.
func New(gen quizgen.Generator, p *pool.Pool, cfg Config, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		gen:      gen,
		pool:     p,
		cfg:      cfg,
		log:      logger.Nop(),
		ctx:      ctx,
		cancel:   cancel,
		inFlight: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Schedule starts a delayed refill of category unless one is already
// pending. It never blocks on the refill itself.
func (s *Scheduler) Schedule(category, topic string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if _, busy := s.inFlight[category]; busy {
		s.mu.Unlock()
		return false
	}
	s.inFlight[category] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		out := s.run(category, topic)

		s.mu.Lock()
		delete(s.inFlight, category)
		s.mu.Unlock()

		if s.onDone != nil {
			s.onDone(out)
		}
	}()
	return true
}

// pending reports whether a refill of category is in flight.
func (s *Scheduler) pending(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[category]
	return ok
}

func (s *Scheduler) run(category, topic string) Outcome {
	out := Outcome{Category: category}
	log := s.log.With("category", category, "topic", topic)

	timer := time.NewTimer(s.cfg.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.ctx.Done():
		out.Err = s.ctx.Err()
		return out
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(s.ctx, llm.PurposeQuizRefill), s.cfg.Timeout)
	defer cancel()

	qs, err := s.gen.Generate(ctx, quizgen.Request{
		Category:     category,
		Topic:        topic,
		AvoidPrompts: quizgen.Prompts(s.pool.Read(ctx, category)),
	})
	if err != nil {
		log.Warn("refill generation failed", "kind", llm.Classify(err), "error", err)
		out.Err = err
		return out
	}

	if err := s.pool.Merge(context.WithoutCancel(ctx), category, qs); err != nil {
		log.Warn("refill merge failed", "error", err)
		out.Err = err
		return out
	}

	out.Added = len(qs)
	log.Info("pool refilled", "added", out.Added)
	return out
}

// Close cancels pending refills and waits for their goroutines to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
