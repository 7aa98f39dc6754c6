// Package supply decides, per request, whether questions come from the
// pool, the response cache, a fresh generation, or the static catalog.
package supply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/quizbuddy/internal/cache"
	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/pool"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/store"
)

// Orchestrator serves question batches. It is safe for concurrent use.
type Orchestrator struct {
	pool      *pool.Pool
	cache     cache.Cache
	gen       quizgen.Generator
	static    StaticSource
	scheduler Scheduler
	events    store.EventRepo
	log       *logger.Logger
	cfg       Config

	flight singleflight.Group
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) { o.cfg = cfg }
}

// WithScheduler enables background refills of thin pools.
func WithScheduler(s Scheduler) Option {
	return func(o *Orchestrator) { o.scheduler = s }
}

// WithEventRepo records one supply event per call.
func WithEventRepo(r store.EventRepo) Option {
	return func(o *Orchestrator) { o.events = r }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator.
func New(p *pool.Pool, c cache.Cache, gen quizgen.Generator, static StaticSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		pool:   p,
		cache:  c,
		gen:    gen,
		static: static,
		log:    logger.Nop(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Supply returns a non-empty shuffled batch for req.Category. It only fails
// when the category has no static questions and nothing else worked; the
// error then wraps ErrNoContent, and a *RateLimitedError when throttling
// was the cause.
func (o *Orchestrator) Supply(ctx context.Context, req Request) (*Result, error) {
	if req.Category == "" {
		return nil, ErrMissingCategory
	}

	reqID := uuid.NewString()
	log := o.log.With("request_id", reqID, "category", req.Category, "topic", req.Topic)
	start := time.Now()

	res, err := o.supply(ctx, req, log)
	if res != nil {
		res.RequestID = reqID
	}

	o.record(ctx, reqID, req, res, err, time.Since(start), log)
	return res, err
}

func (o *Orchestrator) supply(ctx context.Context, req Request, log *logger.Logger) (*Result, error) {
	log.Debug("supply state", "state", StateCheckingPool)

	sample := o.pool.Sample(ctx, req.Category, o.cfg.BatchSize)
	if len(sample) >= o.cfg.MinServe {
		o.maybeRefill(ctx, req, log)
		return &Result{Questions: sample, Source: SourcePool, State: StateServing}, nil
	}

	log.Debug("supply state", "state", StateGenerating, "pool_sample", len(sample))

	qs, source, genErr := o.generate(ctx, req)
	if genErr == nil {
		return &Result{Questions: qs, Source: source, State: StateServing}, nil
	}

	log.Warn("generation failed, using static questions",
		"kind", llm.Classify(genErr), "error", genErr)
	log.Debug("supply state", "state", StateFallbackStatic)

	if static := o.static.Questions(req.Category); len(static) > 0 {
		return &Result{
			Questions: quizgen.Shuffle(static, nil),
			Source:    SourceStatic,
			State:     StateFallbackStatic,
		}, nil
	}

	err := fmt.Errorf("%w for %q: %w", ErrNoContent, req.Category, genErr)
	if llm.Classify(genErr) == llm.KindRateLimited {
		return nil, &RateLimitedError{RetryAfter: o.cfg.RateLimitRetryAfter, Err: err}
	}
	return nil, err
}

// maybeRefill schedules background replenishment when the pool is thin.
func (o *Orchestrator) maybeRefill(ctx context.Context, req Request, log *logger.Logger) {
	if o.scheduler == nil {
		return
	}
	size := o.pool.Size(ctx, req.Category)
	if size >= o.cfg.LowWater {
		return
	}
	if o.scheduler.Schedule(req.Category, req.Topic) {
		log.Debug("refill scheduled", "pool_size", size)
	}
}

// generate serves a fresh cache entry or produces a new batch. Identical
// concurrent misses share one generator call.
func (o *Orchestrator) generate(ctx context.Context, req Request) ([]quizgen.Question, Source, error) {
	if qs, ok := o.cache.Get(ctx, req.Category, req.Topic); ok {
		o.mergeIntoPool(ctx, req.Category, qs)
		return quizgen.Shuffle(qs, nil), SourceCache, nil
	}

	key := req.Category + "\x00" + req.Topic
	ch := o.flight.DoChan(key, func() (any, error) {
		// Shared by every waiter, so it must outlive the first caller.
		bg := context.WithoutCancel(ctx)

		genReq := quizgen.Request{
			Category:     req.Category,
			Topic:        req.Topic,
			AvoidPrompts: quizgen.Prompts(o.pool.Read(bg, req.Category)),
		}
		qs, err := generateWithin(bg, o.gen, genReq, o.cfg.GenerationTimeout)
		if err != nil {
			return nil, err
		}
		if len(qs) == 0 {
			return nil, &llm.ErrInvalidResponse{Err: errors.New("empty batch")}
		}

		o.mergeIntoPool(bg, req.Category, qs)
		if err := o.cache.Put(bg, req.Category, req.Topic, qs); err != nil {
			o.log.Warn("cache write failed", "category", req.Category, "error", err)
		}
		return qs, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, "", r.Err
		}
		return quizgen.Shuffle(r.Val.([]quizgen.Question), nil), SourceRemote, nil
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}
}

func (o *Orchestrator) mergeIntoPool(ctx context.Context, category string, qs []quizgen.Question) {
	if err := o.pool.Merge(context.WithoutCancel(ctx), category, qs); err != nil {
		o.log.Warn("pool merge failed", "category", category, "error", err)
	}
}

// TopUp extends a nearly exhausted round with pool questions the learner
// has not seen in it. It never calls the generator.
func (o *Orchestrator) TopUp(ctx context.Context, category string, remaining []quizgen.Question) []quizgen.Question {
	if len(remaining) > o.cfg.TopUpThreshold {
		return remaining
	}

	have := make(map[string]struct{}, len(remaining))
	for _, q := range remaining {
		have[q.Key()] = struct{}{}
	}

	out := append([]quizgen.Question(nil), remaining...)
	for _, q := range o.pool.Sample(ctx, category, o.cfg.BatchSize) {
		if _, dup := have[q.Key()]; dup {
			continue
		}
		have[q.Key()] = struct{}{}
		out = append(out, q)
	}
	return out
}

func (o *Orchestrator) record(ctx context.Context, reqID string, req Request, res *Result, err error, elapsed time.Duration, log *logger.Logger) {
	data := store.SupplyEventData{
		RequestID: reqID,
		Category:  req.Category,
		Topic:     req.Topic,
		LatencyMs: elapsed.Milliseconds(),
	}
	if res != nil {
		data.Source = string(res.Source)
		data.State = string(res.State)
		data.Count = len(res.Questions)
		log.Info("supplied questions", "source", res.Source, "count", data.Count, "latency_ms", data.LatencyMs)
	} else {
		data.State = string(StateIdle)
		data.ErrorMessage = err.Error()
		log.Error("no questions to supply", "error", err)
	}

	if o.events == nil {
		return
	}
	if aerr := o.events.AppendSupply(context.WithoutCancel(ctx), data); aerr != nil {
		log.Warn("failed to record supply event", "error", aerr)
	}
}
