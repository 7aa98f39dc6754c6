package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/cache"
	"github.com/abhisek/quizbuddy/internal/catalog"
	"github.com/abhisek/quizbuddy/internal/config"
	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/pool"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/refill"
	"github.com/abhisek/quizbuddy/internal/store"
	"github.com/abhisek/quizbuddy/internal/supply"
)

// app is the fully wired supply pipeline.
type app struct {
	cfg          config.Config
	log          *logger.Logger
	store        *store.Store
	pool         *pool.Pool
	catalog      *catalog.Catalog
	orchestrator *supply.Orchestrator

	closers []func()
}

// buildApp loads configuration, applies flag overrides, and wires every
// component. withRefill enables background pool replenishment, which only
// makes sense for a long-running process.
func buildApp(cmd *cobra.Command, withRefill bool) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("log-mode"); v != "" {
		cfg.LogMode = v
	}
	if v, _ := cmd.Flags().GetString("redis"); v != "" {
		cfg.RedisURL = v
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &app{cfg: cfg, log: log}
	a.closers = append(a.closers, log.Sync)

	a.catalog, err = catalog.Default()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a.store, err = openStoreAt(cmd, a.cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.closers = append(a.closers, func() { a.store.Close() })

	a.pool = pool.New(pool.NewRepoStorage(a.store.PoolRepo()), pool.WithLogger(log))
	gen := a.generator(ctx)
	respCache := a.responseCache(ctx)

	opts := []supply.Option{
		supply.WithConfig(cfg.Supply),
		supply.WithEventRepo(a.store.EventRepo()),
		supply.WithLogger(log),
	}
	if withRefill {
		sched := refill.New(gen, a.pool, cfg.Refill, refill.WithLogger(log))
		a.closers = append(a.closers, sched.Close)
		opts = append(opts, supply.WithScheduler(sched))
	}

	a.orchestrator = supply.New(a.pool, respCache, gen, a.catalog, opts...)
	return a, nil
}

// generator returns the LLM-backed generator, or one that always reports
// the configuration problem so every request falls back to static content.
func (a *app) generator(ctx context.Context) quizgen.Generator {
	provider, err := llm.NewProvider(ctx, a.cfg.LLM, a.store.EventRepo(), a.log)
	if err != nil {
		a.log.Warn("LLM provider not configured, serving pool and built-in questions only", "error", err)
		return quizgen.GeneratorFunc(func(context.Context, quizgen.Request) ([]quizgen.Question, error) {
			return nil, err
		})
	}

	gcfg := quizgen.DefaultConfig()
	gcfg.BatchSize = a.cfg.Supply.BatchSize
	a.log.Info("LLM provider ready", "provider", a.cfg.LLM.Provider, "model", provider.ModelID())
	return quizgen.New(provider, gcfg)
}

// responseCache prefers Redis when configured and reachable.
func (a *app) responseCache(ctx context.Context) cache.Cache {
	if a.cfg.RedisURL != "" {
		rc, err := cache.DialRedis(ctx, a.cfg.RedisURL, a.cfg.CacheTTL, a.log)
		if err == nil {
			a.closers = append(a.closers, func() { rc.Close() })
			return rc
		}
		a.log.Warn("redis unavailable, using in-memory cache", "error", err)
	}
	return cache.NewMemory(a.cfg.CacheTTL)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
