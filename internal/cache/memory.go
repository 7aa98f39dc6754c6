package cache

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// Memory is an in-process Cache. Entries are only replaced, never evicted;
// a stale entry behaves as absent until the next Put overwrites it.
type Memory struct {
	mu      sync.RWMutex
	entries map[key]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an empty Memory cache with the given freshness window.
// A non-positive ttl uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		entries: make(map[key]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, category, topic string) ([]quizgen.Question, bool) {
	m.mu.RLock()
	e, ok := m.entries[key{category, topic}]
	m.mu.RUnlock()

	if !ok || m.now().Sub(e.producedAt) >= m.ttl {
		return nil, false
	}
	return append([]quizgen.Question(nil), e.batch...), true
}

func (m *Memory) Put(_ context.Context, category, topic string, batch []quizgen.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key{category, topic}] = entry{
		batch:      append([]quizgen.Question(nil), batch...),
		producedAt: m.now(),
	}
	return nil
}
