package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/store"
)

// Storage persists one ordered question sequence per category.
type Storage interface {
	// Load returns the stored sequence, or nil if the category has none.
	Load(ctx context.Context, category string) ([]quizgen.Question, error)

	// Save replaces the stored sequence of the category.
	Save(ctx context.Context, category string, qs []quizgen.Question) error

	// Categories lists every category with a stored sequence.
	Categories(ctx context.Context) ([]string, error)
}

// MemoryStorage keeps pools in process memory.
type MemoryStorage struct {
	mu    sync.Mutex
	pools map[string][]quizgen.Question

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{pools: make(map[string][]quizgen.Question)}
}

func (m *MemoryStorage) Load(_ context.Context, category string) ([]quizgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	qs, ok := m.pools[category]
	if !ok {
		return nil, nil
	}
	return append([]quizgen.Question(nil), qs...), nil
}

func (m *MemoryStorage) Save(_ context.Context, category string, qs []quizgen.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.pools[category] = append([]quizgen.Question(nil), qs...)
	return nil
}

func (m *MemoryStorage) Categories(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.pools))
	for c := range m.pools {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// RepoStorage stores pools as JSON documents in a store.PoolRepo.
type RepoStorage struct {
	repo store.PoolRepo
}

// NewRepoStorage returns a Storage backed by repo.
func NewRepoStorage(repo store.PoolRepo) *RepoStorage {
	return &RepoStorage{repo: repo}
}

func (s *RepoStorage) Load(ctx context.Context, category string) ([]quizgen.Question, error) {
	rec, err := s.repo.Load(ctx, category)
	if err != nil || rec == nil {
		return nil, err
	}
	var qs []quizgen.Question
	if err := json.Unmarshal(rec.Payload, &qs); err != nil {
		return nil, fmt.Errorf("decode pool %q: %w", category, err)
	}
	return qs, nil
}

func (s *RepoStorage) Save(ctx context.Context, category string, qs []quizgen.Question) error {
	payload, err := json.Marshal(qs)
	if err != nil {
		return fmt.Errorf("encode pool %q: %w", category, err)
	}
	return s.repo.Save(ctx, category, payload)
}

func (s *RepoStorage) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
