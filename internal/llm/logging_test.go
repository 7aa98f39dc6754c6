package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(
		MockResponse{Text: "```json\n[]\n```", Usage: Usage{InputTokens: 12, OutputTokens: 34}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, "gemini", repo, logger.Nop())

	ctx := WithPurpose(context.Background(), "quiz-refill")
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "Generate 7 questions"}}}

	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, good := events[0], events[1]
	assert.Equal(t, "gemini", good.Provider)
	assert.Equal(t, "mock", good.Model)
	assert.Equal(t, "quiz-refill", good.Purpose)
	assert.True(t, good.Success)
	assert.Equal(t, 12, good.InputTokens)
	assert.Equal(t, "```json\n[]\n```", good.ResponseBody)
	assert.Contains(t, good.RequestBody, "[system]\nsys")
	assert.Contains(t, good.RequestBody, "[user]\nGenerate 7 questions")

	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "rate limited")
}

func TestLoggingProvider_RecordsAfterCallerCancel(t *testing.T) {
	repo := openEventRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	mock := NewMockProvider(MockResponse{Text: "[]"})
	p := WithLogging(mock, "openai", repo, nil)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	cancel()

	// A cancelled caller must not lose the record of a finished call.
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
