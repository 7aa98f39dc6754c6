package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizbuddy/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for one batch. The reply is free text; it is
// parsed leniently, filtered through the configured validators and
// deduplicated by prompt. A purpose already on ctx is kept for the request
// log.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]Question, error) {
	ctx = llm.WithDefaultPurpose(ctx, llm.PurposeQuizBatch)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, g.config)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	qs, err := ParseBatch(resp.Text)
	if err != nil {
		if resp.Truncated() {
			err = &llm.ErrInvalidResponse{Content: json.RawMessage(resp.Text), Err: &llm.ErrMaxTokensExceeded{}}
		}
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	kept, rejected := filterValid(qs, req, g.config.Validators)
	if len(kept) == 0 {
		return nil, &llm.ErrInvalidResponse{
			Content: json.RawMessage(resp.Text),
			Err:     fmt.Errorf("all %d questions rejected, first: %w", len(qs), rejected[0]),
		}
	}
	return dedupe(kept), nil
}
