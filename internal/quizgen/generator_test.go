package quizgen

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/quizbuddy/internal/llm"
)

func TestGenerate_FencedReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "```json\n" + fiveQuestions + "\n```",
	})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), Request{Category: "colors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("expected free-text request without schema")
	}
	if req.System != systemPrompt {
		t.Error("expected quiz system prompt")
	}
	if req.MaxTokens != 2048 {
		t.Errorf("expected MaxTokens 2048, got %d", req.MaxTokens)
	}
}

func TestGenerate_TruncatedReply(t *testing.T) {
	mock := &truncatingProvider{text: fiveQuestions[:len(fiveQuestions)/2]}

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), Request{Category: "colors"})
	var mt *llm.ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded in chain, got %v", err)
	}
	if llm.Classify(err) != llm.KindMalformed {
		t.Errorf("expected malformed classification, got %q", llm.Classify(err))
	}
}

// truncatingProvider replies with text cut off by the token budget.
type truncatingProvider struct{ text string }

func (p *truncatingProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return &llm.Response{Text: p.text, Model: "mock", StopReason: "max_tokens"}, nil
}

func (p *truncatingProvider) ModelID() string { return "mock" }

func TestGenerate_AvoidPromptsInMessage(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: fiveQuestions})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{
		Category:     "colors",
		AvoidPrompts: []string{"Which is PINK?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "1. Which is PINK?") {
		t.Error("expected avoid list in user message")
	}
}

func TestGenerate_ProviderErrorPassesThrough(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{Err: errors.New("429")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Category: "colors"})
	if llm.Classify(err) != llm.KindRateLimited {
		t.Errorf("expected rate limited, got %v", err)
	}
}

func TestGenerate_DuplicatePromptsDropped(t *testing.T) {
	reply := `[
	{"q":"Which is RED?","a":{"txt":"Apple","icon":"🍎"},"b":{"txt":"Leaf","icon":"🍃"},"correct":"a"},
	{"q":"Which is BLUE?","a":{"txt":"Sun","icon":"☀️"},"b":{"txt":"Sky","icon":"🌌"},"correct":"b"},
	{"q":"Which is RED?","a":{"txt":"Milk","icon":"🥛"},"b":{"txt":"Cherry","icon":"🍒"},"correct":"b"},
	{"q":"Which is BLUE?","a":{"txt":"Whale","icon":"🐳"},"b":{"txt":"Fire","icon":"🔥"},"correct":"a"}
]`
	mock := llm.NewMockProvider(llm.MockResponse{Text: reply})

	qs, err := New(mock, DefaultConfig()).Generate(context.Background(), Request{Category: "colors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(Prompts(qs), ","); got != "Which is RED?,Which is BLUE?" {
		t.Fatalf("prompts = %q, want each once in reply order", got)
	}
	if qs[0].A.Text != "Apple" {
		t.Errorf("expected the first occurrence to win, got %q", qs[0].A.Text)
	}
}

func TestGenerate_AllRejected(t *testing.T) {
	reply := `[{"q":"Can you please tell me which of these two is the red one?","a":{"txt":"Apple","icon":"🍎"},"b":{"txt":"Leaf","icon":"🍃"},"correct":"a"}]`
	mock := llm.NewMockProvider(llm.MockResponse{Text: reply})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Category: "colors"})
	if llm.Classify(err) != llm.KindMalformed {
		t.Errorf("expected malformed, got %v", err)
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	qs, err := ParseBatch(fiveQuestions)
	if err != nil {
		t.Fatal(err)
	}
	shuffled := Shuffle(qs, rand.New(rand.NewPCG(1, 2)))

	if len(shuffled) != len(qs) {
		t.Fatalf("length changed: %d", len(shuffled))
	}
	seen := map[string]bool{}
	for _, q := range shuffled {
		seen[q.Key()] = true
	}
	for _, q := range qs {
		if !seen[q.Key()] {
			t.Errorf("missing %q after shuffle", q.Q)
		}
	}
	if qs[0].Q != "Which is RED?" {
		t.Error("Shuffle must not modify its input")
	}
}

func TestRequestSubject(t *testing.T) {
	if got := (Request{Category: "colors"}).Subject(); got != "colors" {
		t.Errorf("got %q", got)
	}
	if got := (Request{Category: "colors", Topic: "fruit"}).Subject(); got != "fruit" {
		t.Errorf("got %q", got)
	}
}
