package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a language model and returns its reply.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// provider asks for structured output and validates the reply against
	// the schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is the conversation. Quiz batches are single-turn, so this
	// usually holds one user message.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode. Quiz generation leaves it nil and parses free text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0.0-1.0. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "quiz-batch".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Text is the reply exactly as the model produced it.
	Text string

	// Content is the schema-validated JSON reply. It is only set when the
	// request carried a Schema.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Truncated reports whether the reply was cut off by the token budget.
func (r *Response) Truncated() bool {
	return r.StopReason == "max_tokens"
}

// finishResponse validates text against the request schema, when there is
// one, and fills Text and Content.
func finishResponse(req Request, text string, resp *Response) (*Response, error) {
	resp.Text = text
	if req.Schema == nil {
		return resp, nil
	}
	content := json.RawMessage(text)
	if err := ValidateJSON(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
