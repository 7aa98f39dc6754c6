package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/abhisek/quizbuddy/internal/llm"
)

// fencePattern matches a markdown code fence with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// StripFences removes a surrounding markdown code fence (```json or ```)
// from a model reply. Text without a fence is returned trimmed.
func StripFences(text string) string {
	trimmed := bytes.TrimSpace([]byte(text))
	if m := fencePattern.FindSubmatch(trimmed); m != nil {
		return string(m[1])
	}
	return string(trimmed)
}

// wrappedBatch is the object form some models reply with.
type wrappedBatch struct {
	Questions json.RawMessage `json:"questions"`
}

// ParseBatch turns a free-text model reply into questions. The reply may be
// fenced and may hold either a bare array or {"questions": [...]}. Items
// that do not match QuestionSchema are dropped; a reply with no usable item
// is an *llm.ErrInvalidResponse.
func ParseBatch(text string) ([]Question, error) {
	body := []byte(StripFences(text))

	if len(body) > 0 && body[0] == '{' {
		var w wrappedBatch
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, invalid(body, fmt.Errorf("decode object reply: %w", err))
		}
		if len(w.Questions) == 0 {
			return nil, invalid(body, fmt.Errorf("object reply has no \"questions\" field"))
		}
		body = w.Questions
	}

	if err := llm.ValidateJSON(BatchSchema, body); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, invalid(body, fmt.Errorf("decode batch: %w", err))
	}

	out := make([]Question, 0, len(items))
	for _, item := range items {
		if llm.ValidateJSON(QuestionSchema, item) != nil {
			continue
		}
		var q Question
		if err := json.Unmarshal(item, &q); err != nil {
			continue
		}
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, invalid(body, fmt.Errorf("no well-formed questions in reply"))
	}
	return out, nil
}

func invalid(content []byte, err error) *llm.ErrInvalidResponse {
	return &llm.ErrInvalidResponse{Content: content, Err: err}
}
