package quizgen

import "github.com/abhisek/quizbuddy/internal/llm"

// optionSchema is shared by the "a", "b", and "options" properties.
var optionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"txt":  map[string]any{"type": "string"},
		"icon": map[string]any{"type": "string"},
	},
	"required": []any{"txt", "icon"},
}

// BatchSchema checks the outer shape of a generated reply: a non-empty
// array of objects. Items are checked one by one against QuestionSchema so
// a single bad item does not sink the whole batch.
var BatchSchema = &llm.Schema{
	Name:        "quiz-batch",
	Description: "A batch of two-option picture quiz questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "object"},
	},
}

// QuestionSchema defines the JSON schema of one generated question.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single two-option picture quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"q": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The 2-5 word question shown to the child",
			},
			"a": optionSchema,
			"b": optionSchema,
			"correct": map[string]any{
				"type": "string",
				"enum": []any{"a", "b"},
			},
			"display":   map[string]any{"type": "string"},
			"speakText": map[string]any{"type": "string"},
			"pattern": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"options": map[string]any{
				"type":  "array",
				"items": optionSchema,
			},
		},
		"required": []any{"q", "a", "b", "correct"},
	},
}
