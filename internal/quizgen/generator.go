package quizgen

import "context"

// Generator produces batches of quiz questions.
type Generator interface {
	// Generate returns a non-empty batch for the request, or a classified
	// error (see llm.Classify).
	Generate(ctx context.Context, req Request) ([]Question, error)
}

// Request describes one batch to generate.
type Request struct {
	Category string
	Topic    string

	// AvoidPrompts lists prompts already known for the category, most
	// recent last. The generator asks the model not to repeat them.
	AvoidPrompts []string
}

// Subject is what the batch is about: the topic when set, else the
// category.
func (r Request) Subject() string {
	if r.Topic != "" {
		return r.Topic
	}
	return r.Category
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) ([]Question, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) ([]Question, error) {
	return f(ctx, req)
}
