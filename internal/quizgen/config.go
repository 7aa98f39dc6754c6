package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// BatchSize is the number of questions requested per call.
	BatchSize int

	// Validators is the ordered list of validators run on every generated
	// question. A question failing any of them is dropped from the batch.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoidPrompts is the maximum number of already-known prompts
	// listed in the request as "do not repeat".
	MaxAvoidPrompts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize: 7,
		Validators: []Validator{
			&StructuralValidator{},
			&LengthValidator{MaxWords: 8},
		},
		MaxTokens:       2048,
		Temperature:     0.9,
		MaxAvoidPrompts: 10,
	}
}
