package quizgen

import "math/rand/v2"

// Question is one two-option quiz item as it travels over the wire, sits in
// the pool, and is served to the learner.
type Question struct {
	// Q is the prompt shown (and usually spoken) to the learner, e.g.
	// "Which is RED?". It is also the dedup identity of the question.
	Q string `json:"q"`

	A Option `json:"a"`
	B Option `json:"b"`

	// Correct names the right option.
	Correct Answer `json:"correct"`

	// Display is an optional glyph block shown above the options, used by
	// counting questions ("🍎🍎🍎").
	Display string `json:"display,omitempty"`

	// SpeakText overrides Q for speech playback.
	SpeakText string `json:"speakText,omitempty"`

	// Pattern is the sequence for "what comes next" questions.
	Pattern []string `json:"pattern,omitempty"`

	// Options lists the candidates of "find the object" variants that show
	// more than two pictures.
	Options []Option `json:"options,omitempty"`
}

// Option is one answer button: a label and its picture.
type Option struct {
	Text string `json:"txt"`
	Icon string `json:"icon"`
}

// Answer identifies one of the two options.
type Answer string

const (
	AnswerA Answer = "a"
	AnswerB Answer = "b"
)

// Valid reports whether a is one of the two option keys.
func (a Answer) Valid() bool {
	return a == AnswerA || a == AnswerB
}

// Key is the dedup identity of q. Two questions with the same prompt are
// the same question, even when their options differ.
func (q Question) Key() string {
	return q.Q
}

// CorrectOption returns the option the learner should pick.
func (q Question) CorrectOption() Option {
	if q.Correct == AnswerB {
		return q.B
	}
	return q.A
}

// Prompts returns the prompt of every question in order.
func Prompts(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Q
	}
	return out
}

// Shuffle returns a shuffled copy of qs; the input is left untouched. A nil
// rng uses the global source.
func Shuffle(qs []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng != nil {
		rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}
