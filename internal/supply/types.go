package supply

import "github.com/abhisek/quizbuddy/internal/quizgen"

// State is a step of one supply call.
type State string

const (
	StateIdle           State = "idle"
	StateCheckingPool   State = "checking_pool"
	StateServing        State = "serving"
	StateGenerating     State = "generating"
	StateFallbackStatic State = "fallback_static"
)

// Source names where a served batch came from.
type Source string

const (
	SourcePool   Source = "pool"
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
	SourceStatic Source = "static"
)

// Request asks for one batch.
type Request struct {
	Category string
	Topic    string
}

// Result is a served batch. Questions is never empty.
type Result struct {
	RequestID string
	Questions []quizgen.Question
	Source    Source
	State     State
}

// StaticSource provides the built-in questions of a category.
type StaticSource interface {
	Questions(category string) []quizgen.Question
}

// Scheduler starts background replenishment of a category.
type Scheduler interface {
	// Schedule returns false when a refill for the category is already
	// pending.
	Schedule(category, topic string) bool
}
