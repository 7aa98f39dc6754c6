package quizgen

import "fmt"

// Validator checks a generated question before it may enter a batch.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *Question, req Request) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// filterValid runs the validators over qs and returns the survivors along
// with the reasons for every rejection.
func filterValid(qs []Question, req Request, validators []Validator) ([]Question, []*ValidationError) {
	kept := make([]Question, 0, len(qs))
	var rejected []*ValidationError

next:
	for i := range qs {
		for _, v := range validators {
			if verr := v.Validate(&qs[i], req); verr != nil {
				rejected = append(rejected, verr)
				continue next
			}
		}
		kept = append(kept, qs[i])
	}
	return kept, rejected
}
