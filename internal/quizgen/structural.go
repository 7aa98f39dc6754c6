package quizgen

import (
	"strings"
	"unicode/utf8"
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Request) *ValidationError {
	if strings.TrimSpace(q.Q) == "" {
		return v.fail("q is empty")
	}
	if utf8.RuneCountInString(q.Q) > 80 {
		return v.fail("q exceeds 80 characters")
	}
	if strings.TrimSpace(q.A.Text) == "" || strings.TrimSpace(q.B.Text) == "" {
		return v.fail("option text is empty")
	}
	if q.A.Text == q.B.Text && q.A.Icon == q.B.Icon {
		return v.fail("options a and b are identical")
	}
	if !q.Correct.Valid() {
		return v.fail(`correct must be "a" or "b"`)
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// LengthValidator rejects prompts that are too wordy for a toddler.
type LengthValidator struct {
	MaxWords int
}

func (v *LengthValidator) Name() string { return "length" }

func (v *LengthValidator) Validate(q *Question, _ Request) *ValidationError {
	if v.MaxWords <= 0 {
		return nil
	}
	if n := len(strings.Fields(q.Q)); n > v.MaxWords {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "q has too many words",
		}
	}
	return nil
}
