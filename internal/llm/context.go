package llm

import "context"

// Purpose labels recorded under llm_request events.
const (
	PurposeQuizBatch  = "quiz-batch"
	PurposeQuizRefill = "quiz-refill"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose labels every call made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// WithDefaultPurpose labels ctx unless a caller has labelled it already,
// so a refill keeps its label through the shared generator.
func WithDefaultPurpose(ctx context.Context, purpose string) context.Context {
	if _, ok := ctx.Value(purposeKey{}).(string); ok {
		return ctx
	}
	return WithPurpose(ctx, purpose)
}

// PurposeFrom returns the label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return purposeUnknown
}
