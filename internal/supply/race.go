package supply

import (
	"context"
	"time"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

type generation struct {
	questions []quizgen.Question
	err       error
}

// generateWithin races one generator call against timeout. The call runs
// detached from the caller's cancellation so a shared (singleflight) call
// is not aborted by one impatient waiter; once the timeout fires the result
// is abandoned and ErrTimeout returned.
func generateWithin(ctx context.Context, gen quizgen.Generator, req quizgen.Request, timeout time.Duration) ([]quizgen.Question, error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	done := make(chan generation, 1)
	go func() {
		defer cancel()
		qs, err := gen.Generate(callCtx, req)
		done <- generation{questions: qs, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case g := <-done:
		return g.questions, g.err
	case <-timer.C:
		return nil, ErrTimeout
	}
}
