// ABOUTME: Runs feedback generation on a goroutine and reports the result once.
// ABOUTME: Callers persist the text themselves with session.AttachFeedback.
package feedback

import (
	"context"

	"github.com/harperreed/coach/internal/models"
)

// Result is the outcome of an asynchronous generation.
type Result struct {
	SessionID string
	Text      string
	Err       error
}

// AttachAsync generates feedback on a new goroutine and calls done exactly
// once with the outcome. Cancelling ctx aborts generation.
func AttachAsync(ctx context.Context, gen Generator, session models.WorkoutSession, history []models.WorkoutSession, done func(Result)) {
	session = session.Clone()
	snapshot := make([]models.WorkoutSession, len(history))
	copy(snapshot, history)

	go func() {
		text, err := gen.Generate(ctx, session, snapshot)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		done(Result{SessionID: session.ID, Text: text, Err: err})
	}()
}
