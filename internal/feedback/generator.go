// ABOUTME: Coaching feedback for a finished session: Generator interface and rule-based fallback.
// ABOUTME: WithFallback chains a model-backed generator with the deterministic summary.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
)

// Generator produces advisory text for a finished session.
// history may or may not already contain session.
type Generator interface {
	Generate(ctx context.Context, session models.WorkoutSession, history []models.WorkoutSession) (string, error)
}

// Fallback summarises a session from its numbers alone.
type Fallback struct{}

// Generate never fails.
func (Fallback) Generate(_ context.Context, session models.WorkoutSession, history []models.WorkoutSession) (string, error) {
	s := summarize(session, history)

	var b strings.Builder
	fmt.Fprintf(&b, "Routine %s (%s): %d of %d sets completed, volume %s.",
		session.RoutineID, session.TimeOfDay, s.completed, s.total, formatVolume(s.volume))
	if s.dropSetExercises > 0 {
		fmt.Fprintf(&b, " Drop sets on %d %s.", s.dropSetExercises, plural(s.dropSetExercises, "exercise", "exercises"))
	}
	if s.skipped > 0 {
		fmt.Fprintf(&b, " Skipped %d %s.", s.skipped, plural(s.skipped, "exercise", "exercises"))
	}
	for _, line := range s.next {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String(), nil
}

type withFallback struct {
	primary  Generator
	fallback Generator
}

// WithFallback returns a generator that uses fallback whenever primary fails
// or returns empty text.
func WithFallback(primary, fallback Generator) Generator {
	return &withFallback{primary: primary, fallback: fallback}
}

func (g *withFallback) Generate(ctx context.Context, session models.WorkoutSession, history []models.WorkoutSession) (string, error) {
	text, err := g.primary.Generate(ctx, session, history)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	return g.fallback.Generate(ctx, session, history)
}

type sessionSummary struct {
	total            int
	completed        int
	volume           float64
	dropSetExercises int
	skipped          int
	next             []string
}

func summarize(session models.WorkoutSession, history []models.WorkoutSession) sessionSummary {
	full := withSession(history, session)

	s := sessionSummary{volume: analytics.SessionVolume(session)}
	for _, l := range session.Logs {
		if l.Skipped {
			s.skipped++
			continue
		}
		usedDrop := false
		for _, set := range l.Sets {
			s.total++
			if set.Completed {
				s.completed++
			}
			if set.IsDropSet {
				usedDrop = true
			}
		}
		if usedDrop {
			s.dropSetExercises++
		}
		if len(l.Sets) == 0 {
			continue
		}
		rec := progression.Recommend(l.ExerciseID, full)
		s.next = append(s.next, fmt.Sprintf("- %s: %s Next: %s.",
			l.ExerciseName, rec.Note, formatWeight(rec.RecommendedWeight)))
	}
	return s
}

// withSession returns history with session appended unless it is already present.
func withSession(history []models.WorkoutSession, session models.WorkoutSession) []models.WorkoutSession {
	for _, h := range history {
		if h.ID == session.ID {
			return history
		}
	}
	out := make([]models.WorkoutSession, 0, len(history)+1)
	out = append(out, history...)
	return append(out, session)
}

func formatWeight(w float64) string {
	if w == 0 {
		return "find a baseline"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", w), "0"), ".")
}

func formatVolume(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
