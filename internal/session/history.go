// ABOUTME: History-level operations: find, amend and attach feedback to recorded sessions.
// ABOUTME: Every function returns a new history slice and never mutates its input.
package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

// Find returns the session with the given id. A unique id prefix also matches.
func Find(history []models.WorkoutSession, id string) (models.WorkoutSession, error) {
	var match *models.WorkoutSession
	for i := range history {
		if history[i].ID == id {
			return history[i], nil
		}
		if id != "" && strings.HasPrefix(history[i].ID, id) {
			if match != nil {
				return models.WorkoutSession{}, fmt.Errorf("ambiguous session id prefix %q", id)
			}
			match = &history[i]
		}
	}
	if match == nil {
		return models.WorkoutSession{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return *match, nil
}

// AttachFeedback sets the feedback text on a recorded session. Feedback is
// attached once; a second attempt returns ErrFeedbackAttached.
func AttachFeedback(history []models.WorkoutSession, sessionID, text string) ([]models.WorkoutSession, error) {
	out := make([]models.WorkoutSession, len(history))
	found := false
	for i, s := range history {
		out[i] = s
		if s.ID != sessionID {
			continue
		}
		found = true
		if s.Feedback != nil {
			return history, fmt.Errorf("%w: %s", ErrFeedbackAttached, sessionID)
		}
		c := s.Clone()
		c.WithFeedback(text)
		out[i] = c
	}
	if !found {
		return history, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return out, nil
}

// Replace swaps the session whose id matches updated. Unknown ids leave the
// history unchanged.
func Replace(history []models.WorkoutSession, updated models.WorkoutSession) []models.WorkoutSession {
	out := make([]models.WorkoutSession, len(history))
	for i, s := range history {
		if s.ID == updated.ID {
			out[i] = updated.Clone()
			continue
		}
		out[i] = s
	}
	return out
}

// Recent returns up to n sessions, newest first.
func Recent(history []models.WorkoutSession, n int) []models.WorkoutSession {
	out := make([]models.WorkoutSession, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	sortNewestFirst(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// sortNewestFirst orders by date, newest first. Equal dates keep their order.
func sortNewestFirst(sessions []models.WorkoutSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
}
