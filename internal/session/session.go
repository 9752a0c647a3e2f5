// ABOUTME: Live workout session controller: navigation, skipping, per-exercise editors and finishing.
// ABOUTME: Owns one in-progress WorkoutSession and hands out a fresh set-log editor per exercise.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/ids"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
	"github.com/harperreed/coach/internal/setlog"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrFeedbackAttached = errors.New("feedback already attached")
	ErrNotRecorded      = errors.New("routine is not recorded in history")
	ErrNoDraft          = errors.New("no session in progress")
)

// Step describes the exercise the session is currently on.
type Step struct {
	Index          int                `json:"index"`
	Total          int                `json:"total"`
	Exercise       models.Exercise    `json:"exercise"`
	Log            models.ExerciseLog `json:"log"`
	Recommendation progression.Result `json:"recommendation"`
}

// IsLast reports whether this is the final exercise of the routine.
func (s Step) IsLast() bool {
	return s.Index == s.Total-1
}

// Session is a workout in progress. It has a single owner.
type Session struct {
	routine models.Routine
	workout models.WorkoutSession
	recs    map[string]progression.Result
	index   int
	gen     ids.Generator
	editor  *setlog.Editor
}

// Start begins a routine at now, computing a recommendation per exercise from history.
func Start(routine models.Routine, history []models.WorkoutSession, now time.Time, gen ids.Generator) *Session {
	if gen == nil {
		gen = ids.UUID{}
	}
	return &Session{
		routine: routine,
		workout: *models.NewWorkoutSession(gen.NewID(), routine, now),
		recs:    progression.RecommendAll(routine.Exercises, history),
		gen:     gen,
	}
}

// Resume rebuilds a session from a stored draft. Missing recommendations are
// recomputed from history.
func Resume(d *Draft, history []models.WorkoutSession, gen ids.Generator) (*Session, error) {
	if d == nil {
		return nil, ErrNoDraft
	}
	if len(d.Routine.Exercises) != len(d.Session.Logs) {
		return nil, fmt.Errorf("draft %s: routine has %d exercises but session has %d logs",
			d.Session.ID, len(d.Routine.Exercises), len(d.Session.Logs))
	}
	if gen == nil {
		gen = ids.UUID{}
	}

	recs := d.Recommendations
	if recs == nil {
		recs = progression.RecommendAll(d.Routine.Exercises, history)
	}
	index := d.Index
	if index < 0 || index >= len(d.Session.Logs) {
		index = 0
	}

	return &Session{
		routine: d.Routine,
		workout: d.Session.Clone(),
		recs:    recs,
		index:   index,
		gen:     gen,
	}, nil
}

// ID returns the workout id.
func (s *Session) ID() string {
	return s.workout.ID
}

// Routine returns the routine being performed.
func (s *Session) Routine() models.Routine {
	return s.routine
}

// Workout returns a copy of the session as recorded so far.
func (s *Session) Workout() models.WorkoutSession {
	return s.workout.Clone()
}

// Recommendation returns the recommendation computed at start for an exercise.
func (s *Session) Recommendation(exerciseID string) progression.Result {
	if r, ok := s.recs[exerciseID]; ok {
		return r
	}
	return progression.Calibration
}

// Current returns the exercise the session is on.
func (s *Session) Current() Step {
	if len(s.routine.Exercises) == 0 {
		return Step{}
	}
	ex := s.routine.Exercises[s.index]
	log := s.workout.Logs[s.index]
	log.Sets = append([]models.SetLog{}, log.Sets...)
	return Step{
		Index:          s.index,
		Total:          len(s.routine.Exercises),
		Exercise:       ex,
		Log:            log,
		Recommendation: s.Recommendation(ex.ID),
	}
}

// Next moves to the following exercise. It reports false on the last one.
func (s *Session) Next() bool {
	return s.moveTo(s.index + 1)
}

// Prev moves to the previous exercise. It reports false on the first one.
func (s *Session) Prev() bool {
	return s.moveTo(s.index - 1)
}

// Skip marks the current exercise skipped and advances unless it is the last.
func (s *Session) Skip() {
	if len(s.workout.Logs) == 0 {
		return
	}
	s.workout.Logs[s.index].Skipped = true
	s.Next()
}

// Editor returns the set-log editor for the current exercise. A new editor is
// created whenever the current exercise changes.
func (s *Session) Editor() *setlog.Editor {
	if len(s.routine.Exercises) == 0 {
		return nil
	}
	if s.editor == nil {
		ex := s.routine.Exercises[s.index]
		s.editor = setlog.New(ex, s.workout.Logs[s.index].Sets, s.Recommendation(ex.ID), s.gen)
		// Default sets exist from the moment the exercise is opened.
		s.workout.Logs[s.index].Sets = s.editor.Sets()
	}
	return s.editor
}

// Apply stores an editor result as the current exercise's set sequence.
func (s *Session) Apply(sets []models.SetLog) {
	if len(s.workout.Logs) == 0 {
		return
	}
	out := make([]models.SetLog, len(sets))
	copy(out, sets)
	s.workout.Logs[s.index].Sets = out
}

// Finish returns history with this session appended. Warmup routines are
// never recorded and return ErrNotRecorded.
func (s *Session) Finish(history []models.WorkoutSession) ([]models.WorkoutSession, models.WorkoutSession, error) {
	if s.routine.ID == models.RoutineWarmup {
		return history, models.WorkoutSession{}, ErrNotRecorded
	}
	done := s.workout.Clone()
	out := make([]models.WorkoutSession, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, done)
	return out, done, nil
}

// Draft captures the session so it can be stored and resumed later.
func (s *Session) Draft(now time.Time) *Draft {
	recs := make(map[string]progression.Result, len(s.recs))
	for k, v := range s.recs {
		recs[k] = v
	}
	return &Draft{
		Routine:         s.routine,
		Session:         s.workout.Clone(),
		Index:           s.index,
		Recommendations: recs,
		UpdatedAt:       now,
	}
}

func (s *Session) moveTo(i int) bool {
	if i < 0 || i >= len(s.routine.Exercises) {
		return false
	}
	s.index = i
	s.editor = nil
	return true
}
