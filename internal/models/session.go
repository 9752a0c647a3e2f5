// ABOUTME: WorkoutSession, ExerciseLog and SetLog models for strength sessions.
// ABOUTME: Sessions hold per-exercise set logs; drop sets link back to their main set.
package models

import (
	"time"
)

// TimeOfDay classifies when a session started.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Night     TimeOfDay = "Night"
)

// ClassifyTimeOfDay buckets a start time: 05-11 Morning, 12-16 Afternoon, otherwise Night.
func ClassifyTimeOfDay(t time.Time) TimeOfDay {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	default:
		return Night
	}
}

// SetLog is one planned or performed set.
type SetLog struct {
	ID          string  `json:"id" yaml:"id"`
	SetNumber   int     `json:"set_number" yaml:"set_number"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Reps        Reps    `json:"reps" yaml:"reps"`
	TargetReps  int     `json:"target_reps" yaml:"target_reps"`
	Completed   bool    `json:"completed" yaml:"completed"`
	IsDropSet   bool    `json:"is_drop_set" yaml:"is_drop_set"`
	ParentSetID string  `json:"parent_set_id,omitempty" yaml:"parent_set_id,omitempty"`
}

// Volume returns weight × reps, with unset reps counting as 0.
func (s SetLog) Volume() float64 {
	return s.Weight * float64(s.Reps.Int())
}

// ExerciseLog is one exercise's record within a session.
type ExerciseLog struct {
	ExerciseID   string   `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName string   `json:"exercise_name" yaml:"exercise_name"`
	Sets         []SetLog `json:"sets" yaml:"sets"`
	Skipped      bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// MainSets returns the sets that are not drop sets.
func (l ExerciseLog) MainSets() []SetLog {
	var out []SetLog
	for _, s := range l.Sets {
		if !s.IsDropSet {
			out = append(out, s)
		}
	}
	return out
}

// WorkoutSession is one completed (or in-progress) training session.
type WorkoutSession struct {
	ID        string        `json:"id" yaml:"id"`
	Date      time.Time     `json:"date" yaml:"date"`
	RoutineID RoutineID     `json:"routine_id" yaml:"routine_id"`
	TimeOfDay TimeOfDay     `json:"time_of_day,omitempty" yaml:"time_of_day,omitempty"`
	Logs      []ExerciseLog `json:"logs" yaml:"logs"`
	Feedback  *string       `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// NewWorkoutSession creates a session for a routine starting at the given time.
func NewWorkoutSession(id string, routine Routine, startedAt time.Time) *WorkoutSession {
	logs := make([]ExerciseLog, 0, len(routine.Exercises))
	for _, ex := range routine.Exercises {
		logs = append(logs, ExerciseLog{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Sets:         []SetLog{},
		})
	}
	return &WorkoutSession{
		ID:        id,
		Date:      startedAt,
		RoutineID: routine.ID,
		TimeOfDay: ClassifyTimeOfDay(startedAt),
		Logs:      logs,
	}
}

// WithFeedback sets the feedback text.
func (s *WorkoutSession) WithFeedback(text string) *WorkoutSession {
	s.Feedback = &text
	return s
}

// Log returns the log for an exercise, if present.
func (s *WorkoutSession) Log(exerciseID string) (*ExerciseLog, bool) {
	for i := range s.Logs {
		if s.Logs[i].ExerciseID == exerciseID {
			return &s.Logs[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can amend history without aliasing.
func (s WorkoutSession) Clone() WorkoutSession {
	out := s
	if s.Feedback != nil {
		fb := *s.Feedback
		out.Feedback = &fb
	}
	out.Logs = make([]ExerciseLog, len(s.Logs))
	for i, l := range s.Logs {
		out.Logs[i] = l
		out.Logs[i].Sets = make([]SetLog, len(l.Sets))
		copy(out.Logs[i].Sets, l.Sets)
	}
	return out
}
