// ABOUTME: Exercise and Routine reference data.
// ABOUTME: Exercises are immutable definitions shared by every session.
package models

// RoutineID identifies one of the fixed training routines.
type RoutineID string

const (
	RoutineA        RoutineID = "A"
	RoutineB        RoutineID = "B"
	RoutineFinisher RoutineID = "Finisher"
	RoutineWarmup   RoutineID = "Warmup"
)

// AllRoutineIDs lists the valid routine identifiers.
var AllRoutineIDs = []RoutineID{RoutineA, RoutineB, RoutineFinisher, RoutineWarmup}

// IsValidRoutineID checks if a string names a known routine.
func IsValidRoutineID(s string) bool {
	for _, id := range AllRoutineIDs {
		if string(id) == s {
			return true
		}
	}
	return false
}

// Exercise is a static exercise definition.
type Exercise struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	DefaultSets int    `json:"default_sets" yaml:"default_sets"`
	DefaultReps string `json:"default_reps" yaml:"default_reps"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
	IsWarmup    bool   `json:"is_warmup,omitempty" yaml:"is_warmup,omitempty"`
	HideWeight  bool   `json:"hide_weight,omitempty" yaml:"hide_weight,omitempty"`
}

// Routine is an ordered list of exercises performed together.
type Routine struct {
	ID        RoutineID  `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}
