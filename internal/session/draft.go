// ABOUTME: Draft is a stored snapshot of a workout in progress.
// ABOUTME: The CLI saves one after every command and resumes from it on the next.
package session

import (
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
)

// Draft is an in-progress session persisted between invocations.
type Draft struct {
	Routine         models.Routine                `json:"routine" yaml:"routine"`
	Session         models.WorkoutSession         `json:"session" yaml:"session"`
	Index           int                           `json:"index" yaml:"index"`
	Recommendations map[string]progression.Result `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	UpdatedAt       time.Time                     `json:"updated_at" yaml:"updated_at"`
}
