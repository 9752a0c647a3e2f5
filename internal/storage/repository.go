// ABOUTME: Repository interface for session history storage.
// ABOUTME: History is loaded and saved as a whole; a single draft holds the session in progress.
package storage

import (
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/session"
)

// Repository defines the storage interface for session history.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Load returns every recorded session in insertion order.
	Load() ([]models.WorkoutSession, error)
	// Save replaces the stored history with sessions.
	Save(sessions []models.WorkoutSession) error

	// LoadDraft returns session.ErrNoDraft when nothing is in progress.
	LoadDraft() (*session.Draft, error)
	SaveDraft(d *session.Draft) error
	ClearDraft() error

	Close() error
}
