// ABOUTME: Data migration between coach storage backends.
// ABOUTME: Copies session history and any in-progress draft from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/harperreed/coach/internal/session"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Sessions int
	Sets     int
	Draft    bool
}

// MigrateData copies all data from src to dst storage. The destination must
// not already hold any sessions.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	existing, err := dst.Load()
	if err != nil {
		return nil, fmt.Errorf("load destination sessions: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("destination already has %d sessions", len(existing))
	}

	sessions, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load source sessions: %w", err)
	}
	if err := dst.Save(sessions); err != nil {
		return nil, fmt.Errorf("save destination sessions: %w", err)
	}

	summary := &MigrateSummary{Sessions: len(sessions)}
	for _, s := range sessions {
		for _, l := range s.Logs {
			summary.Sets += len(l.Sets)
		}
	}

	draft, err := src.LoadDraft()
	switch {
	case errors.Is(err, session.ErrNoDraft):
	case err != nil:
		return nil, fmt.Errorf("load source draft: %w", err)
	default:
		if err := dst.SaveDraft(draft); err != nil {
			return nil, fmt.Errorf("save destination draft: %w", err)
		}
		summary.Draft = true
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
