// ABOUTME: Draft persistence for SQLite storage.
// ABOUTME: The single in-progress session is kept as a JSON document in the drafts table.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/session"
)

// LoadDraft returns the stored draft or session.ErrNoDraft.
func (d *DB) LoadDraft() (*session.Draft, error) {
	var data string
	err := d.db.QueryRow("SELECT data FROM drafts WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var draft session.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

// SaveDraft stores d, replacing any previous draft.
func (d *DB) SaveDraft(draft *session.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO drafts (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data), draft.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// ClearDraft removes the stored draft. Clearing when none exists is not an error.
func (d *DB) ClearDraft() error {
	if _, err := d.db.Exec("DELETE FROM drafts WHERE id = 1"); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
