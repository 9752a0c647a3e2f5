// ABOUTME: Badger key-value backend for session history.
// ABOUTME: Sessions are JSON values under session:<id>; the draft lives under a single key.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/multierr"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/session"
)

const (
	sessionPrefix = "session:"
	draftKey      = "draft"
)

// BadgerStore keeps history in an embedded Badger database.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// storedSession carries the history position alongside the session.
type storedSession struct {
	Position int                   `json:"position"`
	Session  models.WorkoutSession `json:"session"`
}

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, dir: dir}, nil
}

// Dir returns the database directory.
func (b *BadgerStore) Dir() string {
	return b.dir
}

// Load returns every stored session in insertion order.
func (b *BadgerStore) Load() ([]models.WorkoutSession, error) {
	var stored []storedSession
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(sessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var s storedSession
				if err := json.Unmarshal(val, &s); err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				stored = append(stored, s)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].Position < stored[j].Position
	})
	var sessions []models.WorkoutSession
	for _, s := range stored {
		sessions = append(sessions, s.Session)
	}
	return sessions, nil
}

// Save replaces the stored history with sessions in one transaction.
func (b *BadgerStore) Save(sessions []models.WorkoutSession) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		var existing [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(sessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			existing = append(existing, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range existing {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}

		for pos, s := range sessions {
			data, err := json.Marshal(storedSession{Position: pos, Session: s})
			if err != nil {
				return fmt.Errorf("encode session %s: %w", s.ID, err)
			}
			if err := txn.Set([]byte(sessionPrefix+s.ID), data); err != nil {
				return fmt.Errorf("put session %s: %w", s.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

// LoadDraft returns the stored draft or session.ErrNoDraft.
func (b *BadgerStore) LoadDraft() (*session.Draft, error) {
	var draft session.Draft
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(draftKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &draft)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, session.ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return &draft, nil
}

// SaveDraft stores d, replacing any previous draft.
func (b *BadgerStore) SaveDraft(d *session.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(draftKey), data)
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// ClearDraft removes the stored draft.
func (b *BadgerStore) ClearDraft() error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(draftKey))
	})
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Close runs a value-log GC pass and closes the database.
func (b *BadgerStore) Close() error {
	if b.db == nil {
		return nil
	}
	var err error
	if gcErr := b.db.RunValueLogGC(0.5); gcErr != nil && !errors.Is(gcErr, badger.ErrNoRewrite) && !errors.Is(gcErr, badger.ErrRejected) {
		err = multierr.Append(err, fmt.Errorf("value log gc: %w", gcErr))
	}
	err = multierr.Append(err, b.db.Close())
	b.db = nil
	return err
}

var _ Repository = (*BadgerStore)(nil)
