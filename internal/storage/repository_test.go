// ABOUTME: Tests for Repository implementations.
// ABOUTME: Runs the same history and draft checks against SQLite and Badger.
package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
	"github.com/harperreed/coach/internal/session"
)

var baseTime = time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func sampleHistory() []models.WorkoutSession {
	return []models.WorkoutSession{
		{
			ID:        "s-1",
			Date:      baseTime,
			RoutineID: models.RoutineA,
			TimeOfDay: models.Morning,
			Logs: []models.ExerciseLog{
				{
					ExerciseID:   "b1",
					ExerciseName: "Chest-Supported Row",
					Sets: []models.SetLog{
						{ID: "set-1", SetNumber: 1, Weight: 40, Reps: models.RepsOf(12), TargetReps: 12, Completed: true},
						{ID: "set-2", SetNumber: 1, Weight: 30, Reps: models.RepsOf(8), TargetReps: 12, Completed: true, IsDropSet: true, ParentSetID: "set-1"},
						{ID: "set-3", SetNumber: 2, Weight: 40, Reps: models.NoReps, TargetReps: 12},
					},
				},
				{ExerciseID: "b2", ExerciseName: "DB Bench Press (Flat)", Sets: []models.SetLog{}, Skipped: true},
			},
			Feedback: strPtr("Good rows."),
		},
		{
			ID:        "s-0",
			Date:      baseTime.Add(-48 * time.Hour),
			RoutineID: models.RoutineB,
			TimeOfDay: models.Night,
			Logs:      []models.ExerciseLog{},
		},
	}
}

type repoFactory struct {
	name string
	open func(t *testing.T) Repository
}

func repoFactories() []repoFactory {
	return []repoFactory{
		{"sqlite", func(t *testing.T) Repository { return setupTestDB(t) }},
		{"badger", func(t *testing.T) Repository { return setupTestBadger(t) }},
	}
}

func TestRepositoryEmptyLoad(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)
			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty history, got %d sessions", len(got))
			}
		})
	}
}

func TestRepositorySaveAndLoad(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)
			want := sampleHistory()

			if err := repo.Save(want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestRepositoryPreservesUnsetReps(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)
			if err := repo.Save(sampleHistory()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			reps := got[0].Logs[0].Sets[2].Reps
			if reps.IsSet() {
				t.Errorf("expected unset reps, got %v", reps)
			}
			zero := got[0].Logs[0].Sets[0].Reps
			if !zero.IsSet() || zero.Int() != 12 {
				t.Errorf("expected 12 reps, got %v", zero)
			}
		})
	}
}

func TestRepositorySaveReplacesHistory(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)
			if err := repo.Save(sampleHistory()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			replacement := sampleHistory()[1:]
			if err := repo.Save(replacement); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}

			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(got) != 1 || got[0].ID != "s-0" {
				t.Errorf("expected only s-0, got %+v", got)
			}
		})
	}
}

func TestRepositoryKeepsInsertionOrder(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)
			var history []models.WorkoutSession
			for _, id := range []string{"zeta", "alpha", "mid"} {
				history = append(history, models.WorkoutSession{ID: id, Date: baseTime, RoutineID: models.RoutineA, Logs: []models.ExerciseLog{}})
			}
			if err := repo.Save(history); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := repo.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			var ids []string
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			if !reflect.DeepEqual(ids, []string{"zeta", "alpha", "mid"}) {
				t.Errorf("order mismatch: %v", ids)
			}
		})
	}
}

func TestRepositoryDraftLifecycle(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.open(t)

			if _, err := repo.LoadDraft(); !errors.Is(err, session.ErrNoDraft) {
				t.Fatalf("expected ErrNoDraft, got %v", err)
			}

			draft := &session.Draft{
				Routine: models.Routine{ID: models.RoutineA, Name: "Upper", Exercises: []models.Exercise{{ID: "b1", Name: "Row", DefaultSets: 3, DefaultReps: "10-12"}}},
				Session: sampleHistory()[0],
				Index:   0,
				Recommendations: map[string]progression.Result{
					"b1": {RecommendedWeight: 45, Note: progression.NoteIncrease, Status: progression.StatusIncrease},
				},
				UpdatedAt: baseTime,
			}
			draft.Session.Feedback = nil
			draft.Session.Logs = draft.Session.Logs[:1]

			if err := repo.SaveDraft(draft); err != nil {
				t.Fatalf("SaveDraft failed: %v", err)
			}
			got, err := repo.LoadDraft()
			if err != nil {
				t.Fatalf("LoadDraft failed: %v", err)
			}
			if !reflect.DeepEqual(got, draft) {
				t.Errorf("draft mismatch:\n got %+v\nwant %+v", got, draft)
			}

			draft.Index = 0
			draft.UpdatedAt = baseTime.Add(time.Minute)
			if err := repo.SaveDraft(draft); err != nil {
				t.Fatalf("second SaveDraft failed: %v", err)
			}
			got, err = repo.LoadDraft()
			if err != nil {
				t.Fatalf("LoadDraft failed: %v", err)
			}
			if !got.UpdatedAt.Equal(baseTime.Add(time.Minute)) {
				t.Errorf("expected overwritten draft, got UpdatedAt %v", got.UpdatedAt)
			}

			if err := repo.ClearDraft(); err != nil {
				t.Fatalf("ClearDraft failed: %v", err)
			}
			if _, err := repo.LoadDraft(); !errors.Is(err, session.ErrNoDraft) {
				t.Errorf("expected ErrNoDraft after clear, got %v", err)
			}
			if err := repo.ClearDraft(); err != nil {
				t.Errorf("clearing twice should not fail: %v", err)
			}
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coach.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.Save(sampleHistory()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	got, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 sessions after reopen, got %d", len(got))
	}
}

func TestBadgerCloseTwice(t *testing.T) {
	store, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "coach.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestBadger(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
