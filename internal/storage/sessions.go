// ABOUTME: Session history load and save for SQLite storage.
// ABOUTME: Save replaces the whole history in one transaction; Load rebuilds it in insertion order.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/models"
)

type logKey struct {
	sessionID string
	position  int
}

// Load returns every stored session in insertion order.
func (d *DB) Load() ([]models.WorkoutSession, error) {
	rows, err := d.db.Query(`
		SELECT id, date, routine_id, time_of_day, feedback
		FROM sessions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	index := make(map[string]int)
	for rows.Next() {
		var (
			s         models.WorkoutSession
			date      string
			timeOfDay sql.NullString
			feedback  sql.NullString
		)
		if err := rows.Scan(&s.ID, &date, &s.RoutineID, &timeOfDay, &feedback); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("parse session %s date: %w", s.ID, err)
		}
		s.TimeOfDay = models.TimeOfDay(timeOfDay.String)
		if feedback.Valid {
			s.WithFeedback(feedback.String)
		}
		s.Logs = []models.ExerciseLog{}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if err := d.loadLogs(sessions, index); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (d *DB) loadLogs(sessions []models.WorkoutSession, index map[string]int) error {
	rows, err := d.db.Query(`
		SELECT session_id, position, exercise_id, exercise_name, skipped
		FROM exercise_logs
		ORDER BY session_id, position
	`)
	if err != nil {
		return fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	type logRef struct{ session, log int }
	logs := make(map[logKey]logRef)
	for rows.Next() {
		var (
			key logKey
			l   models.ExerciseLog
		)
		if err := rows.Scan(&key.sessionID, &key.position, &l.ExerciseID, &l.ExerciseName, &l.Skipped); err != nil {
			return fmt.Errorf("scan exercise log: %w", err)
		}
		i, ok := index[key.sessionID]
		if !ok {
			continue
		}
		l.Sets = []models.SetLog{}
		logs[key] = logRef{session: i, log: len(sessions[i].Logs)}
		sessions[i].Logs = append(sessions[i].Logs, l)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate exercise logs: %w", err)
	}

	setRows, err := d.db.Query(`
		SELECT session_id, log_position, id, set_number, weight, reps, target_reps,
		       completed, is_drop_set, parent_set_id
		FROM set_logs
		ORDER BY session_id, log_position, position
	`)
	if err != nil {
		return fmt.Errorf("list set logs: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			key    logKey
			s      models.SetLog
			reps   sql.NullInt64
			parent sql.NullString
		)
		if err := setRows.Scan(&key.sessionID, &key.position, &s.ID, &s.SetNumber, &s.Weight, &reps,
			&s.TargetReps, &s.Completed, &s.IsDropSet, &parent); err != nil {
			return fmt.Errorf("scan set log: %w", err)
		}
		if reps.Valid {
			s.Reps = models.RepsOf(int(reps.Int64))
		}
		s.ParentSetID = parent.String
		if ref, ok := logs[key]; ok {
			l := &sessions[ref.session].Logs[ref.log]
			l.Sets = append(l.Sets, s)
		}
	}
	if err := setRows.Err(); err != nil {
		return fmt.Errorf("iterate set logs: %w", err)
	}
	return nil
}

// Save replaces the stored history with sessions.
func (d *DB) Save(sessions []models.WorkoutSession) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// CASCADE is enabled, so this clears logs and sets too.
	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	insertSession, err := tx.Prepare(`
		INSERT INTO sessions (id, position, date, routine_id, time_of_day, feedback)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare session insert: %w", err)
	}
	defer insertSession.Close()

	insertLog, err := tx.Prepare(`
		INSERT INTO exercise_logs (session_id, position, exercise_id, exercise_name, skipped)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare exercise log insert: %w", err)
	}
	defer insertLog.Close()

	insertSet, err := tx.Prepare(`
		INSERT INTO set_logs (session_id, log_position, position, id, set_number, weight, reps,
		                      target_reps, completed, is_drop_set, parent_set_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare set log insert: %w", err)
	}
	defer insertSet.Close()

	for pos, s := range sessions {
		if _, err := insertSession.Exec(s.ID, pos, s.Date.Format(time.RFC3339Nano), string(s.RoutineID),
			nullString(string(s.TimeOfDay)), s.Feedback); err != nil {
			return fmt.Errorf("insert session %s: %w", s.ID, err)
		}
		for li, l := range s.Logs {
			if _, err := insertLog.Exec(s.ID, li, l.ExerciseID, l.ExerciseName, l.Skipped); err != nil {
				return fmt.Errorf("insert exercise log %s/%s: %w", s.ID, l.ExerciseID, err)
			}
			for si, set := range l.Sets {
				var reps any
				if set.Reps.IsSet() {
					reps = set.Reps.Int()
				}
				if _, err := insertSet.Exec(s.ID, li, si, set.ID, set.SetNumber, set.Weight, reps,
					set.TargetReps, set.Completed, set.IsDropSet, nullString(set.ParentSetID)); err != nil {
					return fmt.Errorf("insert set %s: %w", set.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
