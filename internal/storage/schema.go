// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for sessions, exercise_logs, set_logs and the draft.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		date TEXT NOT NULL,
		routine_id TEXT NOT NULL,
		time_of_day TEXT,
		feedback TEXT
	);

	CREATE TABLE IF NOT EXISTS exercise_logs (
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		skipped INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (session_id, position),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS set_logs (
		session_id TEXT NOT NULL,
		log_position INTEGER NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER,
		target_reps INTEGER NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		is_drop_set INTEGER NOT NULL DEFAULT 0,
		parent_set_id TEXT,
		PRIMARY KEY (session_id, log_position, position),
		FOREIGN KEY (session_id, log_position) REFERENCES exercise_logs(session_id, position) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS drafts (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_position ON sessions(position);
	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date DESC);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_exercise ON exercise_logs(exercise_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
