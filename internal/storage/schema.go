// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for workouts, exercises, sets, measurements and personal records.
package storage

import "context"

// initSchema creates or updates the database schema. Every table carries
// the sync-ready columns (user_id, sync_status, deleted) so a future sync
// engine can be wired in without a migration; the core itself only ever
// reads rows with deleted = 0 and hard-deletes.
func (d *DB) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT,
		date DATETIME NOT NULL,
		duration INTEGER DEFAULT 0,
		notes TEXT,
		status TEXT DEFAULT 'completed',
		muscle_groups TEXT,
		exercises_count INTEGER DEFAULT 0,
		sets_count INTEGER DEFAULT 0,
		total_volume REAL DEFAULT 0,
		user_id TEXT DEFAULT '',
		sync_status TEXT DEFAULT 'pending',
		deleted INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		name TEXT NOT NULL,
		muscle_group TEXT,
		order_index INTEGER DEFAULT 0,
		notes TEXT,
		user_id TEXT DEFAULT '',
		sync_status TEXT DEFAULT 'pending',
		deleted INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sets (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		weight REAL NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN DEFAULT 1,
		rest_time INTEGER,
		notes TEXT,
		user_id TEXT DEFAULT '',
		sync_status TEXT DEFAULT 'pending',
		deleted INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS measurements (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		weight REAL,
		body_fat REAL,
		chest REAL,
		waist REAL,
		hips REAL,
		arms REAL,
		thighs REAL,
		calves REAL,
		neck REAL,
		notes TEXT,
		user_id TEXT DEFAULT '',
		sync_status TEXT DEFAULT 'pending',
		deleted INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS personal_records (
		id TEXT PRIMARY KEY,
		exercise_name TEXT NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER,
		date DATETIME NOT NULL,
		notes TEXT,
		user_id TEXT DEFAULT '',
		sync_status TEXT DEFAULT 'pending',
		deleted INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);
	CREATE INDEX IF NOT EXISTS idx_exercises_workout_id ON exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise_id ON sets(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_measurements_date ON measurements(date);
	`

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return &QueryError{Statement: "create schema", Err: err}
	}
	return nil
}
