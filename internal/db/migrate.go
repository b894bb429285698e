package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		task       TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT,
		is_running INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,
	// At most one entry may be running at any time.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_one_running
		ON time_entries(is_running) WHERE is_running = 1`,
}
