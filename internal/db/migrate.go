package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies all schema statements. Statements are idempotent
// (CREATE ... IF NOT EXISTS) except the ALTER TABLE ones, whose
// "duplicate column name" errors are tolerated on re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// external_id carries the mirror key for synced rows. Local-only rows
	// store NULL so the UNIQUE index admits any number of them.
	`CREATE TABLE IF NOT EXISTS clients (
		id          TEXT PRIMARY KEY,
		external_id TEXT UNIQUE,
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                 TEXT PRIMARY KEY,
		external_id        TEXT UNIQUE,
		name               TEXT NOT NULL,
		client_id          TEXT REFERENCES clients(id) ON DELETE SET NULL,
		client_external_id TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT '',
		color              TEXT NOT NULL DEFAULT '',
		icon_type          TEXT NOT NULL DEFAULT '',
		icon_value         TEXT NOT NULL DEFAULT '',
		hourly_rate        REAL NOT NULL DEFAULT 0,
		budgeted_hours     REAL NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                  TEXT PRIMARY KEY,
		external_id         TEXT UNIQUE,
		name                TEXT NOT NULL,
		project_id          TEXT REFERENCES projects(id) ON DELETE SET NULL,
		project_external_id TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT '',
		assignee            TEXT NOT NULL DEFAULT '',
		billable            INTEGER NOT NULL DEFAULT 1,
		billed              INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	// Recorded time lives and dies with its task.
	`CREATE TABLE IF NOT EXISTS time_entries (
		id               TEXT PRIMARY KEY,
		task_id          TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		task_external_id TEXT NOT NULL DEFAULT '',
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		duration_seconds INTEGER,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,

	// Storage-level backstop for the single-active-timer invariant: the
	// partial unique index over a constant admits at most one open row.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_single_open
		ON time_entries ((1)) WHERE end_time IS NULL`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
}
