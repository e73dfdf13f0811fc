package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateCreatesTables(t *testing.T) {
	database := openTestDB(t)

	for _, table := range []string{"clients", "projects", "tasks", "time_entries"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func seedTask(t *testing.T, database *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO clients (id, external_id, name, created_at, updated_at)
			VALUES ('c1', 'ext-c1', 'Acme', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO projects (id, external_id, name, client_id, created_at, updated_at)
			VALUES ('p1', 'ext-p1', 'Site', 'c1', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO tasks (id, external_id, name, project_id, created_at, updated_at)
			VALUES ('t1', 'ext-t1', 'Build', 'p1', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
	}
	for _, s := range stmts {
		_, err := database.Exec(s)
		require.NoError(t, err)
	}
}

func TestDeleteTaskCascadesToTimeEntries(t *testing.T) {
	database := openTestDB(t)
	seedTask(t, database)

	_, err := database.Exec(`INSERT INTO time_entries
		(id, task_id, start_time, end_time, duration_seconds, created_at, updated_at)
		VALUES ('e1', 't1', '2024-01-01T09:00:00Z', '2024-01-01T10:00:00Z', 3600,
			'2024-01-01T10:00:00Z', '2024-01-01T10:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM tasks WHERE id = 't1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&count))
	assert.Equal(t, 0, count, "deleting a task should remove its time entries")
}

func TestSingleOpenEntryIndex(t *testing.T) {
	database := openTestDB(t)
	seedTask(t, database)

	_, err := database.Exec(`INSERT INTO time_entries
		(id, task_id, start_time, created_at, updated_at)
		VALUES ('e1', 't1', '2024-01-01T09:00:00Z', '2024-01-01T09:00:00Z', '2024-01-01T09:00:00Z')`)
	require.NoError(t, err)

	// A second open row violates the partial unique index.
	_, err = database.Exec(`INSERT INTO time_entries
		(id, task_id, start_time, created_at, updated_at)
		VALUES ('e2', 't1', '2024-01-01T09:05:00Z', '2024-01-01T09:05:00Z', '2024-01-01T09:05:00Z')`)
	assert.Error(t, err)

	// Closed rows are unconstrained.
	_, err = database.Exec(`INSERT INTO time_entries
		(id, task_id, start_time, end_time, duration_seconds, created_at, updated_at)
		VALUES ('e3', 't1', '2024-01-01T07:00:00Z', '2024-01-01T08:00:00Z', 3600,
			'2024-01-01T08:00:00Z', '2024-01-01T08:00:00Z')`)
	require.NoError(t, err)
}
