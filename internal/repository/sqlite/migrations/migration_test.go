package migrations

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(ctx, db))

	var versions []int
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		versions = append(versions, v)
	}
	assert.Equal(t, []int{1, 2}, versions)

	_, err = db.Exec(`INSERT INTO tasks (id, title, created_at) VALUES ('a', 'First', '2024-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)

	var description, status string
	require.NoError(t, db.QueryRow("SELECT description, status FROM tasks WHERE id = 'a'").Scan(&description, &status))
	assert.Equal(t, "", description)
	assert.Equal(t, "todo", status)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestTasksSchema_RejectsInvalidRows(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, RunMigrations(context.Background(), db))

	_, err := db.Exec(`INSERT INTO tasks (id, title, status, created_at) VALUES ('a', 'Title', 'blocked', '2024-01-01T00:00:00.000000000Z')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, title, created_at) VALUES ('b', '   ', '2024-01-01T00:00:00.000000000Z')`)
	assert.Error(t, err)
}

func TestNormalizeTimestampsMigration(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	_, err := db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, title TEXT, created_at TEXT)`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO tasks (id, title, created_at) VALUES
		('a', 'go default', '2025-06-23 11:47:24.890799237 +0100 BST m=+0.002409088'),
		('b', 'sqlite', '2025-06-23 11:20:10'),
		('c', 'rfc3339', '2025-06-23T11:20:10+01:00'),
		('d', 'canonical', '2025-06-23T10:20:10.000000000Z')
	`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, Up_000002_normalize_task_timestamps(ctx, tx))
	require.NoError(t, tx.Commit())

	expected := map[string]string{
		"a": "2025-06-23T10:47:24.890799237Z",
		"b": "2025-06-23T11:20:10.000000000Z",
		"c": "2025-06-23T10:20:10.000000000Z",
		"d": "2025-06-23T10:20:10.000000000Z",
	}
	for id, want := range expected {
		var got string
		require.NoError(t, db.QueryRow("SELECT created_at FROM tasks WHERE id = ?", id).Scan(&got))
		assert.Equal(t, want, got, "task %s", id)
	}
}

func TestNormalizeTimestampsMigration_UnparseableValue(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	_, err := db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, title TEXT, created_at TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, title, created_at) VALUES ('a', 'bad', 'yesterday')`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = Up_000002_normalize_task_timestamps(ctx, tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse time format")
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemoryDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)

	if !strings.Contains(err.Error(), "database is in a dirty state") {
		t.Errorf("expected error to mention dirty state, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed migration(s): [1]") {
		t.Errorf("expected error to mention failed migration version 1, got: %v", err)
	}
}

func TestRunMigrations_FailedMigrationMarksDirty(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	// A pre-existing table with bad data makes migration 2 fail.
	require.NoError(t, createMigrationsTable(ctx, db))
	_, err := db.Exec("INSERT INTO migrations (version) VALUES (1)")
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, title TEXT, created_at TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, title, created_at) VALUES ('a', 'bad', 'not a time')`)
	require.NoError(t, err)

	err = RunMigrations(ctx, db)
	require.Error(t, err)

	dirty, err := getDirtyMigrations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, dirty)
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_tasks.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}
