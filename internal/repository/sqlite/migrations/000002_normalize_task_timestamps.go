package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// createdAtLayout must match the layout the repository writes.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

func init() {
	RegisterGoMigration(2, Up_000002_normalize_task_timestamps, Down_000002_normalize_task_timestamps)
}

// Up_000002_normalize_task_timestamps rewrites created_at values that were not
// written by the repository (hand inserts, sqlite CURRENT_TIMESTAMP, RFC3339
// with offsets) into the fixed width UTC layout so that ordering by the column
// stays chronological.
func Up_000002_normalize_task_timestamps(ctx context.Context, tx *sql.Tx) error {
	type row struct {
		id        string
		createdAt string
	}
	var rows []row

	// Read all rows into memory first to avoid locking issues
	result, err := tx.QueryContext(ctx, "SELECT id, created_at FROM tasks")
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	for result.Next() {
		var r row
		if err := result.Scan(&r.id, &r.createdAt); err != nil {
			result.Close()
			return fmt.Errorf("failed to scan task row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		result.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	result.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE tasks SET created_at = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare created_at update statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		normalized, err := normalizeTimestamp(r.createdAt)
		if err != nil {
			return fmt.Errorf("task %s: %w", r.id, err)
		}
		if normalized == r.createdAt {
			continue
		}
		if _, err := stmt.ExecContext(ctx, normalized, r.id); err != nil {
			return fmt.Errorf("failed to update created_at for task %s: %w", r.id, err)
		}
	}

	return nil
}

// Down_000002_normalize_task_timestamps is a no-op: the normalized values are
// still valid timestamps for the previous schema.
func Down_000002_normalize_task_timestamps(ctx context.Context, tx *sql.Tx) error {
	return nil
}

// normalizeTimestamp parses the formats sqlite and Go commonly produce and
// renders them in createdAtLayout.
func normalizeTimestamp(value string) (string, error) {
	value = stripMonotonicSuffix(strings.TrimSpace(value))

	layouts := []string{
		createdAtLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(createdAtLayout), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", value)
}

// stripMonotonicSuffix removes the monotonic clock suffix from Go time strings.
func stripMonotonicSuffix(value string) string {
	if idx := strings.Index(value, " m="); idx != -1 {
		return value[:idx]
	}
	return value
}
