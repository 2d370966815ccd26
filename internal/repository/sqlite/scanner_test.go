package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/repository"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = ts.data[i].(string)
		default:
			return errors.New("unsupported destination")
		}
	}

	return nil
}

// TestRows implements the Rows interface over a list of scanners
type TestRows struct {
	rows    []*TestScanner
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	if tr.current >= len(tr.rows) {
		return false
	}
	tr.current++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.current-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func taskRow(id, title, description, status, createdAt string) *TestScanner {
	return &TestScanner{data: []interface{}{id, title, description, status, createdAt}}
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *repository.Task
		expectError bool
	}{
		{
			name:    "Valid task",
			scanner: taskRow("abc", "Fix bug", "in parser", "in_progress", "2024-01-15T10:00:00.000000000Z"),
			expected: &repository.Task{
				ID:          "abc",
				Title:       "Fix bug",
				Description: "in parser",
				Status:      "in_progress",
				CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name:        "Invalid created_at",
			scanner:     taskRow("abc", "Fix bug", "", "todo", "last tuesday"),
			expectError: true,
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestScanTask_PropagatesErrNoRows(t *testing.T) {
	_, err := ScanTask(&TestScanner{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScanTasks(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{
		taskRow("1", "First", "", "todo", "2024-01-15T10:00:00.000000000Z"),
		taskRow("2", "Second", "", "done", "2024-01-14T10:00:00.000000000Z"),
	}}

	tasks, err := ScanTasks(rows)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "Second", tasks[1].Title)
}

func TestScanTasks_Empty(t *testing.T) {
	tasks, err := ScanTasks(&TestRows{})

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestScanTasks_RowsError(t *testing.T) {
	rows := &TestRows{err: errors.New("connection lost")}

	tasks, err := ScanTasks(rows)

	assert.EqualError(t, err, "connection lost")
	assert.Nil(t, tasks)
}

func TestScanTasks_ScanError(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{{err: errors.New("bad row")}}}

	_, err := ScanTasks(rows)

	assert.EqualError(t, err, "bad row")
}
