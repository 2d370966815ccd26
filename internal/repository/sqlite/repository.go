package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite/migrations"
)

const (
	taskEntity  = "Task"
	taskColumns = "id, title, description, status, created_at"

	busyTimeoutMillis = 5000
)

// SQLiteRepository implements repository.Repository on an embedded SQLite file
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithClock overrides the clock used to stamp created_at.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		r.now = now
	}
}

// New creates a new SQLite repository instance and brings its schema up to date
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStoreOperationError("open database", err)
	}

	// SQLite allows one writer at a time; a single connection also keeps
	// :memory: databases alive for the lifetime of the repository.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMillis)); err != nil {
		db.Close()
		return nil, errors.NewStoreOperationError("configure database", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStoreOperationError("run migrations", err)
	}

	r := &SQLiteRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database is reachable
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	id := uuid.NewString()
	createdAt := r.now().UTC()

	query := `
	INSERT INTO tasks (id, title, description, status, created_at)
	VALUES (?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, "insert task", query, id, task.Title, task.Description, task.Status, FormatTimeForDB(createdAt)); err != nil {
		return err
	}

	task.ID = id
	task.CreatedAt = createdAt
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, taskEntity, id, id)
}

// ListTasks retrieves all tasks, newest first. Rows created within the same
// instant fall back to insertion order.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, rowid DESC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// UpdateTask changes the columns set in patch and returns the stored row
func (r *SQLiteRepository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	if !patch.IsEmpty() {
		query := `
		UPDATE tasks
		SET title = COALESCE(?, title),
			description = COALESCE(?, description),
			status = COALESCE(?, status)
		WHERE id = ?`

		err := ExecuteWithRowsAffected(ctx, r.db, query, taskEntity, id,
			nullableString(patch.Title), nullableString(patch.Description), nullableString(patch.Status), id)
		if err != nil {
			return nil, err
		}
	}

	return r.GetTask(ctx, id)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, taskEntity, id, id)
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
