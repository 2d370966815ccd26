// Package postgres stores tasks in a PostgreSQL table through a pgx pool.
package postgres

import (
	"context"
	_ "embed"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/errors"
	"taskboard/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

const (
	taskEntity  = "Task"
	taskColumns = "id::text, title, description, status, created_at"
)

// Repository implements repository.Repository on PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

var _ repository.Repository = (*Repository)(nil)

// New connects to databaseURL, verifies the connection and ensures the tasks
// table exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewStoreOperationError("open database", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStoreOperationError("ping database", err)
	}

	r := NewWithPool(pool)
	if err := r.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// NewWithPool wraps an existing pool. The repository takes ownership of it.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the tasks table when it is missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return errors.NewStoreOperationError("ensure schema", err)
	}
	return nil
}

// Close releases the pool
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// Ping verifies the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return errors.NewStoreOperationError("ping", err)
	}
	return nil
}

// CreateTask inserts task and fills in the id and created_at the database assigns
func (r *Repository) CreateTask(ctx context.Context, task *repository.Task) error {
	query := `
	INSERT INTO tasks (title, description, status)
	VALUES ($1, $2, $3)
	RETURNING ` + taskColumns

	created, err := scanTask(r.pool.QueryRow(ctx, query, task.Title, task.Description, task.Status))
	if err != nil {
		return handleError("insert task", err)
	}

	task.ID = created.ID
	task.CreatedAt = created.CreatedAt
	return nil
}

// GetTask retrieves a task by ID
func (r *Repository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	if !isUUID(id) {
		return nil, errors.NewNotFoundError(taskEntity, id)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError(taskEntity, id)
		}
		return nil, handleError("select task", err)
	}
	return task, nil
}

// ListTasks retrieves all tasks, newest first
func (r *Repository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, seq DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, handleError("select tasks", err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*repository.Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, handleError("scan tasks", err)
	}
	if tasks == nil {
		tasks = []*repository.Task{}
	}
	return tasks, nil
}

// UpdateTask changes the columns set in patch and returns the stored row
func (r *Repository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	if !isUUID(id) {
		return nil, errors.NewNotFoundError(taskEntity, id)
	}

	query := `
	UPDATE tasks
	SET title = COALESCE($2, title),
		description = COALESCE($3, description),
		status = COALESCE($4, status)
	WHERE id = $1
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, toText(patch.Title), toText(patch.Description), toText(patch.Status)))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError(taskEntity, id)
		}
		return nil, handleError("update task", err)
	}
	return task, nil
}

// DeleteTask deletes a task by ID
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	if !isUUID(id) {
		return errors.NewNotFoundError(taskEntity, id)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return handleError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError(taskEntity, id)
	}
	return nil
}

func scanTask(row pgx.Row) (*repository.Task, error) {
	task := &repository.Task{}
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.CreatedAt); err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}

func toText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// handleError keeps constraint names out of the message but records them in
// the error context.
func handleError(operation string, err error) error {
	appErr := errors.NewStoreOperationError(operation, err)
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		appErr.WithContext("sqlstate", pgErr.Code)
		if pgErr.ConstraintName != "" {
			appErr.WithContext("constraint", pgErr.ConstraintName)
		}
	}
	return appErr
}
