// Package repository defines the storage contract shared by the task store
// backends.
package repository

import (
	"context"
	"time"
)

// Task is a stored task row.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
}

// TaskPatch lists the columns an update may change. Nil fields are left as
// they are.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Repository defines the interface for task storage
type Repository interface {
	// CreateTask inserts task and fills in its ID and CreatedAt.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask returns a NotFound error when no row has the id.
	GetTask(ctx context.Context, id string) (*Task, error)

	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]*Task, error)

	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// DeleteTask returns a NotFound error when nothing was deleted.
	DeleteTask(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}
