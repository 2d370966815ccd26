package services

import (
	"context"
	"time"

	"taskboard/internal/domain"
)

// Messages returned to callers when the store fails. The underlying cause is
// kept on the error but never shown.
const (
	MsgFetchFailed        = "Failed to fetch tasks"
	MsgCreateFailed       = "Failed to create task"
	MsgUpdateFailed       = "Failed to update task"
	MsgDeleteFailed       = "Failed to delete task"
	MsgExistenceCheckFail = "Failed to check task existence"
)

// Timeouts bounds each store call. A zero value disables the bound.
type Timeouts struct {
	Query time.Duration
	Write time.Duration
}

// TaskService handles task lifecycle operations
type TaskService interface {
	// ListTasks returns every task, newest first. The slice is never nil.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask validates input, applies defaults and stores the task.
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)

	// UpdateTask changes only the fields present in input.
	UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

