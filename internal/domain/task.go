package domain

import (
	"strings"
	"time"
)

// Status is the workflow bucket a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// StatusList returns the valid statuses as a comma separated list.
func StatusList() string {
	names := make([]string, 0, 3)
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Label returns the human readable column heading for the status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Next returns the status that follows s, wrapping from done back to todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask creates a new Task with the given title and the default status.
func NewTask(title, description string) Task {
	return Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      StatusTodo,
	}
}
