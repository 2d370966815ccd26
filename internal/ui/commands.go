package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/domain"
)

// TaskAPI is the subset of the HTTP client the board needs.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

type taskCreatedMsg struct {
	task *domain.Task
	err  error
}

// taskUpdatedMsg reports an update. fromForm is set for title and
// description edits so a failure is shown on the form.
type taskUpdatedMsg struct {
	task     *domain.Task
	err      error
	fromForm bool
}

type taskDeletedMsg struct {
	id  string
	err error
}

func loadTasksCmd(ctx context.Context, api TaskAPI) tea.Cmd {
	return func() tea.Msg {
		tasks, err := api.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func createTaskCmd(ctx context.Context, api TaskAPI, input domain.TaskInput) tea.Cmd {
	return func() tea.Msg {
		task, err := api.CreateTask(ctx, input)
		return taskCreatedMsg{task: task, err: err}
	}
}

func updateTaskCmd(ctx context.Context, api TaskAPI, id string, input domain.TaskInput, fromForm bool) tea.Cmd {
	return func() tea.Msg {
		task, err := api.UpdateTask(ctx, id, input)
		return taskUpdatedMsg{task: task, err: err, fromForm: fromForm}
	}
}

func deleteTaskCmd(ctx context.Context, api TaskAPI, id string) tea.Cmd {
	return func() tea.Msg {
		return taskDeletedMsg{id: id, err: api.DeleteTask(ctx, id)}
	}
}
