// Package ui provides the terminal task board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

type mode int

const (
	modeBrowse mode = iota
	modeCreate
	modeEdit
	modeConfirmDelete
)

// Run starts the board against api and blocks until the user quits.
func Run(ctx context.Context, api TaskAPI, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}

	program := tea.NewProgram(NewModel(ctx, api, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model of the board.
type Model struct {
	ctx    context.Context
	api    TaskAPI
	logger *log.Logger

	state board.State
	mode  mode
	form  form

	// selection
	col int
	row int

	// editingID is the task behind modeEdit and modeConfirmDelete.
	editingID string
	notice    string

	// pending counts requests still in flight.
	pending int

	width int
}

// NewModel creates a board model. Nothing is fetched until Init.
func NewModel(ctx context.Context, api TaskAPI, logger *log.Logger) *Model {
	return &Model{
		ctx:    ctx,
		api:    api,
		logger: logger,
		width:  96,
	}
}

// State returns the current client side task list.
func (m *Model) State() board.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	m.state.StartLoading()
	return loadTasksCmd(m.ctx, m.api)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("load tasks failed", "err", msg.err)
		}
		m.state.Loaded(msg.tasks, msg.err)
		m.clampSelection()
		return m, nil

	case taskCreatedMsg:
		m.pending--
		if msg.err != nil {
			m.logger.Warn("create task failed", "err", msg.err)
			m.form.err = msg.err.Error()
			return m, nil
		}
		m.state.Created(*msg.task)
		m.mode = modeBrowse
		m.form = form{}
		m.selectTask(msg.task.ID)
		return m, nil

	case taskUpdatedMsg:
		m.pending--
		if msg.err != nil {
			m.logger.Warn("update task failed", "err", msg.err)
			if msg.fromForm {
				m.form.err = msg.err.Error()
			} else {
				m.notice = msg.err.Error()
			}
			return m, nil
		}
		m.state.Updated(*msg.task)
		if msg.fromForm {
			m.mode = modeBrowse
			m.form = form{}
			m.editingID = ""
		}
		m.selectTask(msg.task.ID)
		return m, nil

	case taskDeletedMsg:
		m.pending--
		if msg.err != nil {
			m.logger.Warn("delete task failed", "id", msg.id, "err", msg.err)
			m.notice = msg.err.Error()
			return m, nil
		}
		m.state.Deleted(msg.id)
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCreate, modeEdit:
			return m, m.updateForm(msg)
		case modeConfirmDelete:
			return m, m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if m.state.Loading {
			return m, nil
		}
		m.notice = ""
		return m, m.reload()
	case "n":
		m.mode = modeCreate
		m.form = form{}
		m.notice = ""
		return m, nil
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	case "left", "h":
		m.moveCol(-1)
	case "right", "l", "tab":
		m.moveCol(1)
	}

	task, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "e":
		m.mode = modeEdit
		m.editingID = task.ID
		m.form = newForm(task.Title, task.Description)
		m.notice = ""
	case "d":
		m.mode = modeConfirmDelete
		m.editingID = task.ID
		m.notice = ""
	case "s":
		return m, m.changeStatus(task, task.Status.Next())
	case "1", "2", "3":
		statuses := domain.Statuses()
		return m, m.changeStatus(task, statuses[msg.String()[0]-'1'])
	}
	return m, nil
}

func (m *Model) changeStatus(task domain.Task, status domain.Status) tea.Cmd {
	if task.Status == status {
		return nil
	}
	m.pending++
	m.notice = ""
	s := string(status)
	return updateTaskCmd(m.ctx, m.api, task.ID, domain.TaskInput{Status: &s}, false)
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancelling drops the edited values; the task itself was never touched.
		m.mode = modeBrowse
		m.form = form{}
		m.editingID = ""
		return nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.form.toggleFocus()
		return nil
	case tea.KeyEnter:
		if m.form.focus == fieldTitle {
			m.form.focus = fieldDescription
			return nil
		}
		return m.submitForm()
	}

	if m.form.edit(msg) {
		m.form.err = ""
	}
	return nil
}

func (m *Model) submitForm() tea.Cmd {
	editing := m.mode == modeEdit
	if msg := board.CheckTitle(m.form.Title(), editing); msg != "" {
		m.form.err = msg
		m.form.focus = fieldTitle
		return nil
	}

	m.pending++
	m.form.err = ""
	if editing {
		return updateTaskCmd(m.ctx, m.api, m.editingID, m.form.input(), true)
	}
	return createTaskCmd(m.ctx, m.api, m.form.input())
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	id := m.editingID
	m.mode = modeBrowse
	m.editingID = ""

	if msg.String() != "y" {
		return nil
	}
	m.pending++
	return deleteTaskCmd(m.ctx, m.api, id)
}

func (m *Model) selected() (domain.Task, bool) {
	buckets := m.state.Buckets()
	if m.col < 0 || m.col >= len(buckets) {
		return domain.Task{}, false
	}
	tasks := buckets[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.row], true
}

func (m *Model) selectTask(id string) {
	for c, b := range m.state.Buckets() {
		for r, t := range b.Tasks {
			if t.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
	m.clampSelection()
}

func (m *Model) moveRow(delta int) {
	m.row += delta
	m.clampSelection()
}

func (m *Model) moveCol(delta int) {
	n := len(domain.Statuses())
	m.col = (m.col + delta + n) % n
	m.clampSelection()
}

func (m *Model) clampSelection() {
	buckets := m.state.Buckets()
	if m.col >= len(buckets) {
		m.col = len(buckets) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	count := buckets[m.col].Count()
	if m.row >= count {
		m.row = count - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
