package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

// MsgNoTasks is shown instead of the columns when the list is empty.
const MsgNoTasks = "No tasks yet"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	columnStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	formStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusTodo:       lipgloss.Color("250"),
		domain.StatusInProgress: lipgloss.Color("39"),
		domain.StatusDone:       lipgloss.Color("42"),
	}
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskboard"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeCreate:
		b.WriteString(m.viewForm("New task"))
		b.WriteString("\n")
	case modeEdit:
		b.WriteString(m.viewForm("Edit task"))
		b.WriteString("\n")
	}

	switch {
	case m.state.Loading:
		b.WriteString("Loading tasks...\n")
	case m.state.Err != "":
		b.WriteString(errorStyle.Render("Error loading tasks"))
		b.WriteString("\n")
		b.WriteString(m.state.Err)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("press r to try again"))
		b.WriteString("\n")
	case m.state.Empty():
		b.WriteString(mutedStyle.Render(MsgNoTasks))
		b.WriteString("\n")
	default:
		b.WriteString(m.viewColumns())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewColumns() string {
	width := (m.width - 6) / 3
	if width < 20 {
		width = 20
	}

	buckets := m.state.Buckets()
	columns := make([]string, 0, len(buckets))
	for i, bucket := range buckets {
		columns = append(columns, columnStyle.Width(width).Render(m.viewBucket(i, bucket, width-2)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) viewBucket(col int, bucket board.Bucket, width int) string {
	var b strings.Builder
	heading := lipgloss.NewStyle().Foreground(statusColors[bucket.Status]).Inherit(headerStyle)
	b.WriteString(heading.Render(fmt.Sprintf("%s (%d)", bucket.Label, bucket.Count())))
	b.WriteString("\n")

	for row, task := range bucket.Tasks {
		line := truncate(task.Title, width)
		if col == m.col && row == m.row && m.mode == modeBrowse {
			line = selectedStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
		if task.Description != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(truncate(task.Description, width)))
		}
	}
	return b.String()
}

func (m *Model) viewForm(heading string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n")
	b.WriteString(formLine("Title", m.form.Title(), m.form.focus == fieldTitle))
	b.WriteString("\n")
	b.WriteString(formLine("Description", m.form.Description(), m.form.focus == fieldDescription))
	if m.form.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.form.err))
	}
	if m.pending > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Saving..."))
	}
	return formStyle.Render(b.String())
}

func formLine(label, value string, focused bool) string {
	cursor := " "
	if focused {
		cursor = "_"
	}
	return fmt.Sprintf("%-12s %s%s", label+":", value, cursor)
}

func (m *Model) viewFooter() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, errorStyle.Render(m.notice))
	}

	switch m.mode {
	case modeConfirmDelete:
		title := ""
		if task, ok := m.state.Find(m.editingID); ok {
			title = task.Title
		}
		lines = append(lines, fmt.Sprintf("Delete %q? y to confirm, any other key to cancel", title))
	case modeCreate, modeEdit:
		lines = append(lines, mutedStyle.Render("enter next/save | tab switch field | esc cancel"))
	default:
		if m.pending > 0 {
			lines = append(lines, mutedStyle.Render("Working..."))
		}
		lines = append(lines, mutedStyle.Render("n new | e edit | s cycle status | 1/2/3 set status | d delete | r reload | q quit"))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
