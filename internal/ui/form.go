package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/domain"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// form holds the create and edit inputs. The values survive a failed submit.
type form struct {
	title       []rune
	description []rune
	focus       formField
	err         string
}

func newForm(title, description string) form {
	return form{
		title:       []rune(title),
		description: []rune(description),
	}
}

func (f *form) Title() string {
	return string(f.title)
}

func (f *form) Description() string {
	return string(f.description)
}

func (f *form) active() *[]rune {
	if f.focus == fieldDescription {
		return &f.description
	}
	return &f.title
}

func (f *form) toggleFocus() {
	if f.focus == fieldTitle {
		f.focus = fieldDescription
	} else {
		f.focus = fieldTitle
	}
}

// edit applies a text editing key and reports whether it was one.
func (f *form) edit(msg tea.KeyMsg) bool {
	field := f.active()
	switch msg.Type {
	case tea.KeyRunes:
		*field = append(*field, msg.Runes...)
	case tea.KeySpace:
		*field = append(*field, ' ')
	case tea.KeyBackspace:
		if n := len(*field); n > 0 {
			*field = (*field)[:n-1]
		}
	case tea.KeyCtrlU:
		*field = (*field)[:0]
	default:
		return false
	}
	return true
}

// input builds the request body from the trimmed fields.
func (f *form) input() domain.TaskInput {
	return domain.TaskInput{
		Title:       domain.StringPtr(strings.TrimSpace(f.Title())),
		Description: domain.StringPtr(strings.TrimSpace(f.Description())),
	}
}
