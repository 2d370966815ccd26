// Package board holds the client side task list and reconciles it with the
// results of API calls without refetching.
package board

import (
	"strings"

	"taskboard/internal/domain"
)

// Client side title messages.
const (
	MsgTitleRequired = "Title is required"
	MsgTitleEmpty    = "Title cannot be empty"
)

// State is the task list as the client last saw it.
type State struct {
	Tasks   []domain.Task
	Loading bool
	Err     string
}

// Bucket is one status column.
type Bucket struct {
	Status domain.Status
	Label  string
	Tasks  []domain.Task
}

// Count returns the number of tasks in the bucket.
func (b Bucket) Count() int {
	return len(b.Tasks)
}

// StartLoading marks a fetch as outstanding and clears the last error.
func (s *State) StartLoading() {
	s.Loading = true
	s.Err = ""
}

// Loaded records the result of a fetch. On failure the current list is kept.
func (s *State) Loaded(tasks []domain.Task, err error) {
	s.Loading = false
	if err != nil {
		s.Err = err.Error()
		return
	}
	s.Err = ""
	s.Tasks = append([]domain.Task{}, tasks...)
}

// Created puts a newly created task at the front.
func (s *State) Created(task domain.Task) {
	s.Tasks = append([]domain.Task{task}, s.Tasks...)
}

// Updated replaces the task with the same id in place. Unknown ids are ignored.
func (s *State) Updated(task domain.Task) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == task.ID {
			s.Tasks[i] = task
			return
		}
	}
}

// Deleted drops the task with id, keeping the order of the rest.
func (s *State) Deleted(id string) {
	kept := make([]domain.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.Tasks = kept
}

// Find returns the task with id.
func (s *State) Find(id string) (domain.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Empty reports whether there are no tasks at all.
func (s *State) Empty() bool {
	return len(s.Tasks) == 0
}

// Buckets partitions the list by status in To Do, In Progress, Done order.
// Tasks keep their list order within a bucket.
func (s *State) Buckets() []Bucket {
	statuses := domain.Statuses()
	buckets := make([]Bucket, len(statuses))
	index := make(map[domain.Status]int, len(statuses))
	for i, st := range statuses {
		buckets[i] = Bucket{Status: st, Label: st.Label(), Tasks: []domain.Task{}}
		index[st] = i
	}

	for _, t := range s.Tasks {
		if i, ok := index[t.Status]; ok {
			buckets[i].Tasks = append(buckets[i].Tasks, t)
		}
	}
	return buckets
}

// CheckTitle returns the message to show for an unusable title, or "" when
// the title may be sent. Creating and editing report different messages.
func CheckTitle(title string, editing bool) string {
	if strings.TrimSpace(title) != "" {
		return ""
	}
	if editing {
		return MsgTitleEmpty
	}
	return MsgTitleRequired
}
