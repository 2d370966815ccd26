package domain

import (
	"strings"

	"taskboard/internal/repository"
)

// TaskMapper handles conversion between domain and storage Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a storage Task.
func (m *TaskMapper) ToDatabase(domainTask Task) repository.Task {
	return repository.Task{
		ID:          domainTask.ID,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		Status:      string(domainTask.Status),
		CreatedAt:   domainTask.CreatedAt,
	}
}

// FromDatabase converts a storage Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask repository.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Status:      Status(dbTask.Status),
		CreatedAt:   dbTask.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of storage Tasks to domain Tasks.
// The result is never nil so it always encodes as a JSON array.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*repository.Task) []Task {
	domainTasks := make([]Task, 0, len(dbTasks))
	for _, task := range dbTasks {
		if task == nil {
			continue
		}
		domainTasks = append(domainTasks, m.FromDatabase(*task))
	}
	return domainTasks
}

// ToPatch converts client input into a storage patch. Title and description
// are trimmed; absent fields stay nil.
func (m *TaskMapper) ToPatch(input TaskInput) repository.TaskPatch {
	var patch repository.TaskPatch
	if input.Title != nil {
		patch.Title = StringPtr(strings.TrimSpace(*input.Title))
	}
	if input.Description != nil {
		patch.Description = StringPtr(strings.TrimSpace(*input.Description))
	}
	if input.Status != nil {
		patch.Status = StringPtr(*input.Status)
	}
	return patch
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
