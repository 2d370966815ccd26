package services

import (
	"context"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

const taskResource = "Task"

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	timeouts      Timeouts
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, timeouts Timeouts) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		timeouts:      timeouts,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// validationFailure wraps a validator result so the user sees its first message
func validationFailure(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError(err.Error(), err)
}

// ensureExists checks the target before a mutation so that a missing id is
// reported as not found rather than as a failed write
func (t *taskServiceImpl) ensureExists(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, t.timeouts.Query)
	defer cancel()

	if _, err := t.repo.GetTask(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return errors.NewNotFoundError(taskResource, id)
		}
		return errors.NewStoreError(MsgExistenceCheckFail, err)
	}
	return nil
}

// ListTasks returns all tasks ordered by creation time, newest first
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := withTimeout(ctx, t.timeouts.Query)
	defer cancel()

	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, errors.NewStoreError(MsgFetchFailed, err)
	}

	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// CreateTask creates a new task from input. The description defaults to
// empty and the status to todo.
func (t *taskServiceImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForCreation(input); err != nil {
		return nil, validationFailure(err)
	}

	description := ""
	if input.Description != nil {
		description = *input.Description
	}
	task := domain.NewTask(*input.Title, description)
	if input.Status != nil && *input.Status != "" {
		task.Status = domain.Status(*input.Status)
	}

	dbTask := t.mapper.Task.ToDatabase(task)

	ctx, cancel := withTimeout(ctx, t.timeouts.Write)
	defer cancel()

	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, errors.NewStoreError(MsgCreateFailed, err)
	}

	domainTask := t.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// UpdateTask applies a partial update to an existing task
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForUpdate(input); err != nil {
		return nil, validationFailure(err)
	}

	if err := t.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	patch := t.mapper.Task.ToPatch(input)

	ctx, cancel := withTimeout(ctx, t.timeouts.Write)
	defer cancel()

	dbTask, err := t.repo.UpdateTask(ctx, id, patch)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError(taskResource, id)
		}
		return nil, errors.NewStoreError(MsgUpdateFailed, err)
	}

	domainTask := t.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// DeleteTask removes a task permanently
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := t.ensureExists(ctx, id); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, t.timeouts.Write)
	defer cancel()

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return errors.NewNotFoundError(taskResource, id)
		}
		return errors.NewStoreError(MsgDeleteFailed, err)
	}
	return nil
}

// Ping checks the store
func (t *taskServiceImpl) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, t.timeouts.Query)
	defer cancel()

	return t.repo.Ping(ctx)
}
