package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/repository"
)

func setupTestDB(t *testing.T, opts ...Option) *SQLiteRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "taskboard.db")
	repo, err := New(dbPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(step)
		return now
	}
}

func strPtr(s string) *string { return &s }

func createTask(t *testing.T, repo *SQLiteRepository, title string) *repository.Task {
	t.Helper()
	task := &repository.Task{Title: title, Status: "todo"}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 123, time.UTC)
	repo := setupTestDB(t, WithClock(fixedClock(start, time.Second)))
	ctx := context.Background()

	task := &repository.Task{Title: "Write report", Description: "Q2", Status: "in_progress"}
	require.NoError(t, repo.CreateTask(ctx, task))

	assert.NotEmpty(t, task.ID)
	assert.True(t, start.Equal(task.CreatedAt))

	retrieved, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, retrieved)
}

func TestCreateTask_AssignsUniqueIDs(t *testing.T) {
	repo := setupTestDB(t)

	a := createTask(t, repo, "A")
	b := createTask(t, repo, "B")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateTask_RejectedByConstraint(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.CreateTask(context.Background(), &repository.Task{Title: "Bad", Status: "blocked"})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))
}

func TestGetTask_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTask(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestListTasks_NewestFirst(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := setupTestDB(t, WithClock(fixedClock(start, time.Millisecond)))

	a := createTask(t, repo, "A")
	b := createTask(t, repo, "B")
	c := createTask(t, repo, "C")

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestListTasks_SameInstantUsesInsertionOrder(t *testing.T) {
	instant := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := setupTestDB(t, WithClock(func() time.Time { return instant }))

	a := createTask(t, repo, "A")
	b := createTask(t, repo, "B")

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, b.ID, tasks[0].ID)
	assert.Equal(t, a.ID, tasks[1].ID)
}

func TestListTasks_Empty(t *testing.T) {
	repo := setupTestDB(t)

	tasks, err := repo.ListTasks(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	task := &repository.Task{Title: "Original", Description: "keep me", Status: "todo"}
	require.NoError(t, repo.CreateTask(ctx, task))

	updated, err := repo.UpdateTask(ctx, task.ID, repository.TaskPatch{Status: strPtr("done")})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "done", updated.Status)
	assert.True(t, task.CreatedAt.Equal(updated.CreatedAt))

	updated, err = repo.UpdateTask(ctx, task.ID, repository.TaskPatch{Title: strPtr("Renamed"), Description: strPtr("")})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "done", updated.Status)
}

func TestUpdateTask_EmptyPatchReturnsRow(t *testing.T) {
	repo := setupTestDB(t)
	task := createTask(t, repo, "Unchanged")

	updated, err := repo.UpdateTask(context.Background(), task.ID, repository.TaskPatch{})

	require.NoError(t, err)
	assert.Equal(t, task, updated)
}

func TestUpdateTask_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.UpdateTask(context.Background(), "missing", repository.TaskPatch{Title: strPtr("x")})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	a := createTask(t, repo, "A")
	b := createTask(t, repo, "B")

	require.NoError(t, repo.DeleteTask(ctx, a.ID))

	_, err := repo.GetTask(ctx, a.ID)
	assert.True(t, apperrors.IsNotFound(err))

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
}

func TestDeleteTask_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.DeleteTask(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPing(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestClosedRepositoryReturnsStoreErrors(t *testing.T) {
	repo, err := New(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.ListTasks(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))
}

func TestCanceledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListTasks(ctx)

	assert.Error(t, err)
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	task := createTask(t, repo, "ephemeral")

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}
