package store

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newEmptyTaskStore persists an empty collection first so the store
// does not seed itself.
func newEmptyTaskStore(t *testing.T) *TaskStore {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Put("tasks", []byte("[]")))
	s, err := NewTaskStore(db, testLogger())
	require.NoError(t, err)
	return s
}

func TestAddPrepends(t *testing.T) {
	s := newEmptyTaskStore(t)

	_, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)
	_, err = s.Add(TaskInput{Title: "B"})
	require.NoError(t, err)

	tasks := s.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, "B", tasks[0].Title)
	assert.Equal(t, "A", tasks[1].Title)
}

func TestAddNormalizes(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{
		Title:    "Buy milk",
		Category: "shopping",
		Priority: "1",
	})
	require.NoError(t, err)

	assert.False(t, task.Completed)
	assert.Equal(t, models.PriorityLow, task.Priority)
	assert.Equal(t, models.CategoryShopping, task.Category)
	assert.NotEmpty(t, task.ID)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestAddCoercesInvalidOptionalFields(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{
		Title:    "  padded  ",
		Priority: "99",
		Category: "errands",
		DueDate:  "not a date",
	})
	require.NoError(t, err)

	assert.Equal(t, "padded", task.Title)
	assert.Equal(t, models.DefaultPriority, task.Priority)
	assert.Equal(t, models.DefaultCategory, task.Category)
	assert.Nil(t, task.DueDate)
}

func TestAddParsesDueDate(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "Dentist", DueDate: "2026-09-15"})
	require.NoError(t, err)

	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *task.DueDate)
}

func TestAddRejectsBlankTitle(t *testing.T) {
	s := newEmptyTaskStore(t)

	_, err := s.Add(TaskInput{Title: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	assert.Empty(t, s.List())
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s := newEmptyTaskStore(t)

	first, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)
	_, err = s.Add(TaskInput{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, s.Update(first.ID, TaskInput{
		Title:    "A edited",
		Priority: "3",
		Category: "work",
	}))

	tasks := s.List()
	require.Len(t, tasks, 2)
	// Position preserved: A stays last
	assert.Equal(t, "A edited", tasks[1].Title)
	assert.Equal(t, models.PriorityHigh, tasks[1].Priority)
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.Equal(t, first.CreatedAt, tasks[1].CreatedAt)
}

func TestUpdateKeepsCompletionState(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)
	require.NoError(t, s.ToggleCompletion(task.ID))

	require.NoError(t, s.Update(task.ID, TaskInput{Title: "A edited"}))

	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
}

func TestTaskUpdateMissingIDIsNoop(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)

	require.NoError(t, s.Update("nope", TaskInput{Title: "ghost"}))

	tasks := s.List()
	require.Len(t, tasks, 1)
	assert.Equal(t, task.Title, tasks[0].Title)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)

	err = s.Update(task.ID, TaskInput{Title: ""})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "A", got.Title)
}

func TestToggleCompletionIsInvolution(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "A", DueDate: "2026-01-02"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleCompletion(task.ID))
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	require.NoError(t, s.ToggleCompletion(task.ID))
	got, ok = s.Get(task.ID)
	require.True(t, ok)
	assert.False(t, got.Completed)

	// No other field changed
	got.Completed = task.Completed
	assert.Equal(t, task, got)
}

func TestToggleCompletionMissingIDIsNoop(t *testing.T) {
	s := newEmptyTaskStore(t)
	require.NoError(t, s.ToggleCompletion("nope"))
}

func TestRemove(t *testing.T) {
	s := newEmptyTaskStore(t)

	task, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(task.ID))
	assert.Empty(t, s.List())

	// Absent id is a silent no-op
	require.NoError(t, s.Remove(task.ID))
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	s := newEmptyTaskStore(t)

	var calls [][]models.Task
	s.OnChange(func(tasks []models.Task) {
		calls = append(calls, tasks)
	})

	task, err := s.Add(TaskInput{Title: "A"})
	require.NoError(t, err)
	require.NoError(t, s.ToggleCompletion(task.ID))
	require.NoError(t, s.Remove(task.ID))

	require.Len(t, calls, 3)
	assert.Len(t, calls[0], 1)
	assert.True(t, calls[1][0].Completed)
	assert.Empty(t, calls[2])
}

func TestOnChangeNotFiredForRejectedAdd(t *testing.T) {
	s := newEmptyTaskStore(t)

	fired := false
	s.OnChange(func([]models.Task) { fired = true })

	_, err := s.Add(TaskInput{Title: " "})
	require.Error(t, err)
	assert.False(t, fired)
}

func TestSeedOnFirstRun(t *testing.T) {
	db := openTestDB(t)

	s, err := NewTaskStore(db, testLogger())
	require.NoError(t, err)

	tasks := s.List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Welcome to TaskFlow!", tasks[0].Title)
	assert.Equal(t, models.CategoryPersonal, tasks[0].Category)
	require.NotNil(t, tasks[0].DueDate)

	// Seeding persisted immediately: a second store over the same db
	// loads the identical collection instead of reseeding.
	s2, err := NewTaskStore(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, tasks, s2.List())
}

func TestRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")

	db, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Put("tasks", []byte("[]")))

	s, err := NewTaskStore(db, testLogger())
	require.NoError(t, err)
	_, err = s.Add(TaskInput{Title: "A", DueDate: "2026-03-01", Priority: "3", Category: "work"})
	require.NoError(t, err)
	done, err := s.Add(TaskInput{Title: "B", ProjectID: "p-1"})
	require.NoError(t, err)
	require.NoError(t, s.ToggleCompletion(done.ID))
	before := s.List()
	require.NoError(t, db.Close())

	db2, err := storage.Open(path)
	require.NoError(t, err)
	defer db2.Close()

	s2, err := NewTaskStore(db2, testLogger())
	require.NoError(t, err)
	assert.Equal(t, before, s2.List())
}
