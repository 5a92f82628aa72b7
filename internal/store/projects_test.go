package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

func newEmptyProjectStore(t *testing.T) *ProjectStore {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Put("projects", []byte("[]")))
	s, err := NewProjectStore(db, testLogger())
	require.NoError(t, err)
	return s
}

func TestNewProjectValidatesName(t *testing.T) {
	_, err := NewProject(ProjectInput{Name: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestNewProjectNormalizes(t *testing.T) {
	p, err := NewProject(ProjectInput{Name: "  Garden  ", Color: "#nope"})
	require.NoError(t, err)

	assert.Equal(t, "Garden", p.Name)
	assert.Equal(t, models.Palette[0], p.Color)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAddAppendsInInsertionOrder(t *testing.T) {
	s := newEmptyProjectStore(t)

	a, err := NewProject(ProjectInput{Name: "A"})
	require.NoError(t, err)
	b, err := NewProject(ProjectInput{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	projects := s.List()
	require.Len(t, projects, 2)
	assert.Equal(t, "A", projects[0].Name)
	assert.Equal(t, "B", projects[1].Name)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := newEmptyProjectStore(t)

	p, err := NewProject(ProjectInput{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, s.Add(p))

	dup := p
	dup.Name = "imposter"
	assert.ErrorIs(t, s.Add(dup), ErrDuplicateID)

	projects := s.List()
	require.Len(t, projects, 1)
	assert.Equal(t, "A", projects[0].Name)
}

func TestGet(t *testing.T) {
	s := newEmptyProjectStore(t)

	p, err := NewProject(ProjectInput{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, s.Add(p))

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestUpdatePreservesPosition(t *testing.T) {
	s := newEmptyProjectStore(t)

	a, _ := NewProject(ProjectInput{Name: "A"})
	b, _ := NewProject(ProjectInput{Name: "B"})
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	a.Name = "A edited"
	require.NoError(t, s.Update(a))

	projects := s.List()
	require.Len(t, projects, 2)
	assert.Equal(t, "A edited", projects[0].Name)
	assert.Equal(t, "B", projects[1].Name)
}

func TestUpdateMissingIDIsNoop(t *testing.T) {
	s := newEmptyProjectStore(t)

	ghost, _ := NewProject(ProjectInput{Name: "ghost"})
	require.NoError(t, s.Update(ghost))
	assert.Empty(t, s.List())
}

func TestRemoveLeavesTasksDangling(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Put("projects", []byte("[]")))
	require.NoError(t, db.Put("tasks", []byte("[]")))

	projects, err := NewProjectStore(db, testLogger())
	require.NoError(t, err)
	tasks, err := NewTaskStore(db, testLogger())
	require.NoError(t, err)

	p, err := NewProject(ProjectInput{Name: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, projects.Add(p))
	task, err := tasks.Add(TaskInput{Title: "Orphan", ProjectID: p.ID})
	require.NoError(t, err)

	require.NoError(t, projects.Remove(p.ID))

	// Task count unchanged, reference now dangles
	list := tasks.List()
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ProjectID)
	_, ok := ResolveProject(task.ProjectID, projects.List())
	assert.False(t, ok)
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	s := newEmptyProjectStore(t)
	require.NoError(t, s.Remove("nope"))
}

func TestProjectSeedOnFirstRun(t *testing.T) {
	db := openTestDB(t)

	s, err := NewProjectStore(db, testLogger())
	require.NoError(t, err)

	projects := s.List()
	require.Len(t, projects, 2)
	assert.Equal(t, "Personal", projects[0].Name)
	assert.Equal(t, "Work", projects[1].Name)

	s2, err := NewProjectStore(db, testLogger())
	require.NoError(t, err)
	assert.Equal(t, projects, s2.List())
}

func TestProjectRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")

	db, err := storage.Open(path)
	require.NoError(t, err)

	s, err := NewProjectStore(db, testLogger())
	require.NoError(t, err)
	p, err := NewProject(ProjectInput{Name: "Garden", Description: "Backyard plans", Color: "#10b981"})
	require.NoError(t, err)
	require.NoError(t, s.Add(p))
	before := s.List()
	require.NoError(t, db.Close())

	db2, err := storage.Open(path)
	require.NoError(t, err)
	defer db2.Close()

	s2, err := NewProjectStore(db2, testLogger())
	require.NoError(t, err)
	assert.Equal(t, before, s2.List())
}
