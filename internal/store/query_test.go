package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow-app/taskflow/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Standup notes", Category: "work", ProjectID: "p1"},
		{ID: "2", Title: "Buy milk", Category: "shopping", Completed: true},
		{ID: "3", Title: "Code review", Category: "work", ProjectID: "p2"},
		{ID: "4", Title: "Run", Category: "health", ProjectID: "p1", Completed: true},
	}
}

func TestFilterTasksByCategory(t *testing.T) {
	got := FilterTasks(sampleTasks(), Filter{Category: "work"})

	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFilterTasksByProject(t *testing.T) {
	got := FilterTasks(sampleTasks(), Filter{ProjectID: "p1"})

	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestFilterTasksCombinesPredicates(t *testing.T) {
	got := FilterTasks(sampleTasks(), Filter{Category: "work", ProjectID: "p1"})

	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterTasksEmptyFilterIsIdentity(t *testing.T) {
	tasks := sampleTasks()

	assert.Equal(t, tasks, FilterTasks(tasks, Filter{}))
	assert.Equal(t, tasks, FilterTasks(tasks, Filter{Category: FilterAll}))
}

func TestFilterTasksNoMatch(t *testing.T) {
	assert.Empty(t, FilterTasks(sampleTasks(), Filter{ProjectID: "nope"}))
}

func TestResolveProject(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Name: "Home"},
		{ID: "p2", Name: "Work"},
	}

	got, ok := ResolveProject("p2", projects)
	assert.True(t, ok)
	assert.Equal(t, "Work", got.Name)

	_, ok = ResolveProject("dangling", projects)
	assert.False(t, ok)

	_, ok = ResolveProject("", projects)
	assert.False(t, ok)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleTasks())

	assert.Equal(t, models.Stats{Total: 4, Completed: 2, Pending: 2}, stats)
}

func TestComputeStatsIdentity(t *testing.T) {
	for _, tasks := range [][]models.Task{nil, sampleTasks(), sampleTasks()[:1]} {
		stats := ComputeStats(tasks)
		assert.Equal(t, len(tasks), stats.Total)
		assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
	}
}
