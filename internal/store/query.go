package store

import "github.com/taskflow-app/taskflow/internal/models"

// FilterAll matches every category when used in Filter.Category
const FilterAll = "all"

// Filter selects tasks by category and project. Zero values mean no
// filtering on that field.
type Filter struct {
	Category  string // "" or "all" matches every category
	ProjectID string // "" matches every project
}

// FilterTasks returns the subsequence of tasks matching all supplied
// predicates, preserving input order. The input is never mutated.
func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
			continue
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ResolveProject looks up a task's project reference. A dangling or
// empty reference resolves to absent, not an error: the task is simply
// unassigned.
func ResolveProject(projectID string, projects []models.Project) (models.Project, bool) {
	if projectID == "" {
		return models.Project{}, false
	}
	for _, p := range projects {
		if p.ID == projectID {
			return p, true
		}
	}
	return models.Project{}, false
}

// ComputeStats aggregates completion counts over the task snapshot
func ComputeStats(tasks []models.Task) models.Stats {
	stats := models.Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}
