package store

import (
	"time"

	"github.com/taskflow-app/taskflow/internal/models"
)

// Seed data shown on the first run, before any collection has been
// persisted. Ids are fixed so the example task's project reference
// resolves.

func seedProjects() []models.Project {
	now := time.Now().UTC()
	return []models.Project{
		{
			ID:          "1",
			Name:        "Personal",
			Description: "Everyday errands and ideas",
			Color:       "#8b5cf6",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Work",
			Description: "Tasks from the office",
			Color:       "#3b82f6",
			CreatedAt:   now,
		},
	}
}

func seedTasks() []models.Task {
	now := time.Now().UTC()
	due := now.Add(24 * time.Hour)
	return []models.Task{
		{
			ID:          "1",
			Title:       "Welcome to TaskFlow!",
			Description: "This is your first task. Try marking it as complete or edit it.",
			Completed:   false,
			CreatedAt:   now,
			DueDate:     &due,
			ProjectID:   "1",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryPersonal,
		},
	}
}
