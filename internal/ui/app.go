package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewProjects
)

type App struct {
	currentView View
	taskView    *views.TaskView
	projectView *views.ProjectView
	width       int
	height      int
}

// NewApp creates the application model over the two stores
func NewApp(projects *store.ProjectStore, tasks *store.TaskStore) *App {
	return &App{
		currentView: ViewTasks,
		taskView:    views.NewTaskView(projects, tasks),
		projectView: views.NewProjectView(projects),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskView.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views track the window size
		a.taskView.Update(msg)
		a.projectView.Update(msg)
		return a, nil

	case views.ShowProjects:
		a.currentView = ViewProjects
		return a, a.projectView.Init()

	case views.BackToTasks:
		a.currentView = ViewTasks
		return a, a.taskView.Init()

	case views.SelectedProject:
		a.currentView = ViewTasks
		a.taskView.SetProjectFilter(msg.ProjectID)
		return a, a.taskView.Init()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewProjects:
		_, cmd = a.projectView.Update(msg)
	default:
		_, cmd = a.taskView.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewProjects {
		return a.projectView.View()
	}
	return a.taskView.View()
}
