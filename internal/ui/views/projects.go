package views

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/ui/keys"
	"github.com/taskflow-app/taskflow/internal/ui/styles"
)

// ShowProjects signals to open the project manager
type ShowProjects struct{}

// BackToTasks signals to return to the task view
type BackToTasks struct{}

// SelectedProject signals to filter the task view by a project
type SelectedProject struct {
	ProjectID string
}

// Project form fields, in focus order
const (
	pfieldName = iota
	pfieldDesc
	pfieldColor
	pfieldSave
	pfieldCount
)

// ProjectView manages the project collection
type ProjectView struct {
	projects *store.ProjectStore
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	list   []models.Project
	cursor int

	// Creation/editing
	editing      bool
	editingID    string // empty while creating
	formName     textinput.Model
	formDesc     textinput.Model
	formColorIdx int
	formFocus    int
	formErr      string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	status      string
	statusLevel int
}

// NewProjectView creates the project manager view
func NewProjectView(projects *store.ProjectStore) *ProjectView {
	formName := textinput.New()
	formName.Placeholder = "Project name"
	formName.CharLimit = 100

	formDesc := textinput.New()
	formDesc.Placeholder = "Description (optional)"
	formDesc.CharLimit = 200

	return &ProjectView{
		projects: projects,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		formName: formName,
		formDesc: formDesc,
	}
}

type projectsLoadedMsg struct {
	projects []models.Project
}

// Init initializes the view
func (v *ProjectView) Init() tea.Cmd {
	return v.loadProjects
}

func (v *ProjectView) loadProjects() tea.Msg {
	return projectsLoadedMsg{projects: v.projects.List()}
}

// Update handles messages
func (v *ProjectView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case projectsLoadedMsg:
		v.list = msg.projects
		if v.cursor >= len(v.list) {
			v.cursor = max(0, len(v.list)-1)
		}
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *ProjectView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.status = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToTasks{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.list)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if len(v.list) > 0 {
			id := v.list[v.cursor].ID
			return v, func() tea.Msg { return SelectedProject{ProjectID: id} }
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startCreate()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if len(v.list) > 0 {
			v.startEdit(v.list[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.list) > 0 {
			p := v.list[v.cursor]
			v.confirmingDelete = true
			v.deleteTargetID = p.ID
			v.deleteTargetName = p.Name
		}
		return v, nil
	}

	return v, nil
}

func (v *ProjectView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		err := v.projects.Remove(v.deleteTargetID)
		v.confirmingDelete = false
		v.setInfo("Project deleted. Its tasks are now unassigned")
		v.reportPersist(err)
		return v, v.loadProjects
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectView) startCreate() {
	v.editing = true
	v.editingID = ""
	v.formErr = ""
	v.formName.Reset()
	v.formDesc.Reset()
	v.formColorIdx = 0
	v.formFocus = pfieldName
	v.setFormFocus()
}

func (v *ProjectView) startEdit(p models.Project) {
	v.editing = true
	v.editingID = p.ID
	v.formErr = ""
	v.formName.SetValue(p.Name)
	v.formDesc.SetValue(p.Description)
	v.formColorIdx = indexOf(models.Palette, p.Color)
	v.formFocus = pfieldName
	v.setFormFocus()
}

func (v *ProjectView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitForm()

	case msg.String() == "shift+tab":
		v.formFocus = (v.formFocus + pfieldCount - 1) % pfieldCount
		v.setFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.formFocus = (v.formFocus + 1) % pfieldCount
		v.setFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.formFocus == pfieldSave {
			return v.submitForm()
		}
		v.formFocus++
		v.setFormFocus()
		return v, nil
	}

	if v.formFocus == pfieldColor && (msg.String() == "left" || msg.String() == "right") {
		n := len(models.Palette)
		if msg.String() == "left" {
			v.formColorIdx = (v.formColorIdx + n - 1) % n
		} else {
			v.formColorIdx = (v.formColorIdx + 1) % n
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.formFocus {
	case pfieldName:
		v.formName, cmd = v.formName.Update(msg)
	case pfieldDesc:
		v.formDesc, cmd = v.formDesc.Update(msg)
	}
	return v, cmd
}

func (v *ProjectView) setFormFocus() {
	v.formName.Blur()
	v.formDesc.Blur()
	switch v.formFocus {
	case pfieldName:
		v.formName.Focus()
	case pfieldDesc:
		v.formDesc.Focus()
	}
}

func (v *ProjectView) submitForm() (tea.Model, tea.Cmd) {
	in := store.ProjectInput{
		Name:        v.formName.Value(),
		Description: v.formDesc.Value(),
		Color:       models.Palette[v.formColorIdx],
	}

	var err error
	if v.editingID == "" {
		var p models.Project
		p, err = store.NewProject(in)
		if err == nil {
			err = v.projects.Add(p)
		}
	} else {
		err = v.updateExisting(in)
	}

	var verr *store.ValidationError
	if errors.As(err, &verr) {
		v.formErr = "Project name is required"
		return v, nil
	}

	v.editing = false
	if v.editingID == "" {
		v.setInfo("Project added")
	} else {
		v.setInfo("Project updated")
	}
	v.reportPersist(err)
	return v, v.loadProjects
}

// updateExisting replaces the edited project, keeping its id and
// creation time
func (v *ProjectView) updateExisting(in store.ProjectInput) error {
	cur, ok := v.projects.Get(v.editingID)
	if !ok {
		return nil
	}

	next, err := store.NewProject(in)
	if err != nil {
		return err
	}
	next.ID = cur.ID
	next.CreatedAt = cur.CreatedAt
	return v.projects.Update(next)
}

func (v *ProjectView) setInfo(s string) {
	v.status = s
	v.statusLevel = 0
}

func (v *ProjectView) reportPersist(err error) {
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		v.status = persistWarning
		v.statusLevel = 1
	}
}

// View renders the view
func (v *ProjectView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderForm()
	}

	if len(v.list) == 0 {
		return v.renderEmpty()
	}

	s := v.styles
	rows := make([]string, 0, len(v.list)+3)
	rows = append(rows, s.Title.Render("Projects"), "")
	for i, p := range v.list {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		label := fmt.Sprintf("%s %s", dot, p.Name)
		if p.Description != "" {
			label += "  " + s.TitleMuted.Render(p.Description)
		}
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(label))
		} else {
			rows = append(rows, s.ListItem.Render(label))
		}
	}
	rows = append(rows, v.renderStatus(), v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	heading := "New Project"
	if v.editingID != "" {
		heading = "Edit Project"
	}

	nameStyle := s.Input
	descStyle := s.Input
	btnStyle := s.Button
	switch v.formFocus {
	case pfieldName:
		nameStyle = s.InputFocused
	case pfieldDesc:
		descStyle = s.InputFocused
	case pfieldSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	color := models.Palette[v.formColorIdx]
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●●●")
	colorLabel := fmt.Sprintf("%s %s", swatch, color)
	if v.formFocus == pfieldColor {
		colorLabel = s.HelpKey.Render("‹ ") + colorLabel + s.HelpKey.Render(" ›")
	}

	parts := []string{
		s.Title.Render(heading),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.formName.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.formDesc.View()),
		"",
		"Color: " + colorLabel,
		"",
		btnStyle.Render(" Save "),
	}

	if v.formErr != "" {
		parts = append(parts, "", s.StatusErr.Render(v.formErr))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ←/→: color • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	if v.statusLevel == 1 {
		return v.styles.StatusWarn.Render(v.status)
	}
	return v.styles.StatusInfo.Render(v.status)
}

func (v *ProjectView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s filter tasks • %s new • %s edit • %s del • %s back",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}

func (v *ProjectView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Tasks in %q are kept and become unassigned.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
