package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/ui/keys"
	"github.com/taskflow-app/taskflow/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// persistWarning is shown when a mutation succeeded in memory but the
// durable write failed
const persistWarning = "Saved in memory, but writing to disk failed. Changes may not survive a reload"

// Task form fields, in focus order
const (
	fieldTitle = iota
	fieldDesc
	fieldDue
	fieldPriority
	fieldProject
	fieldCategory
	fieldSave
	fieldCount
)

// categoryTabs lists the filter tabs in display order
var categoryTabs = append([]string{store.FilterAll}, models.Categories...)

// TaskView is the main view: stats, filters and the task list
type TaskView struct {
	projects *store.ProjectStore
	tasks    *store.TaskStore
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	// Data snapshot
	all         []models.Task
	items       []models.Task // all, after filtering
	projectList []models.Project
	stats       models.Stats

	// Filter state
	filter store.Filter
	catIdx int

	// List state
	cursor  int
	scrollY int

	// Project filter dropdown
	dropdownOpen bool
	dropCursor   int

	// Task creation/editing
	editing     bool
	editingID   string // empty while creating
	formTitle   textinput.Model
	formDesc    textarea.Model
	formDue     textinput.Model
	formPriIdx  int // 0..2 -> priority 1..3
	formProjIdx int // 0 = no project, then projectList order
	formCatIdx  int // index into models.Categories
	formFocus   int
	formErr     string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Transient status line, cleared on the next keypress
	status      string
	statusLevel int // 0=info, 1=warn, 2=error

	showHelpPopup bool
}

// NewTaskView creates the main task view
func NewTaskView(projects *store.ProjectStore, tasks *store.TaskStore) *TaskView {
	s := styles.NewStyles()

	formTitle := textinput.New()
	formTitle.Placeholder = "Enter task title"
	formTitle.CharLimit = 200

	formDesc := textarea.New()
	formDesc.Placeholder = "Enter task description (optional)"
	formDesc.CharLimit = 1000
	formDesc.SetWidth(50)
	formDesc.SetHeight(3)
	formDesc.ShowLineNumbers = false

	formDue := textinput.New()
	formDue.Placeholder = "YYYY-MM-DD"
	formDue.CharLimit = 10

	return &TaskView{
		projects:  projects,
		tasks:     tasks,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		formTitle: formTitle,
		formDesc:  formDesc,
		formDue:   formDue,
	}
}

type dataLoadedMsg struct {
	tasks    []models.Task
	projects []models.Project
}

// Init initializes the view
func (v *TaskView) Init() tea.Cmd {
	return v.loadData
}

func (v *TaskView) loadData() tea.Msg {
	return dataLoadedMsg{
		tasks:    v.tasks.List(),
		projects: v.projects.List(),
	}
}

// SetProjectFilter filters the list to a single project; empty shows all
func (v *TaskView) SetProjectFilter(projectID string) {
	v.filter.ProjectID = projectID
	v.applyFilter()
}

func (v *TaskView) applyFilter() {
	v.items = store.FilterTasks(v.all, v.filter)
	if v.cursor >= len(v.items) {
		v.cursor = max(0, len(v.items)-1)
	}
	v.ensureVisible()
}

// Update handles messages
func (v *TaskView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.formDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case dataLoadedMsg:
		v.all = msg.tasks
		v.projectList = msg.projects
		v.stats = store.ComputeStats(msg.tasks)
		v.applyFilter()
		return v, nil

	case tea.KeyMsg:
		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.dropdownOpen {
			return v.updateDropdown(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.status = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.items)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.catIdx = (v.catIdx + 1) % len(categoryTabs)
		v.filter.Category = categoryTabs[v.catIdx]
		v.applyFilter()
		v.setInfo("Filtered by " + categoryTabs[v.catIdx])
		return v, nil

	case key.Matches(msg, v.keys.Project):
		v.dropdownOpen = true
		v.dropCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Projects):
		return v, func() tea.Msg { return ShowProjects{} }

	case key.Matches(msg, v.keys.Toggle):
		if len(v.items) > 0 {
			task := v.items[v.cursor]
			err := v.tasks.ToggleCompletion(task.ID)
			if task.Completed {
				v.setInfo("Task marked as pending")
			} else {
				v.setInfo("Task completed!")
			}
			v.reportPersist(err)
			return v, v.loadData
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startCreate()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if len(v.items) > 0 {
			v.startEdit(v.items[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.items) > 0 {
			task := v.items[v.cursor]
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		err := v.tasks.Remove(v.deleteTargetID)
		v.confirmingDelete = false
		v.setInfo("Task deleted")
		v.reportPersist(err)
		return v, v.loadData
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskView) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Option 0 is "all projects", then the project list
	switch {
	case key.Matches(msg, v.keys.Back):
		v.dropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.dropCursor > 0 {
			v.dropCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.dropCursor < len(v.projectList) {
			v.dropCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.dropdownOpen = false
		if v.dropCursor == 0 {
			v.SetProjectFilter("")
			v.setInfo("Showing all projects")
		} else {
			p := v.projectList[v.dropCursor-1]
			v.SetProjectFilter(p.ID)
			v.setInfo("Filtered by " + p.Name)
		}
		return v, nil
	}
	return v, nil
}

func (v *TaskView) startCreate() {
	v.editing = true
	v.editingID = ""
	v.formErr = ""
	v.formTitle.Reset()
	v.formDesc.Reset()
	v.formDue.Reset()
	v.formPriIdx = models.DefaultPriority - 1
	v.formProjIdx = 0
	v.formCatIdx = indexOf(models.Categories, models.DefaultCategory)
	v.formFocus = fieldTitle
	v.setFormFocus()
}

func (v *TaskView) startEdit(task models.Task) {
	v.editing = true
	v.editingID = task.ID
	v.formErr = ""
	v.formTitle.SetValue(task.Title)
	v.formDesc.SetValue(task.Description)
	v.formDue.SetValue(models.FormatDueDate(task.DueDate))
	v.formPriIdx = clamp(task.Priority-1, 0, 2)
	v.formProjIdx = 0
	for i, p := range v.projectList {
		if p.ID == task.ProjectID {
			v.formProjIdx = i + 1
			break
		}
	}
	v.formCatIdx = indexOf(models.Categories, task.Category)
	v.formFocus = fieldTitle
	v.setFormFocus()
}

func indexOf(list []string, s string) int {
	for i, e := range list {
		if e == s {
			return i
		}
	}
	return 0
}

func (v *TaskView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitForm()

	case msg.String() == "shift+tab":
		v.formFocus = (v.formFocus + fieldCount - 1) % fieldCount
		v.setFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.formFocus = (v.formFocus + 1) % fieldCount
		v.setFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.formFocus == fieldSave {
			return v.submitForm()
		}
		if v.formFocus != fieldDesc {
			v.formFocus++
			v.setFormFocus()
			return v, nil
		}
	}

	// Selector fields cycle with left/right
	if msg.String() == "left" || msg.String() == "right" {
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch v.formFocus {
		case fieldPriority:
			v.formPriIdx = (v.formPriIdx + delta + 3) % 3
			return v, nil
		case fieldProject:
			n := len(v.projectList) + 1
			v.formProjIdx = (v.formProjIdx + delta + n) % n
			return v, nil
		case fieldCategory:
			n := len(models.Categories)
			v.formCatIdx = (v.formCatIdx + delta + n) % n
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.formFocus {
	case fieldTitle:
		v.formTitle, cmd = v.formTitle.Update(msg)
	case fieldDesc:
		v.formDesc, cmd = v.formDesc.Update(msg)
	case fieldDue:
		v.formDue, cmd = v.formDue.Update(msg)
	}
	return v, cmd
}

func (v *TaskView) setFormFocus() {
	v.formTitle.Blur()
	v.formDesc.Blur()
	v.formDue.Blur()
	switch v.formFocus {
	case fieldTitle:
		v.formTitle.Focus()
	case fieldDesc:
		v.formDesc.Focus()
	case fieldDue:
		v.formDue.Focus()
	}
}

func (v *TaskView) formInput() store.TaskInput {
	projectID := ""
	if v.formProjIdx > 0 && v.formProjIdx <= len(v.projectList) {
		projectID = v.projectList[v.formProjIdx-1].ID
	}
	return store.TaskInput{
		Title:       v.formTitle.Value(),
		Description: v.formDesc.Value(),
		DueDate:     v.formDue.Value(),
		ProjectID:   projectID,
		Priority:    strconv.Itoa(v.formPriIdx + 1),
		Category:    models.Categories[v.formCatIdx],
	}
}

func (v *TaskView) submitForm() (tea.Model, tea.Cmd) {
	in := v.formInput()

	var err error
	if v.editingID == "" {
		_, err = v.tasks.Add(in)
	} else {
		err = v.tasks.Update(v.editingID, in)
	}

	var verr *store.ValidationError
	if errors.As(err, &verr) {
		v.formErr = "Task title is required"
		return v, nil
	}

	v.editing = false
	if v.editingID == "" {
		v.setInfo("Task added successfully")
	} else {
		v.setInfo("Task updated")
	}
	v.reportPersist(err)
	return v, v.loadData
}

func (v *TaskView) setInfo(s string) {
	v.status = s
	v.statusLevel = 0
}

// reportPersist surfaces a failed durable write without touching the
// in-memory result
func (v *TaskView) reportPersist(err error) {
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		v.status = persistWarning
		v.statusLevel = 1
	}
}

func (v *TaskView) visibleRows() int {
	// Two lines per task; header, tabs, stats and help take the rest
	return max(1, (v.height-9)/2)
}

func (v *TaskView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the view
func (v *TaskView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderForm()
	}

	if v.dropdownOpen {
		return v.renderDropdown()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		v.renderTabs(),
		"",
		v.renderList(),
		v.renderStatus(),
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskView) renderHeader() string {
	s := v.styles
	title := s.Title.Render("TaskFlow")
	stats := s.StatsBar.Render(fmt.Sprintf("%s total • %s done • %s pending",
		s.StatsValue.Render(strconv.Itoa(v.stats.Total)),
		s.StatsValue.Render(strconv.Itoa(v.stats.Completed)),
		s.StatsValue.Render(strconv.Itoa(v.stats.Pending)),
	))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", stats)
}

func (v *TaskView) renderTabs() string {
	s := v.styles
	tabs := make([]string, 0, len(categoryTabs)+1)
	for i, c := range categoryTabs {
		label := strings.ToUpper(c[:1]) + c[1:]
		if i == v.catIdx {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	if v.filter.ProjectID != "" {
		if p, ok := store.ResolveProject(v.filter.ProjectID, v.projectList); ok {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
			row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", dot, " ", s.TitleMuted.Render(p.Name))
		}
	}
	return row
}

func (v *TaskView) renderList() string {
	if len(v.items) == 0 {
		return v.renderEmpty()
	}

	visible := v.visibleRows()
	end := min(v.scrollY+visible, len(v.items))

	var rows []string
	for i := v.scrollY; i < end; i++ {
		rows = append(rows, v.renderTask(v.items[i], i == v.cursor))
	}
	return strings.Join(rows, "\n")
}

func (v *TaskView) renderTask(task models.Task, selected bool) string {
	s := v.styles

	checkbox := s.CheckboxEmpty.Render("[ ]")
	if task.Completed {
		checkbox = s.CheckboxDone.Render("[✓]")
	}

	title := task.Title
	if task.Completed {
		title = s.TaskDone.Render(title)
	}

	badge := s.Badge.Foreground(styles.CategoryColor(task.Category)).Render(task.Category)
	flag := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render("⚑")

	line := fmt.Sprintf("%s %s %s %s", checkbox, title, badge, flag)
	if selected {
		line = s.TaskSelected.Render(line)
	} else {
		line = s.TaskItem.Render(line)
	}

	meta := "Created " + task.CreatedAt.Format("Jan 2, 2006")
	if task.DueDate != nil {
		meta += " • Due " + task.DueDate.Format("Jan 2, 2006")
	}
	if p, ok := store.ResolveProject(task.ProjectID, v.projectList); ok {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		meta = dot + " " + p.Name + " • " + meta
	}

	return line + "\n" + s.TaskMeta.Render("      "+meta)
}

func (v *TaskView) renderEmpty() string {
	s := v.styles
	msg := "You don't have any tasks yet. Press 'n' to add one!"
	if v.filter.Category != "" && v.filter.Category != store.FilterAll {
		msg = fmt.Sprintf("You don't have any tasks in the %q category.", v.filter.Category)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("No tasks found"),
		s.TitleMuted.Render(msg),
	)
}

func (v *TaskView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	switch v.statusLevel {
	case 1:
		return v.styles.StatusWarn.Render(v.status)
	case 2:
		return v.styles.StatusErr.Render(v.status)
	default:
		return v.styles.StatusInfo.Render(v.status)
	}
}

func (v *TaskView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s toggle • %s new • %s edit • %s del • %s category • %s project • %s projects • %s quit",
			v.styles.HelpKey.Render("␣"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("p"),
			v.styles.HelpKey.Render("P"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("␣") + "      toggle completion",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("f") + "      cycle category filter",
		s.HelpKey.Render("p") + "      project filter",
		s.HelpKey.Render("P") + "      manage projects",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Dropdown.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be gone for good.", v.deleteTargetName)),
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

func (v *TaskView) renderDropdown() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	rows := make([]string, 0, len(v.projectList)+1)
	for i := 0; i <= len(v.projectList); i++ {
		label := "All projects"
		if i > 0 {
			p := v.projectList[i-1]
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
			label = dot + " " + p.Name
		}
		if i == v.dropCursor {
			rows = append(rows, s.ListSelected.Render(label))
		} else {
			rows = append(rows, s.ListItem.Render(label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Filter by Project"), ""}, rows...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Dropdown.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	heading := "New Task"
	if v.editingID != "" {
		heading = "Edit Task"
	}

	titleStyle := s.Input
	dueStyle := s.Input
	btnStyle := s.Button
	switch v.formFocus {
	case fieldTitle:
		titleStyle = s.InputFocused
	case fieldDue:
		dueStyle = s.InputFocused
	case fieldSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	projectLabel := "None"
	if v.formProjIdx > 0 && v.formProjIdx <= len(v.projectList) {
		projectLabel = v.projectList[v.formProjIdx-1].Name
	}

	parts := []string{
		s.Title.Render(heading),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.formTitle.View()),
		"",
		"Description:",
		v.formDesc.View(),
		"",
		"Due date:",
		dueStyle.Width(16).Render(v.formDue.View()),
		"",
		v.renderSelector("Priority", models.PriorityLabel(v.formPriIdx+1), v.formFocus == fieldPriority),
		v.renderSelector("Project", projectLabel, v.formFocus == fieldProject),
		v.renderSelector("Category", models.Categories[v.formCatIdx], v.formFocus == fieldCategory),
		"",
		btnStyle.Render(" Save "),
	}

	if v.formErr != "" {
		parts = append(parts, "", s.StatusErr.Render(v.formErr))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ←/→: change • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderSelector(label, value string, focused bool) string {
	s := v.styles
	rendered := value
	if focused {
		rendered = s.HelpKey.Render("‹ " + value + " ›")
	}
	return fmt.Sprintf("%s %s", s.TitleMuted.Render(label+":"), rendered)
}
