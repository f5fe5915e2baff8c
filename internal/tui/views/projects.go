package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stats"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/tui/ui"
)

// ProjectsModel is the model for the projects view
type ProjectsModel struct {
	svc    *session.Service
	styles ui.Styles
	keys   ui.KeyMap

	// UI state
	width   int
	height  int
	loading bool
	err     error
	status  string

	projects []model.Project
	results  []model.Result
	cursor   int

	// Input state for creating or renaming a project
	inputMode bool
	editingID string // empty when creating
	input     textinput.Model

	// Delete confirmation state
	confirming bool
}

// NewProjectsModel creates a new projects view model
func NewProjectsModel(svc *session.Service, styles ui.Styles, keys ui.KeyMap) ProjectsModel {
	ti := textinput.New()
	ti.Placeholder = "Project name..."
	ti.CharLimit = 100
	ti.Width = 40

	return ProjectsModel{
		svc:    svc,
		styles: styles,
		keys:   keys,
		input:  ti,
	}
}

// projectsLoadedMsg is sent when the project list has been loaded
type projectsLoadedMsg struct {
	projects []model.Project
	results  []model.Result
	err      error
}

// projectMutatedMsg is sent after a create, rename or delete
type projectMutatedMsg struct {
	status string
	err    error
}

// Init implements tea.Model
func (m ProjectsModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m ProjectsModel) Update(msg tea.Msg) (ProjectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}
		if m.confirming {
			return m.handleConfirm(msg)
		}
		return m.handleKeys(msg)

	case projectsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.projects = msg.projects
		m.results = msg.results
		if m.cursor >= len(m.projects) {
			m.cursor = len(m.projects) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case projectMutatedMsg:
		m.err = msg.err
		m.status = msg.status
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeys handles key events in the list
func (m ProjectsModel) handleKeys(msg tea.KeyMsg) (ProjectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.inputMode = true
		m.editingID = ""
		m.status = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if len(m.projects) == 0 {
			return m, nil
		}
		m.inputMode = true
		m.editingID = m.projects[m.cursor].ID
		m.status = ""
		m.input.SetValue(m.projects[m.cursor].Name)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if len(m.projects) == 0 {
			return m, nil
		}
		m.confirming = true
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}

	return m, nil
}

// handleInputMode handles key events while the name input is open
func (m ProjectsModel) handleInputMode(msg tea.KeyMsg) (ProjectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		if m.editingID == "" {
			return m, m.create(name)
		}
		return m, m.rename(m.editingID, name)

	case key.Matches(msg, m.keys.Back): // Escape
		m.inputMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirm handles key events while the delete confirmation is open
func (m ProjectsModel) handleConfirm(msg tea.KeyMsg) (ProjectsModel, tea.Cmd) {
	m.confirming = false
	if msg.String() == "y" && len(m.projects) > 0 {
		return m, m.delete(m.projects[m.cursor].ID)
	}
	return m, nil
}

// View implements tea.Model
func (m ProjectsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Projects"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.inputMode {
		title := "New project"
		if m.editingID != "" {
			title = "Rename project"
		}
		b.WriteString(m.styles.DialogTitle.Render(title))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatusHelp.Render("Enter save  Esc cancel"))
		return b.String()
	}

	if len(m.projects) == 0 {
		b.WriteString(m.styles.StatusHelp.Render("No projects yet. Press 'n' to create one."))
		return b.String()
	}

	for i, p := range m.projects {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		totals := stats.CalculateProjectTotals(p.ID, m.results)
		badge := ui.ProjectBadge(p.Color, p.TextColor, m.styles.StatValue).Render(p.Name)
		line := fmt.Sprintf("%s%s  %d %s, %s", cursor, badge,
			totals.ResultCount, pluralize("session", totals.ResultCount),
			formatStopwatch(totals.TotalMs))
		if totals.Earnings > 0 {
			line += fmt.Sprintf(", earned %s", formatEarnings(totals.Earnings))
		}
		if i == m.cursor {
			b.WriteString(m.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString("\n")
		p := m.projects[m.cursor]
		count := stats.CalculateProjectTotals(p.ID, m.results).ResultCount
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf(
			"Delete '%s' and its %d %s? (y/n)", p.Name, count, pluralize("session", count))))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *ProjectsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ProjectsModel) IsInputMode() bool {
	return m.inputMode || m.confirming
}

// load creates a command that loads projects and their results
func (m ProjectsModel) load() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.svc.Projects()
		if err != nil {
			return projectsLoadedMsg{err: err}
		}
		results, err := m.svc.Results("")
		return projectsLoadedMsg{projects: projects, results: results, err: err}
	}
}

// create creates a command that adds a project
func (m ProjectsModel) create(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.CreateProject(name, "", ""); err != nil {
			return projectMutatedMsg{err: err}
		}
		return projectMutatedMsg{status: fmt.Sprintf("Created: %s", name)}
	}
}

// rename creates a command that renames a project
func (m ProjectsModel) rename(id, name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.RenameProject(id, name); err != nil {
			return projectMutatedMsg{err: err}
		}
		return projectMutatedMsg{status: fmt.Sprintf("Renamed to %s", name)}
	}
}

// delete creates a command that deletes a project and its sessions
func (m ProjectsModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.svc.DeleteProject(id)
		if err != nil {
			return projectMutatedMsg{err: err}
		}
		return projectMutatedMsg{status: fmt.Sprintf(
			"Deleted project (%d %s removed)", removed, pluralize("session", removed))}
	}
}
