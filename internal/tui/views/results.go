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

// ResultsModel is the model for the results view
type ResultsModel struct {
	svc    *session.Service
	styles ui.Styles
	keys   ui.KeyMap

	// UI state
	width   int
	height  int
	loading bool
	err     error
	status  string

	results      []model.Result
	projectNames map[string]string
	cursor       int

	// Detail state: showing the selected result's laps
	detail bool

	// Rename input state
	inputMode bool
	input     textinput.Model

	// Delete confirmation state
	confirming bool
}

// NewResultsModel creates a new results view model
func NewResultsModel(svc *session.Service, styles ui.Styles, keys ui.KeyMap) ResultsModel {
	ti := textinput.New()
	ti.Placeholder = "Session name..."
	ti.CharLimit = 200
	ti.Width = 40

	return ResultsModel{
		svc:    svc,
		styles: styles,
		keys:   keys,
		input:  ti,
	}
}

// resultsLoadedMsg is sent when the result list has been loaded
type resultsLoadedMsg struct {
	results      []model.Result
	projectNames map[string]string
	err          error
}

// resultMutatedMsg is sent after a rename or delete
type resultMutatedMsg struct {
	status string
	err    error
}

// Init implements tea.Model
func (m ResultsModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}
		if m.confirming {
			return m.handleConfirm(msg)
		}
		return m.handleKeys(msg)

	case resultsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.results = msg.results
		m.projectNames = msg.projectNames
		if m.cursor >= len(m.results) {
			m.cursor = len(m.results) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if len(m.results) == 0 {
			m.detail = false
		}
		return m, nil

	case resultMutatedMsg:
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

// handleKeys handles key events in the list and detail screens
func (m ResultsModel) handleKeys(msg tea.KeyMsg) (ResultsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if !m.detail && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if !m.detail && m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if !m.detail && len(m.results) > 0 {
			m.detail = true
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.detail = false
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if len(m.results) == 0 {
			return m, nil
		}
		m.inputMode = true
		m.status = ""
		m.input.SetValue(m.results[m.cursor].Name)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if len(m.results) == 0 {
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

// handleInputMode handles key events while the rename input is open
func (m ResultsModel) handleInputMode(msg tea.KeyMsg) (ResultsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		return m, m.rename(m.results[m.cursor].ID, name)

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
func (m ResultsModel) handleConfirm(msg tea.KeyMsg) (ResultsModel, tea.Cmd) {
	m.confirming = false
	if msg.String() == "y" && len(m.results) > 0 {
		m.detail = false
		return m, m.delete(m.results[m.cursor].ID)
	}
	return m, nil
}

// View implements tea.Model
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Results"))
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
		b.WriteString(m.styles.DialogTitle.Render("Rename session"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatusHelp.Render("Enter save  Esc cancel"))
		return b.String()
	}

	if len(m.results) == 0 {
		b.WriteString(m.styles.StatusHelp.Render("No saved sessions yet."))
		return b.String()
	}

	if m.detail {
		b.WriteString(m.renderDetail(m.results[m.cursor]))
		return b.String()
	}

	for i, r := range m.results {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		project := m.projectNames[r.FolderID]
		line := fmt.Sprintf("%s%s  %s  %s  %s", cursor, r.Name,
			formatStopwatch(r.TotalTime), project, formatCreatedAt(r.CreatedAt))
		if earnings := stats.ResultEarnings(r); earnings > 0 {
			line += fmt.Sprintf("  earned %s", formatEarnings(earnings))
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
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf(
			"Delete '%s'? (y/n)", m.results[m.cursor].Name)))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}

	return b.String()
}

// renderDetail renders the lap table and statistics for one result
func (m ResultsModel) renderDetail(r model.Result) string {
	var b strings.Builder

	b.WriteString(m.styles.StatValue.Render(r.Name))
	if project := m.projectNames[r.FolderID]; project != "" {
		b.WriteString(m.styles.StatusHelp.Render(" in " + project))
	}
	b.WriteString("\n\n")

	s := stats.CalculateLapStats(r.Laps)
	highlight := len(r.Laps) > 1
	for _, lap := range r.Laps {
		line := m.styles.LapNumber.Render(fmt.Sprintf("#%d", lap.Number)) +
			m.styles.LapTime.Render(formatStopwatch(lap.Time)) +
			m.styles.LapTotal.Render(formatStopwatch(lap.Cumulative))
		switch {
		case highlight && lap.Number == s.Fastest.Number:
			line += m.styles.LapFastest.Render(" fastest")
		case highlight && lap.Number == s.Slowest.Number:
			line += m.styles.LapSlowest.Render(" slowest")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderStatLine("Total", formatStopwatch(r.TotalTime)))
	b.WriteString(m.renderStatLine("Average", formatStopwatch(s.AverageMs)))
	if highlight {
		b.WriteString(m.renderStatLine("Fastest",
			fmt.Sprintf("%s (lap %d)", formatStopwatch(s.Fastest.Time), s.Fastest.Number)))
		b.WriteString(m.renderStatLine("Slowest",
			fmt.Sprintf("%s (lap %d)", formatStopwatch(s.Slowest.Time), s.Slowest.Number)))
	}
	if earnings := stats.ResultEarnings(r); earnings > 0 {
		b.WriteString(m.renderStatLine("Earnings", formatEarnings(earnings)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("Esc back  e rename  d delete"))

	return b.String()
}

func (m ResultsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label+":") + " " + m.styles.StatValue.Render(value) + "\n"
}

// SetSize sets the view dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ResultsModel) IsInputMode() bool {
	return m.inputMode || m.confirming
}

// load creates a command that loads all results and project names
func (m ResultsModel) load() tea.Cmd {
	return func() tea.Msg {
		results, err := m.svc.Results("")
		if err != nil {
			return resultsLoadedMsg{err: err}
		}
		projects, err := m.svc.Projects()
		if err != nil {
			return resultsLoadedMsg{err: err}
		}
		names := make(map[string]string, len(projects))
		for _, p := range projects {
			names[p.ID] = p.Name
		}
		return resultsLoadedMsg{results: results, projectNames: names}
	}
}

// rename creates a command that renames a result
func (m ResultsModel) rename(id, name string) tea.Cmd {
	return func() tea.Msg {
		_, found, err := m.svc.UpdateResult(id, session.ResultPatch{Name: &name})
		if err != nil {
			return resultMutatedMsg{err: err}
		}
		if !found {
			return resultMutatedMsg{err: session.ErrResultNotFound}
		}
		return resultMutatedMsg{status: fmt.Sprintf("Renamed to %s", name)}
	}
}

// delete creates a command that deletes a result
func (m ResultsModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteResult(id); err != nil {
			return resultMutatedMsg{err: err}
		}
		return resultMutatedMsg{status: "Session deleted"}
	}
}
