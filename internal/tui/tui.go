// Package tui provides the Terminal User Interface for swpro.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/config"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/tui/ui"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabStopwatch Tab = iota
	TabProjects
	TabResults
	TabConfig
)

var tabNames = []string{"Stopwatch", "Projects", "Results", "Config"}

// Model is the root TUI model
type Model struct {
	svc *session.Service
	cfg config.Config

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	stopwatchView views.StopwatchModel
	projectsView  views.ProjectsModel
	resultsView   views.ResultsModel
	configView    views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(svc *session.Service, cfg config.Config, draftPath string) Model {
	themeProvider := ui.NewThemeProvider(cfg.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		svc:           svc,
		cfg:           cfg,
		activeTab:     TabStopwatch,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		stopwatchView: views.NewStopwatchModel(svc, cfg, draftPath, styles, keys),
		projectsView:  views.NewProjectsModel(svc, styles, keys),
		resultsView:   views.NewResultsModel(svc, styles, keys),
		configView:    views.NewConfigModel(cfg, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.stopwatchView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A view in input mode owns the keyboard: dialogs and text inputs
		// must see every character before any global binding fires.
		capturing := m.isModalInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturing:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !capturing:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !capturing:
			m.activeTab = TabStopwatch
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !capturing:
			m.activeTab = TabProjects
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !capturing:
			m.activeTab = TabResults
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab4) && !capturing:
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.stopwatchView.SetSize(m.width, contentHeight)
		m.projectsView.SetSize(m.width, contentHeight)
		m.resultsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.cfg.Theme = newTheme
		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.stopwatchView, _ = m.stopwatchView.Update(themeMsg)
		m.projectsView, _ = m.projectsView.Update(themeMsg)
		m.resultsView, _ = m.resultsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)
	}

	// Non-key messages reach every view so background loads and ticks
	// complete even while another tab is active; key messages go only to
	// the active view.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch m.activeTab {
		case TabStopwatch:
			m.stopwatchView, cmd = m.stopwatchView.Update(msg)
		case TabProjects:
			m.projectsView, cmd = m.projectsView.Update(msg)
		case TabResults:
			m.resultsView, cmd = m.resultsView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		cmds = append(cmds, cmd)
	} else {
		m.stopwatchView, cmd = m.stopwatchView.Update(msg)
		cmds = append(cmds, cmd)
		m.projectsView, cmd = m.projectsView.Update(msg)
		cmds = append(cmds, cmd)
		m.resultsView, cmd = m.resultsView.Update(msg)
		cmds = append(cmds, cmd)
		m.configView, cmd = m.configView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabStopwatch:
		b.WriteString(m.stopwatchView.View())
	case TabProjects:
		b.WriteString(m.projectsView.View())
	case TabResults:
		b.WriteString(m.resultsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay(b.String())
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabStopwatch:
			parts = append(parts, m.renderKeyHelp("space", "start/pause"))
			parts = append(parts, m.renderKeyHelp("l", "lap"))
			parts = append(parts, m.renderKeyHelp("x", "stop"))
			parts = append(parts, m.renderKeyHelp("r", "reset"))
		case TabProjects:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("e", "rename"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabResults:
			parts = append(parts, m.renderKeyHelp("enter", "laps"))
			parts = append(parts, m.renderKeyHelp("e", "rename"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view is capturing keyboard input
// (dialogs, text inputs, the theme selector)
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabStopwatch:
		return m.stopwatchView.IsInputMode()
	case TabProjects:
		return m.projectsView.IsInputMode()
	case TabResults:
		return m.resultsView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabStopwatch:
		return nil // The stopwatch keeps its own state across tab switches
	case TabProjects:
		return m.projectsView.Init()
	case TabResults:
		return m.resultsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig persists the selected theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		path, err := config.GetConfigPath()
		if err != nil {
			return nil
		}
		if loaded, err := config.LoadOrDefault(path); err == nil {
			cfg = loaded
		}
		cfg.Theme = themeName
		_ = config.Save(path, cfg)
		return nil
	}
}

// GetThemeProvider returns the theme provider for use by views
func (m Model) GetThemeProvider() *ui.ThemeProvider {
	return m.themeProvider
}

// renderHelpOverlay renders a help overlay on top of the current view
func (m Model) renderHelpOverlay(background string) string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabStopwatch:
		help.WriteString(m.styles.StatLabel.Render("Stopwatch:"))
		help.WriteString("\n")
		help.WriteString("  space      Start / pause / resume\n")
		help.WriteString("  l          Record lap\n")
		help.WriteString("  x          Stop and save\n")
		help.WriteString("  r          Reset\n")
	case TabProjects:
		help.WriteString(m.styles.StatLabel.Render("Projects:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New project\n")
		help.WriteString("  e          Rename project\n")
		help.WriteString("  d          Delete project\n")
		help.WriteString("  R          Refresh\n")
	case TabResults:
		help.WriteString(m.styles.StatLabel.Render("Results:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  Enter      Show laps\n")
		help.WriteString("  e          Rename session\n")
		help.WriteString("  d          Delete session\n")
		help.WriteString("  R          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	helpBox := m.styles.Dialog.Render(help.String())

	return m.styles.App.Render(helpBox)
}

// Run starts the TUI application
func Run(svc *session.Service, cfg config.Config, draftPath string) error {
	model := New(svc, cfg, draftPath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
