package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/config"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/store"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/tui/ui"
)

func setupTestModel(t *testing.T) Model {
	t.Helper()
	tmpDir := t.TempDir()
	svc := session.NewService(store.NewFileStore(tmpDir))
	draftPath := filepath.Join(tmpDir, "draft.json")
	return New(svc, config.DefaultConfig(), draftPath)
}

func TestNew(t *testing.T) {
	model := setupTestModel(t)

	if model.activeTab != TabStopwatch {
		t.Errorf("expected initial tab to be Stopwatch, got %d", model.activeTab)
	}
	if model.svc == nil {
		t.Error("expected service to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
}

func TestInit(t *testing.T) {
	model := setupTestModel(t)

	cmd := model.Init()
	if cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m := newModel.(Model)

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	model := setupTestModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m := newModel.(Model)

	if !m.showHelp {
		t.Error("expected showHelp to be true after pressing ?")
	}

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)

	if m.showHelp {
		t.Error("expected showHelp to be false after pressing ? again")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	model := setupTestModel(t)

	if model.activeTab != TabStopwatch {
		t.Errorf("expected initial tab TabStopwatch, got %d", model.activeTab)
	}

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(Model)

	if m.activeTab != TabProjects {
		t.Errorf("expected TabProjects after pressing tab, got %d", m.activeTab)
	}
}

func TestUpdate_DirectTabKeys(t *testing.T) {
	model := setupTestModel(t)

	tests := []struct {
		key      rune
		expected Tab
	}{
		{'1', TabStopwatch},
		{'2', TabProjects},
		{'3', TabResults},
		{'4', TabConfig},
	}

	for _, tt := range tests {
		newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
		m := newModel.(Model)

		if m.activeTab != tt.expected {
			t.Errorf("pressing %c: expected tab %d, got %d", tt.key, tt.expected, m.activeTab)
		}
	}
}

func TestUpdate_PrevTab_Wraparound(t *testing.T) {
	model := setupTestModel(t)
	model.activeTab = TabStopwatch

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m := newModel.(Model)

	if m.activeTab != TabConfig {
		t.Errorf("expected TabConfig (wraparound) after shift+tab, got %d", m.activeTab)
	}
}

func TestUpdate_NextTab_Wraparound(t *testing.T) {
	model := setupTestModel(t)
	model.activeTab = TabConfig

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(Model)

	if m.activeTab != TabStopwatch {
		t.Errorf("expected TabStopwatch (wraparound) after tab, got %d", m.activeTab)
	}
}

func TestView_Loading(t *testing.T) {
	model := setupTestModel(t)

	// Before window size is set, width is 0
	view := model.View()

	if !strings.Contains(view, "Loading") {
		t.Errorf("expected 'Loading...' when width is 0, got %q", view)
	}
}

func TestView_WithSize(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)

	view := m.View()

	if !strings.Contains(view, "Stopwatch") {
		t.Error("expected 'Stopwatch' tab in view")
	}
	if !strings.Contains(view, "quit") {
		t.Error("expected 'quit' in status bar")
	}
}

func TestView_AllTabs(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)

	tabs := []Tab{TabStopwatch, TabProjects, TabResults, TabConfig}
	for _, tab := range tabs {
		m.activeTab = tab
		view := m.View()

		if view == "" {
			t.Errorf("expected non-empty view for tab %d", tab)
		}
	}
}

func TestRenderTabs(t *testing.T) {
	model := setupTestModel(t)

	tabs := model.renderTabs()

	for _, name := range tabNames {
		if !strings.Contains(tabs, name) {
			t.Errorf("expected tab name %s in rendered tabs", name)
		}
	}
}

func TestRenderStatusBar(t *testing.T) {
	model := setupTestModel(t)
	model.width = 80

	statusBar := model.renderStatusBar()

	if !strings.Contains(statusBar, "1-4") {
		t.Error("expected '1-4' in status bar")
	}
	if !strings.Contains(statusBar, "quit") {
		t.Error("expected 'quit' in status bar")
	}
	if !strings.Contains(statusBar, "?") {
		t.Error("expected '?' in status bar")
	}
}

func TestRenderStatusBar_StopwatchTab(t *testing.T) {
	model := setupTestModel(t)
	model.width = 80
	model.activeTab = TabStopwatch

	statusBar := model.renderStatusBar()

	if !strings.Contains(statusBar, "start/pause") {
		t.Error("expected 'start/pause' in status bar for stopwatch tab")
	}
	if !strings.Contains(statusBar, "lap") {
		t.Error("expected 'lap' in status bar for stopwatch tab")
	}
	if !strings.Contains(statusBar, "stop") {
		t.Error("expected 'stop' in status bar for stopwatch tab")
	}
}

func TestRenderStatusBar_ProjectsTab(t *testing.T) {
	model := setupTestModel(t)
	model.width = 80
	model.activeTab = TabProjects

	statusBar := model.renderStatusBar()

	if !strings.Contains(statusBar, "new") {
		t.Error("expected 'new' in status bar for projects tab")
	}
	if !strings.Contains(statusBar, "delete") {
		t.Error("expected 'delete' in status bar for projects tab")
	}
}

func TestRenderStatusBar_ConfigTab(t *testing.T) {
	model := setupTestModel(t)
	model.width = 80
	model.activeTab = TabConfig

	statusBar := model.renderStatusBar()

	if !strings.Contains(statusBar, "themes") {
		t.Error("expected 'themes' in status bar for config tab")
	}
}

func TestRenderKeyHelp(t *testing.T) {
	model := setupTestModel(t)

	help := model.renderKeyHelp("q", "quit")

	if !strings.Contains(help, "q") {
		t.Error("expected key 'q' in key help")
	}
	if !strings.Contains(help, "quit") {
		t.Error("expected description 'quit' in key help")
	}
}

func TestInitCurrentView(t *testing.T) {
	model := setupTestModel(t)

	tabs := []Tab{TabStopwatch, TabProjects, TabResults, TabConfig}
	for _, tab := range tabs {
		model.activeTab = tab
		cmd := model.initCurrentView()
		// Some views return nil, others return a command
		_ = cmd
	}
}

func TestInitCurrentView_InvalidTab(t *testing.T) {
	model := setupTestModel(t)

	model.activeTab = Tab(999)
	cmd := model.initCurrentView()

	if cmd != nil {
		t.Error("expected nil command for invalid tab")
	}
}

func TestTabNames(t *testing.T) {
	expectedNames := []string{"Stopwatch", "Projects", "Results", "Config"}

	if len(tabNames) != len(expectedNames) {
		t.Errorf("expected %d tab names, got %d", len(expectedNames), len(tabNames))
	}

	for i, name := range expectedNames {
		if tabNames[i] != name {
			t.Errorf("expected tab name %d to be %s, got %s", i, name, tabNames[i])
		}
	}
}

func TestTabConstants(t *testing.T) {
	// Verify tab constants are sequential
	if TabStopwatch != 0 {
		t.Error("TabStopwatch should be 0")
	}
	if TabProjects != 1 {
		t.Error("TabProjects should be 1")
	}
	if TabResults != 2 {
		t.Error("TabResults should be 2")
	}
	if TabConfig != 3 {
		t.Error("TabConfig should be 3")
	}
}

func TestUpdate_ModalInputBlocksAllKeys(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)

	// Go to projects tab and enter create mode by pressing 'n'
	m.activeTab = TabProjects
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newModel.(Model)

	if !m.isModalInputMode() {
		t.Fatal("expected modal input mode after pressing 'n'")
	}

	// Pressing '3' should NOT switch tabs while the name input is open
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	m = newModel.(Model)

	if m.activeTab != TabProjects {
		t.Errorf("expected to stay on TabProjects in modal input mode, got %d", m.activeTab)
	}

	// Tab should also NOT switch views in modal input mode
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(Model)

	if m.activeTab != TabProjects {
		t.Errorf("expected Tab to NOT switch views in modal input mode, got %d", m.activeTab)
	}
}

func TestUpdate_QuitTypedIntoInput(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)

	m.activeTab = TabProjects
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newModel.(Model)

	// 'q' must reach the text input, not quit the program
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = newModel.(Model)

	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("expected 'q' in input mode not to quit")
		}
	}
	if !m.isModalInputMode() {
		t.Error("expected to remain in input mode")
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	model := setupTestModel(t)

	newModel, cmd := model.Update(ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	m := newModel.(Model)

	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", m.themeProvider.CurrentName())
	}
	if m.cfg.Theme != "nord" {
		t.Errorf("expected config theme updated, got %q", m.cfg.Theme)
	}
	if cmd == nil {
		t.Error("expected a command to persist the theme")
	}
}

func TestUpdate_StopwatchSpaceStartsClock(t *testing.T) {
	model := setupTestModel(t)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := newModel.(Model)

	m.activeTab = TabStopwatch
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newModel.(Model)

	if cmd == nil {
		t.Error("expected tick command after starting the stopwatch")
	}
	view := m.View()
	if !strings.Contains(view, "pause") {
		t.Errorf("expected running hints in view, got %q", view)
	}
}
