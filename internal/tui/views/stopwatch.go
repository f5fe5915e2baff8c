package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/config"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stats"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/tui/ui"
)

// clockInterval is how often the running clock display refreshes.
const clockInterval = 10 * time.Millisecond

// StopwatchModel is the model for the stopwatch view
type StopwatchModel struct {
	svc       *session.Service
	cfg       config.Config
	draftPath string
	styles    ui.Styles
	keys      ui.KeyMap

	// UI state
	width  int
	height int
	status string
	err    error

	sw *stopwatch.Stopwatch
	// generation tags tick commands; a bumped generation orphans every
	// tick scheduled before it, so stale ticks from a stopped clock or a
	// cancelled countdown are dropped on arrival.
	generation int

	// Countdown state (seconds remaining, 0 = inactive)
	countdownLeft int

	// Save dialog state
	saving  bool
	outcome stopwatch.Outcome
	input   textinput.Model
	saveErr string

	// Pending draft choice state
	choosing bool
	draft    *stopwatch.Draft
}

// NewStopwatchModel creates a new stopwatch view model
func NewStopwatchModel(svc *session.Service, cfg config.Config, draftPath string, styles ui.Styles, keys ui.KeyMap) StopwatchModel {
	ti := textinput.New()
	ti.Placeholder = "Session name @project..."
	ti.CharLimit = 200
	ti.Width = 44

	return StopwatchModel{
		svc:       svc,
		cfg:       cfg,
		draftPath: draftPath,
		styles:    styles,
		keys:      keys,
		sw:        stopwatch.New(nil),
		input:     ti,
	}
}

// clockTickMsg drives the running clock display
type clockTickMsg struct {
	generation int
}

// countdownTickMsg drives the delayed-start countdown
type countdownTickMsg struct {
	generation int
}

// draftLoadedMsg is sent when the pending session draft has been checked
type draftLoadedMsg struct {
	draft *stopwatch.Draft
	err   error
}

// sessionSavedMsg is sent when a finished session has been saved
type sessionSavedMsg struct {
	result  model.Result
	project model.Project
	err     error
}

// Init implements tea.Model
func (m StopwatchModel) Init() tea.Cmd {
	return m.loadDraft()
}

// Update implements tea.Model
func (m StopwatchModel) Update(msg tea.Msg) (StopwatchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.saving {
			return m.handleSaveDialog(msg)
		}
		if m.choosing {
			return m.handleDraftChoice(msg)
		}
		return m.handleKeys(msg)

	case clockTickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.sw.Tick()
		if m.sw.Running() {
			return m, m.tickClock()
		}
		return m, nil

	case countdownTickMsg:
		if msg.generation != m.generation || m.countdownLeft == 0 {
			return m, nil
		}
		m.countdownLeft--
		if m.countdownLeft == 0 {
			return m, m.startClock()
		}
		return m, m.tickCountdown()

	case draftLoadedMsg:
		m.err = msg.err
		if msg.draft != nil {
			m.draft = msg.draft
			m.choosing = true
		}
		return m, nil

	case sessionSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.sw.Reset(true)
		m.generation++
		m.status = fmt.Sprintf("Saved: %s in %s (%s)",
			msg.result.Name, msg.project.Name, formatStopwatch(msg.result.TotalTime))
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.saving {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeys handles key events outside the dialogs
func (m StopwatchModel) handleKeys(msg tea.KeyMsg) (StopwatchModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StartPause):
		if m.countdownLeft > 0 {
			m.countdownLeft = 0
			m.generation++
			m.status = "Countdown cancelled"
			return m, nil
		}
		if m.sw.Paused() {
			m.sw.Resume()
			m.status = ""
			return m, nil
		}
		if m.sw.Running() {
			m.sw.Pause()
			return m, nil
		}
		m.status = ""
		if m.cfg.CountdownSeconds > 0 {
			m.countdownLeft = m.cfg.CountdownSeconds
			m.generation++
			return m, m.tickCountdown()
		}
		return m, m.startClock()

	case key.Matches(msg, m.keys.Lap):
		m.sw.RecordLap()
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		if m.countdownLeft > 0 {
			m.countdownLeft = 0
			m.generation++
			return m, nil
		}
		outcome := m.sw.Stop(false)
		m.generation++
		if !outcome.Finalize {
			return m, nil
		}
		m.outcome = outcome
		m.saving = true
		m.saveErr = ""
		m.input.SetValue("")
		m.input.Focus()
		// The draft survives a crash between stop and save.
		return m, tea.Batch(textinput.Blink, m.writeDraft(outcome))

	case key.Matches(msg, m.keys.Reset):
		m.countdownLeft = 0
		m.sw.Reset(true)
		m.generation++
		m.status = ""
		return m, m.clearDraft()
	}

	return m, nil
}

// handleSaveDialog handles key events while the save dialog is open
func (m StopwatchModel) handleSaveDialog(msg tea.KeyMsg) (StopwatchModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		name, project := parseSaveInput(m.input.Value())
		if project == "" {
			m.saveErr = "Add @project to choose a project"
			return m, nil
		}
		if name == "" {
			name = "Untitled session"
		}
		m.saving = false
		m.input.Blur()
		return m, m.saveSession(name, project, m.outcome)

	case key.Matches(msg, m.keys.Back): // Escape keeps the draft
		m.saving = false
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Session kept as draft"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDraftChoice handles key events while the pending-draft dialog is open
func (m StopwatchModel) handleDraftChoice(msg tea.KeyMsg) (StopwatchModel, tea.Cmd) {
	switch msg.String() {
	case "r": // Resume the stopped session
		m.sw.Restore(m.draft.Elapsed(), m.draft.Laps)
		m.choosing = false
		m.draft = nil
		m.status = "Draft restored. Press space to continue timing"
		return m, m.clearDraft()

	case "n": // Discard and start fresh
		m.choosing = false
		m.draft = nil
		m.status = "Draft discarded"
		return m, m.clearDraft()

	case "esc": // Decide later, keep the draft on disk
		m.choosing = false
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m StopwatchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Stopwatch"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.choosing {
		return b.String() + m.renderDraftChoice()
	}

	b.WriteString(m.renderClock())
	b.WriteString("\n\n")

	if laps := m.sw.Laps(); len(laps) > 0 {
		b.WriteString(m.renderLaps(laps))
		b.WriteString("\n")
	}

	if m.saving {
		b.WriteString(m.renderSaveDialog())
		return b.String()
	}

	if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatusHelp.Render(m.renderHint()))
	return b.String()
}

// renderClock renders the large elapsed-time display
func (m StopwatchModel) renderClock() string {
	if m.countdownLeft > 0 {
		return m.styles.Countdown.Render(fmt.Sprintf("Starting in %d...", m.countdownLeft))
	}

	clock := formatStopwatch(m.sw.Elapsed().Milliseconds())
	switch {
	case m.sw.Paused():
		return m.styles.ClockPaused.Render(clock) + "  " + m.styles.Warning.Render("paused")
	case m.sw.Running():
		return m.styles.ClockRunning.Render(clock)
	default:
		return m.styles.ClockIdle.Render(clock)
	}
}

// renderLaps renders the lap table, newest first, with the fastest and
// slowest laps highlighted once there is more than one.
func (m StopwatchModel) renderLaps(laps []model.Lap) string {
	var b strings.Builder

	s := stats.CalculateLapStats(laps)
	highlight := len(laps) > 1

	for i := len(laps) - 1; i >= 0; i-- {
		lap := laps[i]
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

	return b.String()
}

// renderSaveDialog renders the save prompt for a finished session
func (m StopwatchModel) renderSaveDialog() string {
	var b strings.Builder

	b.WriteString(m.styles.DialogTitle.Render(fmt.Sprintf("Save session (%s, %d %s)",
		formatStopwatch(m.outcome.Elapsed.Milliseconds()),
		len(m.outcome.Laps), pluralize("lap", len(m.outcome.Laps)))))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.saveErr != "" {
		b.WriteString(m.styles.Warning.Render(m.saveErr))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.StatusHelp.Render("Enter save  Esc keep as draft"))

	return m.styles.Dialog.Render(b.String())
}

// renderDraftChoice renders the resume-or-discard prompt for a pending draft
func (m StopwatchModel) renderDraftChoice() string {
	var b strings.Builder

	b.WriteString(m.styles.DialogTitle.Render("A stopped session is waiting"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %d %s, stopped %s\n\n",
		formatStopwatch(m.draft.ElapsedMs),
		len(m.draft.Laps), pluralize("lap", len(m.draft.Laps)),
		formatCreatedAt(m.draft.StoppedAt)))
	b.WriteString(m.styles.StatusHelp.Render("r resume  n start fresh  Esc decide later"))

	return m.styles.Dialog.Render(b.String())
}

// renderHint returns the context-sensitive key hint line
func (m StopwatchModel) renderHint() string {
	switch {
	case m.countdownLeft > 0:
		return "space/x cancel countdown"
	case m.sw.Paused():
		return "space resume  x stop  r reset"
	case m.sw.Running():
		return "space pause  l lap  x stop"
	case m.sw.Elapsed() > 0:
		return "space continue  x save  r reset"
	default:
		return "space start"
	}
}

// SetSize sets the view dimensions
func (m *StopwatchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m StopwatchModel) IsInputMode() bool {
	return m.saving || m.choosing
}

// startClock starts the stopwatch and kicks off the display tick loop
func (m *StopwatchModel) startClock() tea.Cmd {
	m.countdownLeft = 0
	m.sw.Start()
	m.generation++
	return m.tickClock()
}

// tickClock returns a command that refreshes the clock display
func (m StopwatchModel) tickClock() tea.Cmd {
	gen := m.generation
	return tea.Tick(clockInterval, func(time.Time) tea.Msg {
		return clockTickMsg{generation: gen}
	})
}

// tickCountdown returns a command that advances the countdown once a second
func (m StopwatchModel) tickCountdown() tea.Cmd {
	gen := m.generation
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{generation: gen}
	})
}

// loadDraft creates a command that checks for a pending session draft
func (m StopwatchModel) loadDraft() tea.Cmd {
	return func() tea.Msg {
		draft, err := stopwatch.LoadDraft(m.draftPath)
		return draftLoadedMsg{draft: draft, err: err}
	}
}

// writeDraft creates a command that persists the stopped session as a draft
func (m StopwatchModel) writeDraft(outcome stopwatch.Outcome) tea.Cmd {
	return func() tea.Msg {
		_ = stopwatch.SaveDraft(m.draftPath, stopwatch.Draft{
			ElapsedMs: outcome.Elapsed.Milliseconds(),
			Laps:      outcome.Laps,
			StoppedAt: time.Now(),
		})
		return nil
	}
}

// clearDraft creates a command that removes the pending session draft
func (m StopwatchModel) clearDraft() tea.Cmd {
	return func() tea.Msg {
		_ = stopwatch.ClearDraft(m.draftPath)
		return nil
	}
}

// saveSession creates a command that saves the finished session into the
// named project, creating the project on first use.
func (m StopwatchModel) saveSession(name, projectName string, outcome stopwatch.Outcome) tea.Cmd {
	return func() tea.Msg {
		project, err := m.svc.FindProject(projectName)
		if errors.Is(err, session.ErrProjectNotFound) {
			project, err = m.svc.CreateProject(projectName, "", "")
		}
		if err != nil {
			return sessionSavedMsg{err: err}
		}

		draft := model.Result{
			FolderID: project.ID,
			Name:     name,
			Laps:     outcome.Laps,
		}
		if m.cfg.HourlyWage > 0 {
			wage := m.cfg.HourlyWage
			draft.HourlyWage = &wage
		}
		saved, err := m.svc.SaveResult(draft)
		if err != nil {
			return sessionSavedMsg{err: err}
		}
		_ = stopwatch.ClearDraft(m.draftPath)
		return sessionSavedMsg{result: saved, project: project}
	}
}

// parseSaveInput splits "name @project" into its parts. The project is the
// text after the last "@"; everything before it is the session name.
func parseSaveInput(value string) (name, project string) {
	value = strings.TrimSpace(value)
	if idx := strings.LastIndex(value, "@"); idx >= 0 {
		project = strings.TrimSpace(value[idx+1:])
		name = strings.TrimSpace(value[:idx])
		return name, project
	}
	return value, ""
}
