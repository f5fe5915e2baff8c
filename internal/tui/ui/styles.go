package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Stopwatch display
	ClockRunning lipgloss.Style
	ClockPaused  lipgloss.Style
	ClockIdle    lipgloss.Style
	Countdown    lipgloss.Style

	// Lap table
	LapNumber  lipgloss.Style
	LapTime    lipgloss.Style
	LapTotal   lipgloss.Style
	LapFastest lipgloss.Style
	LapSlowest lipgloss.Style

	// Lists
	ItemSelected lipgloss.Style
	ItemNormal   lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the styles used before a theme is loaded
func DefaultStyles() Styles {
	// Color palette
	primary := lipgloss.Color("99")     // Purple
	secondary := lipgloss.Color("39")   // Cyan
	accent := lipgloss.Color("212")     // Pink
	muted := lipgloss.Color("240")      // Gray
	success := lipgloss.Color("82")     // Green
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red
	fg := lipgloss.Color("252")
	bg := lipgloss.Color("236")

	return buildStyles(primary, secondary, accent, muted, success, warning, errorColor, fg, bg)
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Theme colors map to semantic UI elements:
// - Primary: Purple (tabs, titles)
// - Secondary: Cyan (lap times, keys)
// - Accent: BrightPurple (the running clock)
// - Muted: BrightBlack (inactive elements, labels)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return buildStyles(r.Purple(), r.Cyan(), r.BrightPurple(), r.BrightBlack(),
		r.Green(), r.Yellow(), r.Red(), r.Fg(), r.Bg())
}

func buildStyles(primary, secondary, accent, muted, success, warning, errorColor, fg, bg lipgloss.TerminalColor) Styles {
	return Styles{
		// Base styles
		App: lipgloss.NewStyle().Padding(1, 2),

		// Tab bar
		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		// Content area
		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		// Stopwatch display
		ClockRunning: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ClockPaused: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		ClockIdle: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),
		Countdown: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),

		// Lap table
		LapNumber: lipgloss.NewStyle().
			Foreground(muted).
			Width(6),
		LapTime: lipgloss.NewStyle().
			Foreground(secondary).
			Width(12),
		LapTotal: lipgloss.NewStyle().
			Foreground(fg).
			Width(12),
		LapFastest: lipgloss.NewStyle().
			Foreground(success),
		LapSlowest: lipgloss.NewStyle().
			Foreground(errorColor),

		// Lists
		ItemSelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		ItemNormal: lipgloss.NewStyle(),

		// Stats
		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		// Input
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		// Dialog
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		// Errors and warnings
		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

// ProjectBadge builds a badge style from a project's stored colors.
// Empty colors fall back to the given defaults so unthemed projects still
// render a visible badge.
func ProjectBadge(color, textColor string, fallback lipgloss.Style) lipgloss.Style {
	style := fallback.Padding(0, 1)
	if color != "" {
		style = style.Background(lipgloss.Color(color))
	}
	if textColor != "" {
		style = style.Foreground(lipgloss.Color(textColor))
	}
	return style
}
