package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	// Test that styles are non-empty (basic sanity check)
	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"App", styles.App},
		{"TabBar", styles.TabBar},
		{"TabActive", styles.TabActive},
		{"TabInactive", styles.TabInactive},
		{"Content", styles.Content},
		{"ViewTitle", styles.ViewTitle},
		{"StatusBar", styles.StatusBar},
		{"StatusKey", styles.StatusKey},
		{"StatusHelp", styles.StatusHelp},
		{"ClockRunning", styles.ClockRunning},
		{"ClockPaused", styles.ClockPaused},
		{"ClockIdle", styles.ClockIdle},
		{"Countdown", styles.Countdown},
		{"LapNumber", styles.LapNumber},
		{"LapTime", styles.LapTime},
		{"LapTotal", styles.LapTotal},
		{"LapFastest", styles.LapFastest},
		{"LapSlowest", styles.LapSlowest},
		{"ItemSelected", styles.ItemSelected},
		{"ItemNormal", styles.ItemNormal},
		{"StatLabel", styles.StatLabel},
		{"StatValue", styles.StatValue},
		{"Input", styles.Input},
		{"InputFocused", styles.InputFocused},
		{"Dialog", styles.Dialog},
		{"DialogTitle", styles.DialogTitle},
		{"Error", styles.Error},
		{"Warning", styles.Warning},
		{"Success", styles.Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Render some text with the style to verify it works
			rendered := tt.style.Render("test")
			if rendered == "" {
				t.Errorf("expected non-empty rendered output for style %s", tt.name)
			}
		})
	}
}

func TestNewStylesFromRegistry(t *testing.T) {
	tp := NewThemeProvider("dracula")
	styles := NewStylesFromRegistry(tp.Registry())

	if styles.ClockRunning.Render("00:00.00") == "" {
		t.Error("expected non-empty rendered output")
	}
	if styles.Dialog.Render("content") == "" {
		t.Error("expected non-empty rendered output")
	}
}

func TestProjectBadge(t *testing.T) {
	fallback := DefaultStyles().StatValue

	badge := ProjectBadge("#ff0000", "#ffffff", fallback)
	if badge.GetBackground() != lipgloss.Color("#ff0000") {
		t.Errorf("expected stored background color, got %v", badge.GetBackground())
	}
	if badge.GetForeground() != lipgloss.Color("#ffffff") {
		t.Errorf("expected stored text color, got %v", badge.GetForeground())
	}
}

func TestProjectBadge_EmptyColors(t *testing.T) {
	fallback := DefaultStyles().StatValue

	badge := ProjectBadge("", "", fallback)
	if badge.Render("name") == "" {
		t.Error("expected non-empty rendered output for unthemed project")
	}
}
