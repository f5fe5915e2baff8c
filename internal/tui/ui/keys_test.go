package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	// Test that all key bindings are properly configured
	tests := []struct {
		name    string
		binding key.Binding
	}{
		// Navigation
		{"Up", keys.Up},
		{"Down", keys.Down},

		// Tab navigation
		{"NextTab", keys.NextTab},
		{"PrevTab", keys.PrevTab},
		{"Tab1", keys.Tab1},
		{"Tab2", keys.Tab2},
		{"Tab3", keys.Tab3},
		{"Tab4", keys.Tab4},

		// Actions
		{"Select", keys.Select},
		{"Back", keys.Back},
		{"Quit", keys.Quit},
		{"Help", keys.Help},
		{"Refresh", keys.Refresh},

		// List-specific
		{"New", keys.New},
		{"Edit", keys.Edit},
		{"Delete", keys.Delete},

		// Stopwatch-specific
		{"StartPause", keys.StartPause},
		{"Lap", keys.Lap},
		{"Stop", keys.Stop},
		{"Reset", keys.Reset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("expected %s to have at least one key", tt.name)
			}
			if tt.binding.Help().Key == "" {
				t.Errorf("expected %s to have help text", tt.name)
			}
		})
	}
}

func TestDefaultKeyMap_StopwatchKeys(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		want    string
	}{
		{"StartPause", keys.StartPause, " "},
		{"Lap", keys.Lap, "l"},
		{"Stop", keys.Stop, "x"},
		{"Reset", keys.Reset, "r"},
	}

	for _, tt := range tests {
		found := false
		for _, k := range tt.binding.Keys() {
			if k == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s to be bound to %q, got %v", tt.name, tt.want, tt.binding.Keys())
		}
	}
}

func TestDefaultKeyMap_NoVimHorizontal(t *testing.T) {
	keys := DefaultKeyMap()

	// "l" records a lap, so no binding other than Lap may claim it
	bindings := map[string]key.Binding{
		"Up":      keys.Up,
		"Down":    keys.Down,
		"Select":  keys.Select,
		"Back":    keys.Back,
		"Refresh": keys.Refresh,
	}
	for name, b := range bindings {
		for _, k := range b.Keys() {
			if k == "l" || k == "h" {
				t.Errorf("binding %s must not use vim horizontal key %q", name, k)
			}
		}
	}
}
