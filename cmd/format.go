package cmd

import (
	"fmt"
)

// formatStopwatch formats milliseconds as MM:SS.hh, the display format
// used everywhere a lap or session time is shown. Minutes grow past 99
// without wrapping.
func formatStopwatch(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60_000
	seconds := (ms % 60_000) / 1000
	hundredths := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}

// formatEarnings formats a wage amount for display.
func formatEarnings(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// pluralize returns the singular or plural form of a word based on count
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
