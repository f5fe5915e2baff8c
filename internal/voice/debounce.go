package voice

import (
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
)

// Default debounce windows. The cooldown and echo windows guard against
// the recognizer re-emitting interim transcripts; the final-duplicate
// window covers the gap between an interim result that already executed
// and the final result of the same utterance.
const (
	DefaultCooldown       = 500 * time.Millisecond
	DefaultEchoWindow     = 500 * time.Millisecond
	DefaultFinalDupWindow = 4500 * time.Millisecond
)

// Debouncer enforces at most one executed command per semantically
// distinct utterance. It is pure bookkeeping: the caller classifies
// before asking and dispatches after.
type Debouncer struct {
	clock stopwatch.Clock

	cooldown       time.Duration
	echoWindow     time.Duration
	finalDupWindow time.Duration

	executed           bool
	lastCommand        Command
	lastExecutedAt     time.Time
	lastExecWasInterim bool

	lastText   string
	lastTextAt time.Time
	seenText   bool
}

// NewDebouncer creates a debouncer with the default windows.
func NewDebouncer(clock stopwatch.Clock) *Debouncer {
	if clock == nil {
		clock = stopwatch.SystemClock{}
	}
	return &Debouncer{
		clock:          clock,
		cooldown:       DefaultCooldown,
		echoWindow:     DefaultEchoWindow,
		finalDupWindow: DefaultFinalDupWindow,
	}
}

// Allow decides whether a classified candidate may execute now. normText
// must already be normalized. Every candidate, allowed or not, becomes
// the "previous transcript" for echo suppression.
//
// Three rejection rules, in order:
//  1. Cooldown: any candidate within the cooldown window of the last
//     executed command is rejected regardless of content. Stop is exempt:
//     it executes unconditionally, and holding it back would turn a fast
//     "lap, stop" into a missed stop.
//  2. Echo suppression: a candidate whose normalized text equals the
//     immediately previous transcript and arrives within the echo window
//     of it is a recognizer re-emission, not a new utterance.
//  3. Final-after-interim: when the previous execution was triggered by
//     an interim result, a final result of the same category within the
//     longer window is the tail of the same utterance.
func (d *Debouncer) Allow(cmd Command, normText string, isFinal bool) bool {
	now := d.clock.Now()
	allowed := d.allow(cmd, normText, isFinal, now)

	d.lastText = normText
	d.lastTextAt = now
	d.seenText = true

	return allowed
}

func (d *Debouncer) allow(cmd Command, normText string, isFinal bool, now time.Time) bool {
	if d.executed && cmd != CommandStop && now.Sub(d.lastExecutedAt) < d.cooldown {
		return false
	}
	if d.seenText && normText == d.lastText && now.Sub(d.lastTextAt) < d.echoWindow {
		return false
	}
	if d.executed && d.lastExecWasInterim && isFinal &&
		cmd == d.lastCommand && now.Sub(d.lastExecutedAt) < d.finalDupWindow {
		return false
	}
	return true
}

// MarkExecuted records a command as the last executed one. Called only
// after the command actually ran, so a guard-blocked no-op never starts
// a cooldown.
func (d *Debouncer) MarkExecuted(cmd Command, isFinal bool) {
	d.executed = true
	d.lastCommand = cmd
	d.lastExecutedAt = d.clock.Now()
	d.lastExecWasInterim = !isFinal
}

// Admit combines Allow and MarkExecuted for callers that treat admission
// as execution.
func (d *Debouncer) Admit(cmd Command, normText string, isFinal bool) bool {
	if !d.Allow(cmd, normText, isFinal) {
		return false
	}
	d.MarkExecuted(cmd, isFinal)
	return true
}

// LastCommand returns the last executed command, CommandNone if nothing
// has executed yet.
func (d *Debouncer) LastCommand() Command {
	if !d.executed {
		return CommandNone
	}
	return d.lastCommand
}

// Reset clears all bookkeeping, as when a voice session ends.
func (d *Debouncer) Reset() {
	d.executed = false
	d.lastCommand = CommandNone
	d.lastExecutedAt = time.Time{}
	d.lastExecWasInterim = false
	d.lastText = ""
	d.lastTextAt = time.Time{}
	d.seenText = false
}
