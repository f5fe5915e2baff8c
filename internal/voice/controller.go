package voice

import (
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
)

// RollbackWindow is how recently a voice-issued lap must have been
// recorded for a voice stop to discard it. "Lap, stop" spoken together
// means the lap was an accident, not a real boundary.
const RollbackWindow = 650 * time.Millisecond

// Event describes what a transcript made the controller do. The zero
// value means the transcript was ignored.
type Event struct {
	Command  Command
	Executed bool

	// Lap is set when a lap was recorded.
	Lap *model.Lap
	// RolledBack is set when a stop discarded the just-recorded lap.
	RolledBack *model.Lap
	// Outcome is set when a stop ran; Outcome.Finalize signals the
	// session is ready to save.
	Outcome *stopwatch.Outcome
	// ChoicePrompted is set when a start was intercepted by a pending
	// resume-or-remeasure choice.
	ChoicePrompted bool
	// Disabled is set when the voice session auto-disabled after a stop.
	Disabled bool
}

// Controller is the semantic layer between a speech source and the
// stopwatch. It owns the ephemeral voice session state: enabled flag,
// debounce bookkeeping, and the timestamp of the last voice-issued lap.
type Controller struct {
	clock      stopwatch.Clock
	sw         *stopwatch.Stopwatch
	classifier *Classifier
	debounce   *Debouncer

	enabled     bool
	recognizing bool

	choicePending bool

	lastLapAt    time.Time
	lastLapVoice bool
}

// NewController wires a controller to a stopwatch. A nil clock falls back
// to the system clock.
func NewController(sw *stopwatch.Stopwatch, classifier *Classifier, clock stopwatch.Clock) *Controller {
	if clock == nil {
		clock = stopwatch.SystemClock{}
	}
	return &Controller{
		clock:      clock,
		sw:         sw,
		classifier: classifier,
		debounce:   NewDebouncer(clock),
	}
}

// Enable turns voice control on and resets the session bookkeeping.
func (c *Controller) Enable() {
	c.enabled = true
	c.debounce.Reset()
	c.lastLapVoice = false
}

// Disable turns voice control off.
func (c *Controller) Disable() {
	c.enabled = false
	c.recognizing = false
}

// Enabled reports whether voice control is user-enabled.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// SetRecognizing records whether the external recognizer is currently
// listening. Purely informational, surfaced to the UI.
func (c *Controller) SetRecognizing(on bool) {
	c.recognizing = on
}

// Recognizing reports whether the recognizer is listening.
func (c *Controller) Recognizing() bool {
	return c.recognizing
}

// SetChoicePending tells the controller that a resume-or-remeasure choice
// is waiting on the user. While pending, a voice start triggers the
// prompt instead of the timer.
func (c *Controller) SetChoicePending(pending bool) {
	c.choicePending = pending
}

// HandleTranscript feeds one transcript event through classification,
// debouncing, and the state-dependent guards, dispatching at most one
// command to the stopwatch.
func (c *Controller) HandleTranscript(text string, isFinal bool) Event {
	if !c.enabled {
		return Event{}
	}

	cmd := c.classifier.Classify(text)
	if cmd == CommandNone {
		return Event{}
	}

	if !c.debounce.Allow(cmd, Normalize(text), isFinal) {
		return Event{Command: cmd}
	}

	ev := c.dispatch(cmd)
	if ev.Executed {
		c.debounce.MarkExecuted(cmd, isFinal)
	}
	return ev
}

// dispatch applies the state-dependent guards and runs the command.
// Guard failures are silent no-ops: Executed stays false and the cooldown
// is not started, so UI/voice races never lock out a valid command.
func (c *Controller) dispatch(cmd Command) Event {
	ev := Event{Command: cmd}

	switch cmd {
	case CommandStart:
		if c.choicePending {
			ev.Executed = true
			ev.ChoicePrompted = true
			return ev
		}
		ev.Executed = c.sw.Start()

	case CommandNext:
		if lap, ok := c.sw.RecordLap(); ok {
			ev.Executed = true
			ev.Lap = &lap
			c.lastLapAt = c.clock.Now()
			c.lastLapVoice = true
		}

	case CommandPause:
		ev.Executed = c.sw.Pause()

	case CommandResume:
		ev.Executed = c.sw.Resume()

	case CommandReset:
		out := c.sw.Reset(true)
		ev.Executed = true
		ev.Outcome = &out
		c.lastLapVoice = false

	case CommandStop:
		if c.lastLapVoice && c.clock.Now().Sub(c.lastLapAt) <= RollbackWindow {
			if lap, ok := c.sw.RemoveLastLap(); ok {
				ev.RolledBack = &lap
			}
		}
		out := c.sw.Stop(false)
		ev.Executed = true
		ev.Outcome = &out
		// One-shot session: a spoken stop ends voice control.
		c.Disable()
		ev.Disabled = true
	}

	return ev
}
