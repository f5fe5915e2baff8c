// Package stopwatch implements the timing state machine and the lap ledger.
//
// The state machine is Idle -> Running -> Paused -> Running -> Stopped ->
// Idle. Every operation called from an invalid state is a silent no-op
// rather than an error: UI and voice input routinely race against the
// timer, and the caller can always inspect the returned bool or the
// snapshot to find out what actually happened.
//
// The package owns no goroutines. Elapsed time is recomputed on demand
// from the injected Clock; the periodic "tick" that drives display updates
// belongs to the caller (the TUI tick loop or the voice runner).
package stopwatch

import (
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
)

// State is a read-only snapshot of the timing state.
type State struct {
	Running       bool
	Paused        bool
	Elapsed       time.Duration
	PausedElapsed time.Duration
	LapCount      int
}

// Outcome is the tagged result of Stop and Reset. When Finalize is true
// the session is ready to be turned into a saved Result; Laps then holds
// at least one lap (synthesized from the whole elapsed time if none were
// recorded) and Elapsed the final elapsed duration.
type Outcome struct {
	Finalize bool
	Laps     []model.Lap
	Elapsed  time.Duration
}

// Stopwatch owns the timing state and the append-only lap ledger for the
// in-progress session. It is not safe for concurrent use; all core
// mutations are expected to run on a single event loop.
type Stopwatch struct {
	clock Clock

	running       bool
	paused        bool
	startEpoch    time.Time
	pausedElapsed time.Duration
	elapsed       time.Duration

	laps []model.Lap
}

// New creates an idle stopwatch using the given clock.
// A nil clock falls back to SystemClock.
func New(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

// Start begins (or continues, after a stop) timing. No-op when already
// running. Returns whether the state changed.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.startEpoch = s.clock.Now().Add(-s.pausedElapsed)
	s.running = true
	s.paused = false
	s.Tick()
	return true
}

// Pause freezes the elapsed time. No-op unless running and not paused.
func (s *Stopwatch) Pause() bool {
	if !s.running || s.paused {
		return false
	}
	s.Tick()
	s.pausedElapsed = s.elapsed
	s.paused = true
	return true
}

// Resume continues timing from the frozen elapsed time. No-op unless paused.
func (s *Stopwatch) Resume() bool {
	if !s.running || !s.paused {
		return false
	}
	s.startEpoch = s.clock.Now().Add(-s.elapsed)
	s.paused = false
	return true
}

// Stop halts timing. Always legal, including when already stopped.
//
// Unless suppressFinalize is set, a session with measured time or recorded
// laps produces a Finalize outcome; a lap spanning the whole elapsed time
// is synthesized when the ledger is empty so a finalized session never has
// zero laps. A session with nothing measured yields an idle outcome.
func (s *Stopwatch) Stop(suppressFinalize bool) Outcome {
	s.Tick()
	s.running = false
	s.paused = false
	s.pausedElapsed = s.elapsed

	if suppressFinalize || (s.elapsed == 0 && len(s.laps) == 0) {
		return Outcome{}
	}

	if len(s.laps) == 0 {
		ms := s.elapsed.Milliseconds()
		s.laps = append(s.laps, model.Lap{Number: 1, Time: ms, Cumulative: ms})
	}
	return Outcome{
		Finalize: true,
		Laps:     s.Laps(),
		Elapsed:  s.elapsed,
	}
}

// Reset stops the stopwatch and clears it back to the initial idle state:
// zero elapsed, empty ledger. The Stop outcome is passed through so a
// non-suppressed reset can still hand the session off for saving.
func (s *Stopwatch) Reset(suppressFinalize bool) Outcome {
	out := s.Stop(suppressFinalize)
	s.elapsed = 0
	s.pausedElapsed = 0
	s.startEpoch = time.Time{}
	s.laps = nil
	return out
}

// Restore loads a previously stopped session into an idle stopwatch, so
// a persisted draft can be resumed across process restarts. Start then
// continues from the restored elapsed time. No-op while running.
func (s *Stopwatch) Restore(elapsed time.Duration, laps []model.Lap) bool {
	if s.running {
		return false
	}
	s.elapsed = elapsed
	s.pausedElapsed = elapsed
	s.laps = make([]model.Lap, len(laps))
	copy(s.laps, laps)
	return true
}

// Tick recomputes elapsed time from the clock. Cheap and idempotent; a
// no-op unless running and not paused. Elapsed never decreases while
// running, even if the clock misbehaves.
func (s *Stopwatch) Tick() {
	if !s.running || s.paused {
		return
	}
	if e := s.clock.Now().Sub(s.startEpoch); e > s.elapsed {
		s.elapsed = e
	}
}

// Elapsed returns the current elapsed time, recomputing it first when the
// stopwatch is actively running.
func (s *Stopwatch) Elapsed() time.Duration {
	s.Tick()
	return s.elapsed
}

// RecordLap appends a lap at the current elapsed time. Valid only while
// running and not paused; the wall clock is read at the moment of the
// call, so two near-simultaneous calls yield two distinct, ordered laps.
func (s *Stopwatch) RecordLap() (model.Lap, bool) {
	if !s.running || s.paused {
		return model.Lap{}, false
	}
	s.Tick()
	cumulative := s.elapsed.Milliseconds()
	var last int64
	if n := len(s.laps); n > 0 {
		last = s.laps[n-1].Cumulative
	}
	lap := model.Lap{
		Number:     len(s.laps) + 1,
		Time:       cumulative - last,
		Cumulative: cumulative,
	}
	s.laps = append(s.laps, lap)
	return lap, true
}

// RemoveLap removes the lap at the 0-based index, renumbers the remaining
// laps from 1 and recomputes their cumulative times from the preserved
// per-lap deltas. Returns false when the index is out of range.
func (s *Stopwatch) RemoveLap(index int) bool {
	if index < 0 || index >= len(s.laps) {
		return false
	}
	remaining := make([]model.Lap, 0, len(s.laps)-1)
	remaining = append(remaining, s.laps[:index]...)
	remaining = append(remaining, s.laps[index+1:]...)
	s.laps = model.RenumberLaps(remaining)
	return true
}

// RemoveLastLap discards the most recent lap and returns it. Used by the
// voice controller to roll back a lap recorded just before a stop.
func (s *Stopwatch) RemoveLastLap() (model.Lap, bool) {
	if len(s.laps) == 0 {
		return model.Lap{}, false
	}
	last := s.laps[len(s.laps)-1]
	s.laps = s.laps[:len(s.laps)-1]
	return last, true
}

// Laps returns a copy of the lap ledger.
func (s *Stopwatch) Laps() []model.Lap {
	out := make([]model.Lap, len(s.laps))
	copy(out, s.laps)
	return out
}

// Running reports whether the stopwatch is running (possibly paused).
func (s *Stopwatch) Running() bool {
	return s.running
}

// Paused reports whether the stopwatch is paused.
// Paused implies Running.
func (s *Stopwatch) Paused() bool {
	return s.paused
}

// Snapshot returns the current timing state for display.
func (s *Stopwatch) Snapshot() State {
	return State{
		Running:       s.running,
		Paused:        s.paused,
		Elapsed:       s.Elapsed(),
		PausedElapsed: s.pausedElapsed,
		LapCount:      len(s.laps),
	}
}
