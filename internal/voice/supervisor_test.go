package voice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
)

// scriptedSource replays canned runs: each Start delivers one run's
// transcripts and then its end error.
type scriptedSource struct {
	runs [][]Transcript
	errs []error
	run  int

	events chan Transcript
	done   chan error
}

func (s *scriptedSource) Start() error {
	s.events = make(chan Transcript)
	s.done = make(chan error, 1)
	run := s.run
	s.run++
	go func() {
		for _, t := range s.runs[run] {
			s.events <- t
		}
		s.done <- s.errs[run]
	}()
	return nil
}

func (s *scriptedSource) Stop()                      {}
func (s *scriptedSource) Events() <-chan Transcript { return s.events }
func (s *scriptedSource) Done() <-chan error        { return s.done }

func TestSupervisor_RestartsWhileEnabled(t *testing.T) {
	clock := newFakeClock()
	sw := stopwatch.New(clock)
	c := NewController(sw, newTestClassifier(), clock)
	c.Enable()

	// First run fails mid-session; second run delivers the stop that
	// disables voice control and ends the supervisor.
	src := &scriptedSource{
		runs: [][]Transcript{
			{{Text: "start", Final: true}},
			{{Text: "stop", Final: true}},
		},
		errs: []error{errors.New("recognizer died"), nil},
	}

	sup := NewSupervisor(src, c)
	sup.backoff = time.Millisecond

	var ends []error
	sup.OnEnd = func(err error) { ends = append(ends, err) }

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.run != 2 {
		t.Errorf("expected 2 source runs, got %d", src.run)
	}
	if len(ends) != 2 || ends[0] == nil || ends[1] != nil {
		t.Errorf("unexpected end sequence: %v", ends)
	}
	if c.Enabled() {
		t.Error("expected voice control disabled after spoken stop")
	}
}

func TestSupervisor_ExitsWhenUserDisabled(t *testing.T) {
	clock := newFakeClock()
	sw := stopwatch.New(clock)
	c := NewController(sw, newTestClassifier(), clock)
	c.Enable()

	src := &scriptedSource{
		runs: [][]Transcript{{}},
		errs: []error{errors.New("mic gone")},
	}
	sup := NewSupervisor(src, c)
	sup.backoff = time.Millisecond
	sup.OnEnd = func(error) { c.Disable() }

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.run != 1 {
		t.Errorf("expected a single run, got %d", src.run)
	}
}

func TestSupervisor_ForwardsEvents(t *testing.T) {
	clock := newFakeClock()
	sw := stopwatch.New(clock)
	c := NewController(sw, newTestClassifier(), clock)
	c.Enable()

	src := &scriptedSource{
		runs: [][]Transcript{{
			{Text: "start", Final: true},
			{Text: "stop", Final: true},
		}},
		errs: []error{nil},
	}
	sup := NewSupervisor(src, c)

	var executed []Command
	sup.OnEvent = func(ev Event) {
		if ev.Executed {
			executed = append(executed, ev.Command)
		}
	}

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executed) != 2 || executed[0] != CommandStart || executed[1] != CommandStop {
		t.Errorf("unexpected executed commands: %v", executed)
	}
	if sw.Running() {
		t.Error("expected stopwatch stopped")
	}
}

func TestReaderSource_ParsesInterimMarkers(t *testing.T) {
	src := NewReaderSource(strings.NewReader("~ start\n\nnext lap\n"))
	if err := src.Start(); err != nil {
		t.Fatal(err)
	}

	first := <-src.Events()
	if first.Final || first.Text != "start" {
		t.Errorf("expected interim 'start', got %+v", first)
	}
	second := <-src.Events()
	if !second.Final || second.Text != "next lap" {
		t.Errorf("expected final 'next lap', got %+v", second)
	}
	if err := <-src.Done(); err != nil {
		t.Errorf("unexpected end error: %v", err)
	}
}
