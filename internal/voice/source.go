package voice

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Transcript is one speech recognition event. Interim results for the
// same utterance may arrive several times before the final one.
type Transcript struct {
	Text  string
	Final bool
}

// Source is an external speech recognizer. Events delivers transcripts
// while the source is running; Done delivers exactly one value per Start
// when the recognizer ends (nil) or fails (non-nil). Start may be called
// again after Done fires.
type Source interface {
	Start() error
	Stop()
	Events() <-chan Transcript
	Done() <-chan error
}

// ReaderSource is a line-oriented stand-in for a speech recognizer,
// reading one transcript per line. Lines prefixed with "~" are interim
// results; everything else is final. Blank lines are skipped.
//
// It backs the `voice` command (transcripts piped on stdin or read from
// a script file) and the tests.
type ReaderSource struct {
	mu      sync.Mutex
	reader  *bufio.Scanner
	events  chan Transcript
	done    chan error
	stopped bool
}

// NewReaderSource creates a source reading transcripts from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: bufio.NewScanner(r)}
}

// Start begins delivering transcripts on Events until the reader is
// drained or Stop is called.
func (s *ReaderSource) Start() error {
	s.mu.Lock()
	s.stopped = false
	s.events = make(chan Transcript)
	s.done = make(chan error, 1)
	s.mu.Unlock()

	go s.pump()
	return nil
}

// Stop halts delivery. Pending lines are discarded.
func (s *ReaderSource) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// Events returns the transcript channel for the current run.
func (s *ReaderSource) Events() <-chan Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Done returns the end-of-run channel for the current run.
func (s *ReaderSource) Done() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *ReaderSource) pump() {
	events, done := s.events, s.done
	for s.reader.Scan() {
		if s.isStopped() {
			done <- nil
			return
		}
		line := strings.TrimSpace(s.reader.Text())
		if line == "" {
			continue
		}
		t := Transcript{Text: line, Final: true}
		if strings.HasPrefix(line, "~") {
			t.Text = strings.TrimSpace(strings.TrimPrefix(line, "~"))
			t.Final = false
		}
		events <- t
	}
	done <- s.reader.Err()
}

func (s *ReaderSource) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
