package voice

import (
	"context"
	"time"
)

// DefaultRestartBackoff is the pause before restarting a recognizer that
// ended or failed while voice control is still user-enabled.
const DefaultRestartBackoff = 300 * time.Millisecond

// Supervisor pumps a Source into a Controller and applies the restart
// policy: a recognizer that ends or errors mid-session is transient and
// gets restarted after a short backoff for as long as the user keeps
// voice control enabled; once the controller is disabled (by the user or
// by a spoken stop), the supervisor exits instead.
type Supervisor struct {
	source     Source
	controller *Controller
	backoff    time.Duration

	// OnEvent observes every controller event, nil to ignore.
	OnEvent func(Event)
	// OnEnd observes every source end/error before the restart decision,
	// nil to ignore.
	OnEnd func(error)
}

// NewSupervisor creates a supervisor with the default backoff.
func NewSupervisor(source Source, controller *Controller) *Supervisor {
	return &Supervisor{
		source:     source,
		controller: controller,
		backoff:    DefaultRestartBackoff,
	}
}

// Run drives the source until the controller is disabled or the context
// is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		if err := s.source.Start(); err != nil {
			return err
		}
		s.controller.SetRecognizing(true)

		again, err := s.pump(ctx)
		if !again {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff):
		}
	}
}

// pump delivers events for one source run. Returns whether the source
// should be restarted.
func (s *Supervisor) pump(ctx context.Context) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			s.source.Stop()
			return false, ctx.Err()

		case t := <-s.source.Events():
			ev := s.controller.HandleTranscript(t.Text, t.Final)
			if s.OnEvent != nil {
				s.OnEvent(ev)
			}

		case err := <-s.source.Done():
			s.controller.SetRecognizing(false)
			if s.OnEnd != nil {
				s.OnEnd(err)
			}
			if !s.controller.Enabled() {
				return false, nil
			}
			return true, nil
		}
	}
}
