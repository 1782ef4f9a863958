package materialize

import (
	"context"
	"fmt"

	"github.com/tacogips/genstep/internal/debug"
)

// State is the lifecycle of a Step.
type State int

const (
	// Pending means the step has not run.
	Pending State = iota
	// Done means the destination was produced.
	Done
	// Aborted means the step failed; the build must stop.
	Aborted
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Step is a single materialization of one source into one destination.
type Step struct {
	Source       string
	Destination  string
	Materializer Materializer

	state State
	err   error
}

// NewStep creates a pending step.
func NewStep(m Materializer, source, destination string) *Step {
	return &Step{
		Source:       source,
		Destination:  destination,
		Materializer: m,
	}
}

// State returns the current state.
func (s *Step) State() State {
	return s.state
}

// Err returns the error that aborted the step, if any.
func (s *Step) Err() error {
	return s.err
}

// Run executes the step once. A step that already finished cannot be rerun.
func (s *Step) Run(ctx context.Context) error {
	if s.state != Pending {
		return fmt.Errorf("step already %s", s.state)
	}

	debug.DebugSection("materialize")
	debug.DebugValue("source", s.Source)
	debug.DebugValue("destination", s.Destination)

	if err := s.Materializer.Materialize(ctx, s.Source, s.Destination); err != nil {
		s.state = Aborted
		s.err = err
		return err
	}

	s.state = Done
	return nil
}
