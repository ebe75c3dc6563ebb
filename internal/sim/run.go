package sim

import (
	"context"
	"errors"
)

// Sink receives a read-only frame after every step. Returning ErrStopped
// ends the run cleanly; any other error aborts it.
type Sink interface {
	Present(f Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f Frame) error

func (fn SinkFunc) Present(f Frame) error { return fn(f) }

// Pacer blocks until the next step may begin.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Run drives s until ctx is done, the sink reports ErrStopped, or maxSteps
// steps have completed (maxSteps <= 0 means no limit). Stop requests are
// observed only at step boundaries. A clean stop returns nil.
func Run(ctx context.Context, s *Simulation, sink Sink, pacer Pacer, maxSteps int) error {
	for n := 0; maxSteps <= 0 || n < maxSteps; n++ {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Step(); err != nil {
			return err
		}
		if sink != nil {
			if err := sink.Present(s.Frame()); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
		}
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
	return nil
}
