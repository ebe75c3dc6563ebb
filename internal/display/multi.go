// Package display holds the frame sinks that do not need a window: the
// fan-out and the animated GIF writer.
package display

import (
	"errors"
	"io"

	"outbreak/internal/sim"
)

// Multi presents every frame to each sink in order. The first error stops
// the fan-out for that frame and is returned, so a window reporting
// sim.ErrStopped ends the run even when other sinks follow it.
type Multi []sim.Sink

func (m Multi) Present(f sim.Frame) error {
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Present(f); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that is an io.Closer, in reverse order.
func (m Multi) Close() error {
	var errs []error
	for i := len(m) - 1; i >= 0; i-- {
		if c, ok := m[i].(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
