package sim

import "errors"

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid simulation config")

	// ErrInvariant marks a bookkeeping defect: an agent in no group, in more
	// than one group, or in the wrong one.
	ErrInvariant = errors.New("simulation invariant violated")

	// ErrStopped is returned by a Sink when the display asks the run to end,
	// e.g. the window was closed.
	ErrStopped = errors.New("stopped by display")

	// ErrTransition is returned when the health lifecycle rejects a move.
	ErrTransition = errors.New("illegal health transition")
)
