package desktop

import "math"

// SessionState is what the viewer has asked the window to do.
type SessionState int

const (
	StateRunning SessionState = iota
	StatePaused
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Session struct {
	State SessionState
	// Frames counts presented frames, paused redraws excluded.
	Frames int
}

func NewSession() *Session {
	return &Session{State: StateRunning}
}

// TogglePause flips between running and paused; a closed session stays
// closed.
func (s *Session) TogglePause() {
	switch s.State {
	case StateRunning:
		s.State = StatePaused
	case StatePaused:
		s.State = StateRunning
	}
}

func (s *Session) Close() { s.State = StateClosed }

// Hold reports whether the current frame should stay on screen: the
// viewer paused and done has not fired.
func (s *Session) Hold(done <-chan struct{}) bool {
	if s.State != StatePaused {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Speed is the pacing the viewer can adjust with + and -.
type Speed interface {
	Rate() float64
	SetRate(stepsPerSecond float64)
}

const (
	minStepRate = 1
	maxStepRate = 960
)

// nextRate doubles or halves cur within [minStepRate, maxStepRate]. An
// unpaced run only slows down, to maxStepRate.
func nextRate(cur float64, faster bool) float64 {
	if math.IsInf(cur, 1) {
		if faster {
			return cur
		}
		return maxStepRate
	}
	if faster {
		return math.Min(cur*2, maxStepRate)
	}
	return math.Max(cur/2, minStepRate)
}

func (s *Session) Closed() bool { return s.State == StateClosed }
