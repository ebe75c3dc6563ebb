package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"outbreak/internal/sim"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// With applies fields to e in order.
func With(e *bolt.Event, fields ...Field) *bolt.Event {
	for _, f := range fields {
		e = f(e)
	}
	return e
}

func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

func Step(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("step", n)
	}
}

func Day(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("day", n)
	}
}

// Counts adds the four group sizes.
func Counts(c sim.Counts) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("susceptible", c.Susceptible).
			Int("infected", c.Infected).
			Int("recovered", c.Recovered).
			Int("dead", c.Dead)
	}
}

// Agent adds the agent id and its health state.
func Agent(id sim.AgentID, state sim.HealthState) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("agent", int(id)).Str("state", state.String())
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// ErrorField adds an error field; a nil error adds nothing.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
