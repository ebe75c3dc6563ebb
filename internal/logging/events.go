package logging

import (
	"github.com/felixgeelhaar/bolt/v3"

	"outbreak/internal/sim"
)

// Attach logs simulation events on bus: day boundaries at debug and
// individual transitions at trace.
func Attach(bus *sim.EventBus, log *bolt.Logger, runID string) {
	bus.Subscribe(sim.EventDayElapsed, func(ev sim.Event) {
		With(log.Debug(), RunID(runID), Day(ev.Day), Step(ev.Step)).Msg("day elapsed")
	})
	transition := func(to sim.HealthState) sim.EventHandler {
		return func(ev sim.Event) {
			With(log.Trace(), RunID(runID), Step(ev.Step), Agent(ev.Agent, to)).Msg("transition")
		}
	}
	bus.Subscribe(sim.EventInfection, transition(sim.Infected))
	bus.Subscribe(sim.EventRecovery, transition(sim.Recovered))
	bus.Subscribe(sim.EventDeath, transition(sim.Dead))
}
