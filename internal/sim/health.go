package sim

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

const lifecycleMachineID = "health"

const (
	stateSusceptible statekit.StateID = "susceptible"
	stateInfected    statekit.StateID = "infected"
	stateRecovered   statekit.StateID = "recovered"
	stateDead        statekit.StateID = "dead"
)

// Transition events of the health lifecycle.
const (
	EventInfect  statekit.EventType = "INFECT"
	EventRecover statekit.EventType = "RECOVER"
	EventDie     statekit.EventType = "DIE"
)

func stateID(s HealthState) statekit.StateID {
	switch s {
	case Infected:
		return stateInfected
	case Recovered:
		return stateRecovered
	case Dead:
		return stateDead
	default:
		return stateSusceptible
	}
}

func healthFromID(id statekit.StateID) (HealthState, bool) {
	switch id {
	case stateSusceptible:
		return Susceptible, true
	case stateInfected:
		return Infected, true
	case stateRecovered:
		return Recovered, true
	case stateDead:
		return Dead, true
	}
	return 0, false
}

// NewLifecycleMachine builds the health statechart:
//
//	susceptible --INFECT--> infected --RECOVER--> recovered (final)
//	                                 --DIE------> dead (final)
func NewLifecycleMachine() (*statekit.MachineConfig[*Agent], error) {
	return statekit.NewMachine[*Agent](lifecycleMachineID).
		WithInitial(stateSusceptible).
		WithContext(&Agent{}).
		State(stateSusceptible).
		On(EventInfect).Target(stateInfected).
		Done().
		State(stateInfected).
		On(EventRecover).Target(stateRecovered).
		On(EventDie).Target(stateDead).
		Done().
		State(stateRecovered).
		Final().
		Done().
		State(stateDead).
		Final().
		Done().
		Build()
}

// Lifecycle validates agent transitions against the health statechart.
// Each check runs a fresh interpreter, replayed to the agent's state, so
// no interpreter is ever left in a final state between checks.
type Lifecycle struct {
	machine *statekit.MachineConfig[*Agent]
}

func NewLifecycle() (*Lifecycle, error) {
	machine, err := NewLifecycleMachine()
	if err != nil {
		return nil, fmt.Errorf("build health machine: %w", err)
	}
	return &Lifecycle{machine: machine}, nil
}

// Next returns the state ev sends a into, or an ErrTransition error when the
// chart has no such edge.
func (l *Lifecycle) Next(a *Agent, ev statekit.EventType) (next HealthState, err error) {
	from := a.State
	if from != Susceptible && from != Infected {
		return from, fmt.Errorf("%w: %s on final state %s", ErrTransition, ev, from)
	}

	defer func() {
		if r := recover(); r != nil {
			next = from
			err = fmt.Errorf("%w: %s on %s: %v", ErrTransition, ev, from, r)
		}
	}()
	interp := statekit.NewInterpreter(l.machine)
	interp.Start()
	if from == Infected {
		interp.Send(statekit.Event{Type: EventInfect})
	}
	if got := statekit.StateID(interp.State().Value); got != stateID(from) {
		return from, fmt.Errorf("%w: replay reached %s, want %s", ErrTransition, got, stateID(from))
	}
	interp.Send(statekit.Event{Type: ev})

	to, ok := healthFromID(statekit.StateID(interp.State().Value))
	if !ok || to == from {
		return from, fmt.Errorf("%w: %s on %s", ErrTransition, ev, from)
	}
	return to, nil
}
