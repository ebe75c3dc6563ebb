package sim

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// StepReport summarises one completed step.
type StepReport struct {
	Step       int
	Day        int
	Infections int
	Recoveries int
	Deaths     int
	Counts     Counts
}

// Engine runs the contact and transition phases of a step. It must be called
// after every agent has been advanced.
type Engine struct {
	Radius        float64
	CyclesToFate  int
	MortalityRate float64

	lifecycle *Lifecycle
	events    *EventBus

	// Scratch buffers reused across steps.
	susceptible []AgentID
	infected    []AgentID
	hitboxes    []RectF
	moved       []AgentID
}

func NewEngine(radius float64, cyclesToFate int, mortality float64, events *EventBus) (*Engine, error) {
	lc, err := NewLifecycle()
	if err != nil {
		return nil, err
	}
	return &Engine{
		Radius:        radius,
		CyclesToFate:  cyclesToFate,
		MortalityRate: mortality,
		lifecycle:     lc,
		events:        events,
	}, nil
}

// Resolve applies, in order, new infections, recoveries and deaths. Each
// phase computes its moves against a snapshot of the groups and applies them
// as one batch when the phase ends.
func (e *Engine) Resolve(agents []Agent, groups *Groups, step int) (StepReport, error) {
	var rep StepReport
	var err error
	if rep.Infections, err = e.infect(agents, groups, step); err != nil {
		return rep, err
	}
	if rep.Recoveries, err = e.settle(agents, groups, step, OutcomeRecovered); err != nil {
		return rep, err
	}
	if rep.Deaths, err = e.settle(agents, groups, step, OutcomeDead); err != nil {
		return rep, err
	}
	return rep, nil
}

// infect is phase A. Each susceptible agent is tested against the infected
// group as it stood when the phase began; the first overlap wins and later
// overlaps are ignored, so an agent is infected at most once per step.
func (e *Engine) infect(agents []Agent, groups *Groups, step int) (int, error) {
	e.susceptible = groups.Of(Susceptible).IDs(e.susceptible[:0])
	e.infected = groups.Of(Infected).IDs(e.infected[:0])
	if len(e.susceptible) == 0 || len(e.infected) == 0 {
		return 0, nil
	}

	e.hitboxes = e.hitboxes[:0]
	for _, id := range e.infected {
		e.hitboxes = append(e.hitboxes, footprint(agents[id].Pos, e.Radius))
	}

	e.moved = e.moved[:0]
	for _, sid := range e.susceptible {
		box := footprint(agents[sid].Pos, e.Radius)
		for _, hb := range e.hitboxes {
			if box.Intersects(hb) {
				e.moved = append(e.moved, sid)
				break
			}
		}
	}

	for _, id := range e.moved {
		a := &agents[id]
		if err := e.check(a, EventInfect, Infected); err != nil {
			return 0, err
		}
		a.infect(e.CyclesToFate, e.MortalityRate)
	}
	groups.Move(e.moved, Susceptible, Infected)
	e.emit(EventInfection, agents, step)
	return len(e.moved), nil
}

// settle is phases B and C: infected agents whose timer resolved to want
// leave the infected group together.
func (e *Engine) settle(agents []Agent, groups *Groups, step int, want Outcome) (int, error) {
	e.infected = groups.Of(Infected).IDs(e.infected[:0])
	e.moved = e.moved[:0]
	for _, id := range e.infected {
		if agents[id].outcome == want {
			e.moved = append(e.moved, id)
		}
	}
	if len(e.moved) == 0 {
		return 0, nil
	}

	to, ev, et := Recovered, EventRecover, EventRecovery
	if want == OutcomeDead {
		to, ev, et = Dead, EventDie, EventDeath
	}
	for _, id := range e.moved {
		a := &agents[id]
		if err := e.check(a, ev, to); err != nil {
			return 0, err
		}
		if to == Dead {
			a.die()
		} else {
			a.recover()
		}
	}
	groups.Move(e.moved, Infected, to)
	e.emit(et, agents, step)
	return len(e.moved), nil
}

func (e *Engine) check(a *Agent, ev statekit.EventType, want HealthState) error {
	got, err := e.lifecycle.Next(a, ev)
	if err != nil {
		return fmt.Errorf("agent %d: %w", a.ID, err)
	}
	if got != want {
		return fmt.Errorf("%w: agent %d %s went to %s, want %s", ErrTransition, a.ID, ev, got, want)
	}
	return nil
}

func (e *Engine) emit(t EventType, agents []Agent, step int) {
	if e.events == nil || !e.events.has(t) {
		return
	}
	for _, id := range e.moved {
		e.events.Emit(Event{Type: t, Agent: id, Pos: agents[id].Pos, Step: step})
	}
}
