package sim

import (
	"errors"
	"fmt"
)

// Placement describes one agent at creation.
type Placement struct {
	Pos    Vec2
	Vel    Vec2
	State  HealthState // Susceptible or Infected
	Jitter bool
}

// AgentView is the read-only slice of an agent a display needs.
type AgentView struct {
	ID     AgentID
	Pos    Vec2
	Radius float64
	Color  RGB
	State  HealthState
}

// Frame is what a Sink receives after each step. Agents is reused by the
// next step; sinks that keep it must copy.
type Frame struct {
	Report StepReport
	Width  float64
	Height float64
	Agents []AgentView
}

// Simulation owns the agent arena, the state groups, the random source and
// the step and day counters. It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	plane  Plane
	rng    *Rand
	agents []Agent
	groups *Groups
	engine *Engine
	events *EventBus

	population int
	step       int
	day        int
	last       StepReport

	views []AgentView
}

// New validates cfg and creates the initial population at random positions.
// Free agents start with a random velocity in [-1,1]² and jitter when
// cfg.Randomize is set; quarantined agents are motionless.
func New(cfg Config) (*Simulation, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewRand(cfg.Seed)
	pl := cfg.Plane()

	placements := make([]Placement, 0, cfg.Population())
	randomPos := func() Vec2 {
		return Vec2{X: rng.RangeF(0, pl.Width), Y: rng.RangeF(0, pl.Height)}
	}
	for i := 0; i < cfg.Susceptible; i++ {
		placements = append(placements, Placement{
			Pos:    randomPos(),
			Vel:    rng.UnitSquare(),
			State:  Susceptible,
			Jitter: cfg.Randomize,
		})
	}
	for i := 0; i < cfg.Quarantined; i++ {
		placements = append(placements, Placement{
			Pos:   randomPos(),
			State: Susceptible,
		})
	}
	for i := 0; i < cfg.Infected; i++ {
		placements = append(placements, Placement{
			Pos:    randomPos(),
			Vel:    rng.UnitSquare(),
			State:  Infected,
			Jitter: cfg.Randomize,
		})
	}
	return build(cfg, rng, placements)
}

// NewWithPlacements creates a simulation from explicit agents. The
// population fields of cfg are ignored.
func NewWithPlacements(cfg Config, placements []Placement) (*Simulation, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pl := cfg.Plane()
	var errs []error
	for i, p := range placements {
		if p.State != Susceptible && p.State != Infected {
			errs = append(errs, fmt.Errorf("%w: placement %d starts %s", ErrInvalidConfig, i, p.State))
		}
		if !pl.Contains(p.Pos) {
			errs = append(errs, fmt.Errorf("%w: placement %d at (%v,%v) is off the plane", ErrInvalidConfig, i, p.Pos.X, p.Pos.Y))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return build(cfg, NewRand(cfg.Seed), placements)
}

func build(cfg Config, rng *Rand, placements []Placement) (*Simulation, error) {
	events := NewEventBus()
	engine, err := NewEngine(cfg.Radius, cfg.CyclesToFate, cfg.MortalityRate, events)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:        cfg,
		plane:      cfg.Plane(),
		rng:        rng,
		agents:     make([]Agent, len(placements)),
		groups:     NewGroups(len(placements)),
		engine:     engine,
		events:     events,
		population: len(placements),
		views:      make([]AgentView, 0, len(placements)),
	}
	for i, p := range placements {
		a := &s.agents[i]
		a.ID = AgentID(i)
		a.Pos = p.Pos
		a.Vel = p.Vel
		a.State = p.State
		a.Jitter = p.Jitter
		if p.State == Infected {
			// Seeded cases count as infected during the first step, so their
			// countdown starts one step later than the configured length.
			a.armTimer(cfg.CyclesToFate+1, cfg.MortalityRate)
		}
		s.groups.Of(p.State).Add(a.ID)
	}
	s.last = StepReport{Counts: s.groups.Counts()}
	return s, nil
}

// Step advances every agent, then resolves infections, recoveries and
// deaths. It returns an error only if the health lifecycle rejects a
// transition, which indicates a bookkeeping defect.
func (s *Simulation) Step() (StepReport, error) {
	s.step++
	for i := range s.agents {
		Advance(&s.agents[i], s.plane, s.rng)
	}

	rep, err := s.engine.Resolve(s.agents, s.groups, s.step)
	if err != nil {
		return rep, fmt.Errorf("step %d: %w", s.step, err)
	}

	if s.step%StepsPerDay == 0 {
		s.day++
		s.events.Emit(Event{Type: EventDayElapsed, Agent: -1, Step: s.step, Day: s.day})
	}

	rep.Step = s.step
	rep.Day = s.day
	rep.Counts = s.groups.Counts()
	s.last = rep

	if s.cfg.Debug {
		if err := s.CheckInvariants(); err != nil {
			panic(err)
		}
	}
	return rep, nil
}

func (s *Simulation) Config() Config         { return s.cfg }
func (s *Simulation) Plane() Plane           { return s.plane }
func (s *Simulation) Events() *EventBus      { return s.events }
func (s *Simulation) Counts() Counts         { return s.groups.Counts() }
func (s *Simulation) Population() int        { return s.population }
func (s *Simulation) StepCount() int         { return s.step }
func (s *Simulation) Day() int               { return s.day }
func (s *Simulation) LastReport() StepReport { return s.last }

// Agent returns a copy of the agent with the given id.
func (s *Simulation) Agent(id AgentID) Agent { return s.agents[id] }

// Group exposes the members of one state group in enumeration order.
func (s *Simulation) Group(state HealthState) []AgentID {
	return s.groups.Of(state).IDs(nil)
}

// Frame builds the display snapshot of the current state over every agent.
func (s *Simulation) Frame() Frame {
	s.views = s.views[:0]
	for i := range s.agents {
		a := &s.agents[i]
		s.views = append(s.views, AgentView{
			ID:     a.ID,
			Pos:    a.Pos,
			Radius: s.cfg.Radius,
			Color:  a.State.Color(),
			State:  a.State,
		})
	}
	return Frame{
		Report: s.last,
		Width:  s.plane.Width,
		Height: s.plane.Height,
		Agents: s.views,
	}
}

// CheckInvariants verifies group exclusivity, population conservation,
// timer consistency and that every agent is on the plane.
func (s *Simulation) CheckInvariants() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
	}

	if got := s.groups.Counts().Total(); got != s.population {
		fail("population %d, want %d", got, s.population)
	}
	for i := range s.agents {
		a := &s.agents[i]
		member := 0
		for st := HealthState(0); st < numStates; st++ {
			if !s.groups.Of(st).Contains(a.ID) {
				continue
			}
			member++
			if st != a.State {
				fail("agent %d is %s but sits in the %s group", a.ID, a.State, st)
			}
		}
		if member != 1 {
			fail("agent %d belongs to %d groups", a.ID, member)
		}
		if (a.State == Infected) != a.TimerActive {
			fail("agent %d is %s with timer active=%t", a.ID, a.State, a.TimerActive)
		}
		if a.State != Infected && (a.Timer != 0 || a.MortalityRate != 0) {
			fail("agent %d is %s but carries an outcome timer", a.ID, a.State)
		}
		if !s.plane.Contains(a.Pos) {
			fail("agent %d at (%v,%v) is off the plane", a.ID, a.Pos.X, a.Pos.Y)
		}
	}
	return errors.Join(errs...)
}
