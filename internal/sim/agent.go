package sim

// HealthState is the discriminant that decides which group owns an agent.
type HealthState uint8

const (
	Susceptible HealthState = iota
	Infected
	Recovered
	Dead

	numStates = 4
)

func (s HealthState) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of an infection, set during motion and
// consumed by the transition phases of the same step.
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeRecovered
	OutcomeDead
)

// AgentID is the stable arena index of an agent.
type AgentID int

// Agent is one mobile point. Timer, TimerActive and MortalityRate are only
// meaningful while State == Infected.
type Agent struct {
	ID    AgentID
	Pos   Vec2
	Vel   Vec2
	State HealthState

	// Jitter adds a random walk to the velocity every step.
	Jitter bool

	Timer         int
	TimerActive   bool
	MortalityRate float64

	outcome Outcome
}

func (a *Agent) Outcome() Outcome { return a.outcome }

func (a *Agent) armTimer(cycles int, mortality float64) {
	a.Timer = cycles
	a.TimerActive = true
	a.MortalityRate = mortality
	a.outcome = OutcomePending
}

func (a *Agent) clearTimer() {
	a.Timer = 0
	a.TimerActive = false
	a.MortalityRate = 0
	a.outcome = OutcomePending
}

// infect turns a susceptible agent into an infected one. The contact bounces
// it back the way it came.
func (a *Agent) infect(cycles int, mortality float64) {
	a.State = Infected
	a.Vel = a.Vel.Scale(-1)
	a.Jitter = false
	a.armTimer(cycles, mortality)
}

func (a *Agent) recover() {
	a.State = Recovered
	a.Jitter = false
	a.clearTimer()
}

// die freezes the agent in place. Dead agents stay in the world.
func (a *Agent) die() {
	a.State = Dead
	a.Vel = Vec2{}
	a.Jitter = false
	a.clearTimer()
}
