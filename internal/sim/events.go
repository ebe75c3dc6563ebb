package sim

type EventType int

const (
	EventInfection EventType = iota
	EventRecovery
	EventDeath
	EventDayElapsed
)

func (t EventType) String() string {
	switch t {
	case EventInfection:
		return "infection"
	case EventRecovery:
		return "recovery"
	case EventDeath:
		return "death"
	case EventDayElapsed:
		return "day"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Agent AgentID // -1 for population-level events
	Pos   Vec2
	Step  int
	Day   int
}

type EventHandler func(Event)

// EventBus fans transition events out to subscribers synchronously, on the
// simulation goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

func (eb *EventBus) has(t EventType) bool {
	return len(eb.handlers[t]) > 0
}
