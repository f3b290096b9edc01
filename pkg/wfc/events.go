package wfc

// EventKind enumerates engine lifecycle notifications.
type EventKind uint8

const (
	// EventStart fires after a run has been seeded and cleared.
	EventStart EventKind = iota
	// EventClear fires after the wave and counters are reset.
	EventClear
	// EventObserve fires after a cell is collapsed; Cell and Pattern are set.
	EventObserve
	// EventBan fires for every applied ban; Cell and Pattern are set.
	EventBan
	// EventPropagationStep fires once per drained layer of the worklist.
	EventPropagationStep
	// EventStep fires after an observation and its propagation succeed.
	EventStep
	// EventFail fires when a contradiction or heuristic exhaustion is detected.
	EventFail
	// EventFinish fires when Run or Resume returns, whatever the outcome.
	EventFinish
)

var eventNames = [...]string{
	EventStart:           "start",
	EventClear:           "clear",
	EventObserve:         "observe",
	EventBan:             "ban",
	EventPropagationStep: "propagation_step",
	EventStep:            "step",
	EventFail:            "fail",
	EventFinish:          "finish",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a single notification. Cell and Pattern are -1 when not applicable.
type Event struct {
	Kind    EventKind
	Cell    int
	Pattern int
}

// Observer receives engine events synchronously on the engine's goroutine.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

func (e *Engine) emit(kind EventKind, cell, pattern int) {
	ev := Event{Kind: kind, Cell: cell, Pattern: pattern}
	if o, ok := e.heuristic.(Observer); ok {
		o.OnEvent(ev)
	}
	for _, o := range e.observers {
		o.OnEvent(ev)
	}
}
