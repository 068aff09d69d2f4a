package flow

import (
	"fmt"
	"time"
)

// EventKind identifies what a flow event reports.
type EventKind int

const (
	EventIndexChanged EventKind = iota
	EventSelectionChanged
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventIndexChanged:
		return "index"
	case EventSelectionChanged:
		return "selection"
	case EventFinished:
		return "finished"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is delivered to observers after every state change of a Flow.
// Option and Title are only set for EventSelectionChanged.
type Event struct {
	Kind   EventKind
	Index  int
	Step   Step
	Option int
	Title  string
	Time   time.Time
}

// Observer receives flow events synchronously.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}
