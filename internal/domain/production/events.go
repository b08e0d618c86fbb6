package production

import "fmt"

// EventType classifies production notices
type EventType string

const (
	EventStarted         EventType = "STARTED"
	EventUnitCompleted   EventType = "UNIT_COMPLETED"
	EventFinished        EventType = "FINISHED"
	EventBlockedCredits  EventType = "BLOCKED_CREDITS"
	EventBlockedSpace    EventType = "BLOCKED_SPACE"
	EventQueueEmpty      EventType = "QUEUE_EMPTY"
	EventCancelled       EventType = "CANCELLED"
	EventUnresolved      EventType = "UNRESOLVED"
	EventQueueEmptied    EventType = "QUEUE_EMPTIED"
	EventInvariantBroken EventType = "INVARIANT_VIOLATION"
)

// Event is a notice raised by a queue operation or a tick
type Event struct {
	Type     EventType
	Hour     int64
	BaseID   string
	BaseName string
	OrderID  string
	TargetID string
	Target   string
	Kind     OrderKind
	Amount   int
}

// Message renders the event as a one-line notice
func (e Event) Message() string {
	name := e.Target
	if name == "" {
		name = e.TargetID
	}
	base := e.BaseName
	if base == "" {
		base = e.BaseID
	}

	switch e.Type {
	case EventStarted:
		if e.Kind == OrderKindDisassembly {
			return fmt.Sprintf("Disassembly of %s started in %s", name, base)
		}
		return fmt.Sprintf("Production of %s started in %s", name, base)
	case EventUnitCompleted:
		return fmt.Sprintf("One unit of %s completed in %s (%d left)", name, base, e.Amount)
	case EventFinished:
		if e.Kind == OrderKindDisassembly {
			return fmt.Sprintf("Disassembly of %s finished in %s", name, base)
		}
		return fmt.Sprintf("Production of %s finished in %s", name, base)
	case EventBlockedCredits:
		return fmt.Sprintf("Not enough credits to produce %s in %s", name, base)
	case EventBlockedSpace:
		return fmt.Sprintf("Not enough free space in %s to produce %s", base, name)
	case EventQueueEmpty:
		return fmt.Sprintf("Production queue of %s is empty", base)
	case EventCancelled:
		return fmt.Sprintf("Order for %s cancelled in %s", name, base)
	case EventUnresolved:
		return fmt.Sprintf("Order for unknown target %q in %s cannot be processed", e.TargetID, base)
	case EventQueueEmptied:
		return fmt.Sprintf("Production queue of %s was emptied", base)
	case EventInvariantBroken:
		return fmt.Sprintf("Production queue of %s is in an invalid state", base)
	}
	return string(e.Type)
}

// OrderEvent builds an event describing an order of a base
func OrderEvent(t EventType, site Site, o *Order) Event {
	e := Event{
		Type:     t,
		BaseID:   site.ID(),
		BaseName: site.Name(),
		OrderID:  o.ID(),
		TargetID: o.TargetRef(),
		Kind:     o.Kind(),
		Amount:   o.Amount(),
	}
	if o.target != nil {
		e.Target = o.target.DisplayName()
	}
	return e
}
