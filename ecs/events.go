package ecs

// Event is something that happened to an entity during the current frame.
// Value carries a per-type payload, such as the damage amount.
type Event struct {
	Type   string
	Entity Entity
	Value  int
}

// EventQueue collects one frame of events in push order. The scheduler
// clears it after every system has run.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns queued events of the given type without consuming them.
func (q *EventQueue) Peek(eventType string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
