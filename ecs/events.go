package ecs

// Event is a world event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

type EventType string

const (
	EventRepath  EventType = "repath"
	EventJump    EventType = "jump"
	EventArrived EventType = "arrived"
	EventRespawn EventType = "respawn"
)

// EventQueue is a FIFO queue drained by the owner of the world.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
