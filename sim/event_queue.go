package sim

import "container/heap"

// EventQueue is a priority queue of events with deterministic ordering:
// timestamp, then kind priority, then insertion sequence.
type EventQueue struct {
	events  []Event
	nextSeq uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make([]Event, 0)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int { return len(q.events) }

// Less implements heap.Interface
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Timestamp() != ej.Timestamp() {
		return ei.Timestamp() < ej.Timestamp()
	}
	pi, pj := eventKindPriority[ei.Kind()], eventKindPriority[ej.Kind()]
	if pi != pj {
		return pi < pj
	}
	return ei.Seq() < ej.Seq()
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

// Push implements heap.Interface
func (q *EventQueue) Push(x any) { q.events = append(q.events, x.(Event)) }

// Pop implements heap.Interface
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.events = old[:n-1]
	return item
}

// Schedule stamps e with the next insertion sequence and adds it to the queue.
func (q *EventQueue) Schedule(e Event) {
	q.nextSeq++
	e.base().seq = q.nextSeq
	heap.Push(q, e)
}

// PopNext removes and returns the earliest event, or nil when empty.
func (q *EventQueue) PopNext() Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(Event)
}

// Peek returns the earliest event without removing it, or nil when empty.
func (q *EventQueue) Peek() Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}
