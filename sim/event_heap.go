package sim

import "container/heap"

// EventTypePriority orders events at equal timestamps: Internal events
// (QuantumEnd) settle the CPU before any External event at the same
// instant observes it (§4.2).
var EventTypePriority = map[EventType]int{
	EventTypeQuantumEnd:    0, // Internal
	EventTypeJobArrival:    1, // External
	EventTypeDeviceRequest: 1,
	EventTypeDeviceRelease: 1,
	EventTypeDisplay:       1,
}

// EventHeap implements a priority queue ordered by (timestamp, type
// priority, sequence) — sequence is a monotonically increasing insertion
// counter that breaks ties deterministically within the same (time, type)
// class, giving the stable-FIFO behavior §4.2 requires.
type EventHeap struct {
	events []Event
}

// NewEventHeap constructs an empty, heap-initialized EventHeap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{events: make([]Event, 0)}
	heap.Init(h)
	return h
}

func (h *EventHeap) Len() int { return len(h.events) }

func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.Timestamp() != ej.Timestamp() {
		return ei.Timestamp() < ej.Timestamp()
	}
	pi, pj := EventTypePriority[ei.Type()], EventTypePriority[ej.Type()]
	if pi != pj {
		return pi < pj
	}
	return ei.Seq() < ej.Seq()
}

func (h *EventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *EventHeap) Push(x any) { h.events = append(h.events, x.(Event)) }

func (h *EventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

// Schedule inserts an event into the heap.
func (h *EventHeap) Schedule(e Event) { heap.Push(h, e) }

// PopNext removes and returns the earliest-ordered pending event, or nil
// if the heap is empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(Event)
}

// Peek returns the earliest-ordered pending event without removing it, or
// nil if the heap is empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}
