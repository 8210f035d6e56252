package event

import "github.com/eapache/queue"

// maxPending bounds the event queue. The single waiter drains promptly under
// normal scheduling, so depth beyond a couple of events means the task is
// stuck; failing loudly beats growing without bound.
const maxPending = 64

// Queue buffers system events between the host's call stack and the task.
//
// Events are kept in arrival order and none are dropped: a lifecycle event
// delivered in the same host burst as a frame event is observed after it, not
// instead of it. Only one goroutine touches the queue at a time (the host
// side and the task side alternate), so no locking is needed.
type Queue struct {
	events *queue.Queue
}

func NewQueue() *Queue {
	return &Queue{events: queue.New()}
}

// Add appends ev. Called only from the host's dynamic extent (event
// dispatch, update callback, trampolines).
func (q *Queue) Add(ev Event) {
	if q.events.Length() >= maxPending {
		panic("event: queue overflow, is the main task stuck?")
	}
	q.events.Add(ev)
}

// Len reports the number of buffered events.
func (q *Queue) Len() int {
	return q.events.Length()
}

func (q *Queue) take() (Event, bool) {
	if q.events.Length() == 0 {
		return Event{}, false
	}
	return q.events.Remove().(Event), true
}
