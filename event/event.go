// Package event carries system events from the host's call stack to the
// game's main task.
//
// The host produces events synchronously, from inside its own callbacks. The
// one task consumes them by awaiting Watcher.Next, which is the game loop's
// only suspension point. Events are buffered in arrival order; nothing is
// coalesced or dropped (see Queue).
package event

import (
	"github.com/pdxgo/playdate/inputs"
	"github.com/pdxgo/playdate/task"
)

// Kind tags an Event.
type Kind uint8

const (
	// KindNextFrame signals that the next frame should be prepared for
	// display. Handle it by running the game's update and draw routines.
	KindNextFrame Kind = iota
	// KindWillTerminate: the player chose to exit via the System Menu.
	KindWillTerminate
	// KindWillSleep: the device is about to enter low-power sleep.
	KindWillSleep
	// KindWillPause: the system is about to pause the game.
	KindWillPause
	KindWillResume
	// KindWillLock: the device is being locked while the game runs.
	KindWillLock
	KindDidUnlock
	// Simulator-only key events; never delivered on device.
	KindKeyPressed
	KindKeyReleased
	// KindCallback: a registered system callback is ready to run. Respond by
	// calling Run on the game's callbacks collections.
	KindCallback
)

// Event is one system event. Frame and Inputs are set for KindNextFrame,
// Keycode for the key kinds; other kinds carry no payload.
type Event struct {
	Kind    Kind
	Frame   uint64
	Inputs  inputs.Inputs
	Keycode uint32
}

func (k Kind) String() string {
	switch k {
	case KindNextFrame:
		return "NextFrame"
	case KindWillTerminate:
		return "WillTerminate"
	case KindWillSleep:
		return "WillSleep"
	case KindWillPause:
		return "WillPause"
	case KindWillResume:
		return "WillResume"
	case KindWillLock:
		return "WillLock"
	case KindDidUnlock:
		return "DidUnlock"
	case KindKeyPressed:
		return "KeyPressed"
	case KindKeyReleased:
		return "KeyReleased"
	case KindCallback:
		return "Callback"
	}
	return "Unknown"
}

// Watcher hands out the next system event. One outstanding Next per process
// is the expected use: the game loop awaits once per iteration.
type Watcher struct {
	queue *Queue
	exec  *task.Executor
}

func NewWatcher(q *Queue, e *task.Executor) *Watcher {
	return &Watcher{queue: q, exec: e}
}

// Next suspends the task until a system event arrives, then returns it.
func (w *Watcher) Next(ctx *task.Context) Event {
	return task.Await(ctx, w.NextFuture())
}

// NextFuture returns the future behind Next, for callers composing their own
// await loops.
func (w *Watcher) NextFuture() task.Future[Event] {
	return &nextFuture{w: w}
}

type nextFuture struct {
	w *Watcher
}

// Poll takes the oldest pending event if one exists. Otherwise it parks the
// task's waker with the executor and reports pending; the waker is invoked
// when the host queues the next event. Dropping the future while pending
// needs no cleanup: the parked clone is woken harmlessly on the next flush.
func (f *nextFuture) Poll(ctx *task.Context) (Event, bool) {
	if ev, ok := f.w.queue.take(); ok {
		return ev, true
	}
	f.w.exec.ParkWakerForEvent(ctx.Waker())
	return Event{}, false
}
