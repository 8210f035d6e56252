package task

import "github.com/pdxgo/playdate/debug"

// Waker is a reference-counted handle whose only job is to re-enter the
// executor's poll routine. One allocation backs the long-lived main-task
// waker for the life of the process; clones share it and bump the count.
//
// The count exists to mirror the handle lifecycle precisely: Clone and Drop
// pair up, and a handle dropped to zero is dead. Wake deliberately does not
// release the handle it consumes, because the main waker is recycled forever
// rather than rebuilt each poll.
type Waker struct {
	exec *Executor
	refs int32
}

func newWaker(e *Executor) *Waker {
	return &Waker{exec: e, refs: 1}
}

// Clone increments the reference count and returns a handle to the same
// allocation.
func (w *Waker) Clone() *Waker {
	debug.Assert(w.refs > 0, "task: clone of released waker")
	w.refs++
	return w
}

// Wake consumes the handle and re-enters the executor's poll routine. The
// caller must not hold any executor state: waking runs the task, which is
// free to call back into the executor.
func (w *Waker) Wake() {
	w.exec.pollMain()
}

// WakeByRef wakes without consuming the handle: clone first, wake the clone.
func (w *Waker) WakeByRef() {
	w.Clone().Wake()
}

// Drop releases the handle. When the count reaches zero the backing
// allocation is dead and any further use is a bug.
func (w *Waker) Drop() {
	w.refs--
	debug.Assert(w.refs >= 0, "task: waker over-released")
	if w.refs == 0 {
		w.exec = nil
	}
}
