package task

import "testing"

// parker builds an executor whose task parks its waker and suspends in a
// loop, counting how many times it was resumed.
func parker(polls *int) *Executor {
	e := New()
	e.SetMainTask(func(ctx *Context) {
		for {
			*polls++
			e.ParkWakerForEvent(ctx.Waker())
			ctx.Pend()
		}
	})
	return e
}

func TestPollOnceRunsOnFirstTickOnly(t *testing.T) {
	polls := 0
	e := parker(&polls)

	e.PollOnce()
	if polls != 1 {
		t.Fatalf("after first tick: polls = %d, want 1", polls)
	}

	// Later ticks never re-poll by themselves.
	e.PollOnce()
	e.PollOnce()
	if polls != 1 {
		t.Fatalf("after later ticks: polls = %d, want 1", polls)
	}
}

func TestWakeParkedRepollsExactlyOnce(t *testing.T) {
	polls := 0
	e := parker(&polls)
	e.PollOnce()

	// The task re-parks itself during each wake; the detached list keeps that
	// fresh waker out of the batch being flushed.
	e.WakeParked()
	if polls != 2 {
		t.Fatalf("after first wake: polls = %d, want 2", polls)
	}
	e.WakeParked()
	if polls != 3 {
		t.Fatalf("after second wake: polls = %d, want 3", polls)
	}
}

func TestWakeParkedWithoutParkedWakersIsNoop(t *testing.T) {
	e := New()
	polls := 0
	e.SetMainTask(func(ctx *Context) {
		for {
			polls++
			ctx.Pend()
		}
	})
	e.PollOnce()
	e.WakeParked()
	if polls != 1 {
		t.Fatalf("polls = %d, want 1", polls)
	}
}

func TestWakeByRefKeepsHandleAlive(t *testing.T) {
	polls := 0
	e := parker(&polls)
	e.PollOnce()

	refs := e.mainWaker.refs
	e.mainWaker.WakeByRef()
	if polls != 2 {
		t.Fatalf("polls = %d, want 2", polls)
	}
	// WakeByRef clones before waking, and Wake does not release; the extra
	// reference sticks. The task parked once more during the wake.
	if got := e.mainWaker.refs; got != refs+2 {
		t.Errorf("refs = %d, want %d", got, refs+2)
	}
}

func TestWakerRefcount(t *testing.T) {
	w := newWaker(New())
	c := w.Clone()
	if c != w {
		t.Fatal("Clone returned a different allocation")
	}
	if w.refs != 2 {
		t.Fatalf("refs = %d, want 2", w.refs)
	}
	c.Drop()
	if w.refs != 1 || w.exec == nil {
		t.Fatalf("after one drop: refs = %d, exec nil = %v", w.refs, w.exec == nil)
	}
	w.Drop()
	if w.refs != 0 || w.exec != nil {
		t.Fatalf("after final drop: refs = %d, exec nil = %v", w.refs, w.exec == nil)
	}
}

func TestSetMainTaskTwicePanics(t *testing.T) {
	e := New()
	e.SetMainTask(func(*Context) { select {} })
	defer func() {
		if recover() == nil {
			t.Fatal("second SetMainTask did not panic")
		}
	}()
	e.SetMainTask(func(*Context) { select {} })
}

func TestReentrantPollPanics(t *testing.T) {
	e := New()
	var got any
	e.SetMainTask(func(ctx *Context) {
		func() {
			defer func() { got = recover() }()
			// Waking from inside the task re-enters pollMain while the task
			// is already running.
			ctx.Waker().Wake()
		}()
		for {
			ctx.Pend()
		}
	})
	e.PollOnce()
	if got != "task: re-entrant poll of the main task" {
		t.Fatalf("recover() = %v", got)
	}
}

// countdown reports pending n times before resolving.
type countdown struct {
	e    *Executor
	left int
}

func (c *countdown) Poll(ctx *Context) (int, bool) {
	if c.left == 0 {
		return 42, true
	}
	c.left--
	c.e.ParkWakerForEvent(ctx.Waker())
	return 0, false
}

func TestAwaitResumesThroughWakes(t *testing.T) {
	e := New()
	got := 0
	e.SetMainTask(func(ctx *Context) {
		got = Await(ctx, &countdown{e: e, left: 2})
		for {
			ctx.Pend()
		}
	})

	e.PollOnce()
	if got != 0 {
		t.Fatal("future resolved before its wakes")
	}
	e.WakeParked()
	if got != 0 {
		t.Fatal("future resolved one wake early")
	}
	e.WakeParked()
	if got != 42 {
		t.Fatalf("got = %d, want 42", got)
	}
}
