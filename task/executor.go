// Package task implements the cooperative executor that drives a game's main
// loop from the host's update callback.
//
// The host owns the real control flow: it delivers an init event, then
// invokes the registered update callback once per tick, and may call back
// into the game (menu items, sound completions) at arbitrary points within a
// tick. The game's main function, by contrast, is written as one infinite
// loop that blocks on the next system event. The executor bridges the two by
// running the main function as a dedicated goroutine and handing control back
// and forth synchronously: exactly one side, host or task, runs at any time.
// Handing off through unbuffered channels is what makes the single-logical-
// thread model hold; no executor state is ever touched by both sides at once.
package task

// Executor owns the single main task and decides when it runs. There is one
// executor per process, created at init and never destroyed.
type Executor struct {
	entry func(*Context)

	// The main task is not run until the host is ready for arbitrary game
	// code, which is signalled by the first update callback. firstPoll
	// transitions true->false exactly once, on that first callback.
	firstPoll bool
	started   bool
	// running is true while control is inside the task goroutine. It is only
	// read and written from the host side; the task goroutine never sees it.
	running bool

	mainWaker *Waker
	// Wakers parked by futures awaiting the next system event.
	parked []*Waker

	resume chan struct{}
	yield  chan struct{}
}

func New() *Executor {
	return &Executor{
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}
}

// SetMainTask stores the game's entry point as the single main task. The
// entry point must never return; it runs for the life of the process. It is
// not called here: the first code runs on the first PollOnce.
//
// Must be called exactly once, at host-init time, before any tick callback.
func (e *Executor) SetMainTask(entry func(*Context)) {
	if e.entry != nil {
		panic("task: main task already set")
	}
	e.entry = entry
	e.firstPoll = true
}

// PollOnce is invoked by the host's per-tick update callback. The first call
// after SetMainTask runs the main task to its first suspension point, using
// the dedicated long-lived main waker. Every later call is a no-op: re-polls
// happen only through that waker being invoked.
func (e *Executor) PollOnce() {
	if !e.firstPoll {
		return
	}
	e.firstPoll = false
	e.mainWaker = newWaker(e)
	e.pollMain()
}

// ParkWakerForEvent appends a clone of w to the parked list. Futures call
// this when polled while no event is pending; the next WakeParked re-polls
// the task.
func (e *Executor) ParkWakerForEvent(w *Waker) {
	e.parked = append(e.parked, w.Clone())
}

// WakeParked takes ownership of the entire parked list, then wakes each
// waker. The list must be detached before the first Wake: waking re-enters
// the task, and the task may park itself again during that very wake. A
// waker parked mid-wake lands on the fresh list and survives to the next
// batch, exactly once.
func (e *Executor) WakeParked() {
	wakers := e.parked
	e.parked = nil
	for _, w := range wakers {
		w.Wake()
	}
}

// pollMain runs the main task until it suspends, then returns. Panics if the
// task is already running: the host never re-enters concurrently, so a
// re-entrant poll is a programming error.
func (e *Executor) pollMain() {
	if e.running {
		panic("task: re-entrant poll of the main task")
	}
	e.running = true
	if !e.started {
		e.started = true
		go e.run()
	} else {
		e.resume <- struct{}{}
	}
	<-e.yield
	e.running = false
}

func (e *Executor) run() {
	e.entry(&Context{exec: e})
	// The entry point's contract is to loop forever. Crash the process
	// rather than leave the host waiting on a task that no longer exists.
	panic("task: main task returned")
}
