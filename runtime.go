package playdate

import (
	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/display"
	"github.com/pdxgo/playdate/event"
	"github.com/pdxgo/playdate/file"
	"github.com/pdxgo/playdate/graphics"
	"github.com/pdxgo/playdate/host"
	"github.com/pdxgo/playdate/inputs"
	"github.com/pdxgo/playdate/sound"
	"github.com/pdxgo/playdate/system"
	"github.com/pdxgo/playdate/task"
)

// Runtime ties one game to one host. Production code uses the package-level
// default through Main and HandleEvent; tests construct their own against a
// scripted host. Note that the callbacks package's current-callback slot is
// process-wide, so only one Runtime may be live at a time.
type Runtime struct {
	game GameFunc
	st   *state
}

// state is built once, at the host's init event, and lives for the process.
type state struct {
	host  host.API
	exec  *task.Executor
	queue *event.Queue
	api   *API

	frame uint64
	// Button state for the current and previous frame. On the first frame
	// the previous slot is a duplicate of the current one.
	buttons     [2]host.ButtonSet
	haveButtons bool
}

// SetGame registers the game's main function. Must happen before the init
// event arrives.
func (r *Runtime) SetGame(game GameFunc) {
	if r.game != nil {
		panic("playdate: game already set")
	}
	r.game = game
}

// HandleEvent dispatches one host system event.
//
// Init builds the process state and registers the update callback; InitLua
// is ignored. Every other event is queued for the game and the task is woken
// before returning, so the game observes the event while the host's call
// stack is still live.
func (r *Runtime) HandleEvent(api host.API, ev host.SystemEvent, arg uint32) {
	switch ev {
	case host.EventInit:
		r.init(api)
	case host.EventInitLua:
		// The game runs in Go; there is no Lua side to set up.
	case host.EventLock:
		r.raise(event.Event{Kind: event.KindWillLock})
	case host.EventUnlock:
		r.raise(event.Event{Kind: event.KindDidUnlock})
	case host.EventPause:
		r.raise(event.Event{Kind: event.KindWillPause})
	case host.EventResume:
		r.raise(event.Event{Kind: event.KindWillResume})
	case host.EventTerminate:
		r.raise(event.Event{Kind: event.KindWillTerminate})
	case host.EventLowPower:
		r.raise(event.Event{Kind: event.KindWillSleep})
	case host.EventKeyPressed:
		r.raise(event.Event{Kind: event.KindKeyPressed, Keycode: arg})
	case host.EventKeyReleased:
		r.raise(event.Event{Kind: event.KindKeyReleased, Keycode: arg})
	}
}

func (r *Runtime) init(api host.API) {
	if r.game == nil {
		panic("playdate: init event before Main")
	}
	if r.st != nil {
		panic("playdate: init event delivered twice")
	}

	st := &state{
		host:  api,
		exec:  task.New(),
		queue: event.NewQueue(),
	}
	st.api = &API{
		System:   system.New(api.System),
		Graphics: graphics.New(api.Graphics),
		Sound:    sound.New(api.Sound),
		File:     file.New(api.File),
		Display:  display.New(api.Display),
		Events:   event.NewWatcher(st.queue, st.exec),
	}
	r.st = st

	callbacks.Bind(
		func() { st.queue.Add(event.Event{Kind: event.KindCallback}) },
		st.exec.WakeParked,
	)

	game := r.game
	st.exec.SetMainTask(func(ctx *task.Context) {
		defer func() {
			if p := recover(); p != nil {
				// No unwinding across the host boundary: log and abort.
				api.System.Error("panic in game: " + panicString(p))
				panic(p)
			}
		}()
		game(ctx, st.api)
	})

	api.System.SetUpdateCallback(r.update)
}

func (r *Runtime) raise(ev event.Event) {
	if r.st == nil {
		panic("playdate: system event before init")
	}
	r.st.queue.Add(ev)
	r.st.exec.WakeParked()
}

// update is the host's per-tick callback.
func (r *Runtime) update() int32 {
	st := r.st

	// The first poll happens before the frame number advances, so the main
	// function can await the watcher at the top of its loop without missing
	// the first frame.
	st.exec.PollOnce()

	st.frame++

	// Capture input state before waking any futures; the frame event's
	// snapshot must be the one those futures observe.
	cur := st.host.System.ButtonState()
	if !st.haveButtons {
		st.buttons[0] = cur
		st.haveButtons = true
	}
	st.buttons[1] = st.buttons[0]
	st.buttons[0] = cur

	st.queue.Add(event.Event{
		Kind:   event.KindNextFrame,
		Frame:  st.frame,
		Inputs: r.frameInputs(),
	})
	st.exec.WakeParked()

	// Always request a redraw; pausing the host is never useful for a game
	// driving its own loop.
	return 1
}

func (r *Runtime) frameInputs() inputs.Inputs {
	st := r.st
	sys := st.host.System

	crank := inputs.Crank{Docked: sys.CrankDocked()}
	if !crank.Docked {
		crank.Angle = sys.CrankAngle()
		crank.Change = sys.CrankChange()
	}

	var accel inputs.Vector3
	peripherals := st.api.System.Peripherals()
	if peripherals&host.PeripheralAccelerometer != 0 {
		accel.X, accel.Y, accel.Z = sys.Accelerometer()
	}

	return inputs.New(peripherals, st.buttons[0], st.buttons[1], crank, accel)
}

func panicString(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case error:
		return v.Error()
	}
	return "unknown panic payload"
}
