// Package playdate is a Go SDK binding layer for the Playdate handheld.
//
// A game is a single function that never returns: an infinite loop awaiting
// the next system event. The host owns the real control flow and drives the
// loop one step per frame through the update callback; see the task and
// event packages for the mechanism. A minimal game looks like:
//
//	func game(ctx *task.Context, api *playdate.API) {
//		for {
//			ev := api.Events.Next(ctx)
//			switch ev.Kind {
//			case event.KindNextFrame:
//				// Read ev.Inputs, update state, draw.
//			}
//		}
//	}
//
//	func main() {
//		playdate.Main(game)
//	}
//
// The host shim (cgo against the device or simulator) delivers system events
// to HandleEvent and invokes the registered update callback once per frame.
package playdate

import (
	"github.com/pdxgo/playdate/display"
	"github.com/pdxgo/playdate/event"
	"github.com/pdxgo/playdate/file"
	"github.com/pdxgo/playdate/graphics"
	"github.com/pdxgo/playdate/host"
	"github.com/pdxgo/playdate/sound"
	"github.com/pdxgo/playdate/system"
	"github.com/pdxgo/playdate/task"
)

// API bundles the per-subsystem API surfaces handed to the game's main
// function.
type API struct {
	System   *system.System
	Graphics *graphics.Graphics
	Sound    *sound.Sound
	File     *file.FS
	Display  *display.Display
	// Events hands out system events; awaiting Events.Next is the game
	// loop's suspension point.
	Events *event.Watcher
}

// GameFunc is a game's main function. It must never return.
type GameFunc func(ctx *task.Context, api *API)

var defaultRuntime Runtime

// Main registers the game's main function with the process-wide runtime.
// Call it from the program's main before the host delivers any events.
func Main(game GameFunc) {
	defaultRuntime.SetGame(game)
}

// HandleEvent is the process-wide event handler a host shim invokes for
// every system event.
func HandleEvent(api host.API, ev host.SystemEvent, arg uint32) {
	defaultRuntime.HandleEvent(api, ev, arg)
}
