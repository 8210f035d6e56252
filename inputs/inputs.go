// Package inputs exposes the input state captured for one frame: buttons
// with edge detection against the previous frame, the crank, and the
// accelerometer when enabled.
package inputs

import "github.com/pdxgo/playdate/host"

// Inputs is the set of all input state and changes since the last frame. It
// is a snapshot: values do not change while the frame is being handled.
type Inputs struct {
	peripherals host.Peripherals
	buttons     Buttons
	crank       Crank
	accel       Vector3
}

// New builds a frame's input snapshot. Button state is cached from the
// previous frame by the runtime so that events between frames can be
// inferred; both frames' sets are passed in rather than read back here.
func New(peripherals host.Peripherals, current, last host.ButtonSet, crank Crank, accel Vector3) Inputs {
	return Inputs{
		peripherals: peripherals,
		buttons:     Buttons{current: current, last: last},
		crank:       crank,
		accel:       accel,
	}
}

// Buttons returns the state of, and events since the last frame for, all
// buttons.
func (i *Inputs) Buttons() *Buttons {
	return &i.buttons
}

// Crank returns the state of and change since the last frame for the crank.
func (i *Inputs) Crank() Crank {
	return i.crank
}

// Accelerometer returns the last sampled accelerometer values. The second
// return is false unless the accelerometer peripheral was enabled.
func (i *Inputs) Accelerometer() (Vector3, bool) {
	if i.peripherals&host.PeripheralAccelerometer == 0 {
		return Vector3{}, false
	}
	return i.accel, true
}

// Vector3 is an accelerometer reading in units of standard gravity.
type Vector3 struct {
	X, Y, Z float32
}

// Crank reports the crank's position. Angle and Change are meaningless while
// the crank is docked.
type Crank struct {
	Docked bool
	// Angle is the absolute position in degrees, 0 at twelve o'clock,
	// increasing clockwise.
	Angle float32
	// Change is the movement in degrees since the last frame.
	Change float32
}

// Buttons tracks the current and previous frame's button sets.
type Buttons struct {
	current, last host.ButtonSet
}

// Down returns the buttons currently held.
func (b *Buttons) Down() host.Buttons {
	return b.current.Current
}

// Changed returns the buttons whose held state differs from the last frame.
func (b *Buttons) Changed() host.Buttons {
	return b.current.Current ^ b.last.Current
}

// Pressed returns the buttons that went down since the last frame, including
// taps that began and ended entirely between two frames.
func (b *Buttons) Pressed() host.Buttons {
	return b.current.Pushed | (b.Changed() & b.current.Current)
}

// Released returns the buttons that went up since the last frame, including
// taps that began and ended entirely between two frames.
func (b *Buttons) Released() host.Buttons {
	return b.current.Released | (b.Changed() & b.last.Current)
}
