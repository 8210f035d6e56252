// Package system wraps the host's system table: console logging, clocks, the
// high resolution timer, peripherals and the system menu.
package system

import (
	"fmt"
	"time"

	"github.com/pdxgo/playdate/host"
)

// System is the system API surface. One instance exists per process.
type System struct {
	h           host.System
	peripherals host.Peripherals
	timerGen    uint64
	menuKey     uintptr
}

func New(h host.System) *System {
	return &System{h: h}
}

// Log writes a formatted line to the host console.
func (s *System) Log(format string, args ...any) {
	s.h.Log(fmt.Sprintf(format, args...))
}

// Error writes a formatted line to the host console's error stream. On the
// simulator this also pauses execution.
func (s *System) Error(format string, args ...any) {
	s.h.Error(fmt.Sprintf(format, args...))
}

// CurrentTime returns the device's monotonic clock. Millisecond resolution;
// use a HighResolutionTimer for finer measurements.
func (s *System) CurrentTime() time.Duration {
	return time.Duration(s.h.CurrentTimeMilliseconds()) * time.Millisecond
}

// TimeSinceEpoch returns the wall clock time since midnight, January 1 2000.
// Not monotonic: the player can change the device clock.
func (s *System) TimeSinceEpoch() time.Duration {
	return time.Duration(s.h.SecondsSinceEpoch()) * time.Second
}

// EnablePeripherals selects which optional input devices the host samples
// each frame. Inputs snapshots only carry values for enabled peripherals.
func (s *System) EnablePeripherals(p host.Peripherals) {
	s.peripherals = p
	s.h.SetPeripheralsEnabled(p)
}

// Peripherals returns the currently enabled peripherals.
func (s *System) Peripherals() host.Peripherals {
	return s.peripherals
}

// BatteryPercentage returns the battery charge in [0, 100].
func (s *System) BatteryPercentage() float32 {
	return s.h.BatteryPercentage()
}

// Language returns the system language.
func (s *System) Language() host.Language {
	return s.h.Language()
}

// Flipped reports whether the player enabled upside-down mode.
func (s *System) Flipped() bool {
	return s.h.Flipped()
}

// ReduceFlashing reports whether the player asked games to avoid flashing
// effects.
func (s *System) ReduceFlashing() bool {
	return s.h.ReduceFlashing()
}

// HighResolutionTimer measures short intervals with microsecond resolution.
// The device has a single such timer; see StartTimer.
type HighResolutionTimer struct {
	s          *System
	generation uint64
}

// StartTimer starts the device's high resolution timer and returns the
// sentinel guarding it. Starting it again supersedes the previous sentinel:
// the timer restarts and the old sentinel's Close becomes a no-op.
func (s *System) StartTimer() *HighResolutionTimer {
	s.timerGen++
	s.h.StartHighResolutionTimer()
	return &HighResolutionTimer{s: s, generation: s.timerGen}
}

// Elapsed returns the time since the timer started. The timer is meant for
// short spans and loses precision the longer it runs.
func (t *HighResolutionTimer) Elapsed() time.Duration {
	return time.Duration(float64(t.s.h.ElapsedSeconds()) * float64(time.Second))
}

// Close stops the device timer, unless a later StartTimer superseded this
// sentinel.
func (t *HighResolutionTimer) Close() {
	if t.generation == t.s.timerGen {
		t.s.h.StopHighResolutionTimer()
	}
}
