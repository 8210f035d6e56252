package system_test

import (
	"testing"
	"time"

	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/host"
	"github.com/pdxgo/playdate/system"
	pdtest "github.com/pdxgo/playdate/testing"
)

// bindRunner makes fired trampolines run through cbs immediately, standing in
// for the runtime's Callback event round trip.
func bindRunner[T any](v T, cbs *callbacks.Callbacks[T]) {
	callbacks.Bind(func() {}, func() { cbs.Run(v) })
}

func TestLogFormatting(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	s.Log("frame %d", 7)
	s.Error("bad state: %q", "x")
	if len(h.Logs) != 1 || h.Logs[0] != "frame 7" {
		t.Errorf("Logs = %v", h.Logs)
	}
	if len(h.Errs) != 1 || h.Errs[0] != `bad state: "x"` {
		t.Errorf("Errs = %v", h.Errs)
	}
}

func TestPeripheralsRemembered(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	if s.Peripherals() != host.PeripheralNone {
		t.Fatal("peripherals enabled by default")
	}
	s.EnablePeripherals(host.PeripheralAccelerometer)
	if s.Peripherals() != host.PeripheralAccelerometer {
		t.Fatal("EnablePeripherals not remembered")
	}
}

func TestTimerSentinelGenerations(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)

	first := s.StartTimer()
	second := s.StartTimer()
	if h.TimerStarts != 2 {
		t.Fatalf("TimerStarts = %d, want 2", h.TimerStarts)
	}

	// The superseded sentinel must not stop the restarted timer.
	first.Close()
	if h.TimerStops != 0 {
		t.Fatal("stale Close stopped the timer")
	}
	second.Close()
	if h.TimerStops != 1 {
		t.Fatalf("TimerStops = %d, want 1", h.TimerStops)
	}
}

func TestTimerElapsed(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	timer := s.StartTimer()
	h.SetElapsedSeconds(0.25)
	if got := timer.Elapsed(); got != 250*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 250ms", got)
	}
}

func TestMenuItemCallbackAndRemoval(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	cbs := callbacks.New[*int]()
	count := 0
	bindRunner(&count, cbs)

	item := system.NewActionItem(s, "restart", cbs, func(n *int) { *n++ })
	ref := host.MenuItemRef(h.LastRef())

	h.ChooseMenuItem(ref)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	item.Remove()
	item.Remove() // idempotent
	if !h.MenuRemoved(ref) {
		t.Fatal("item not removed from the host menu")
	}

	// A stale host callback after removal must find nothing.
	h.ChooseMenuItem(ref)
	if count != 1 {
		t.Fatalf("removed item's callback ran: count = %d", count)
	}
}

func TestCheckmarkAndOptionsValues(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	cbs := callbacks.New[struct{}]()
	bindRunner(struct{}{}, cbs)

	check := system.NewCheckmarkItem(s, "sound", true, cbs, func(struct{}) {})
	if check.Value() != 1 {
		t.Errorf("checkmark Value() = %d, want 1", check.Value())
	}
	check.SetValue(0)
	if check.Value() != 0 {
		t.Errorf("checkmark Value() = %d, want 0", check.Value())
	}

	opts := system.NewOptionsItem(s, "mode", []string{"easy", "hard"}, cbs, func(struct{}) {})
	opts.SetValue(1)
	if opts.Value() != 1 {
		t.Errorf("options Value() = %d, want 1", opts.Value())
	}
	opts.SetTitle("difficulty")
	if got := h.MenuTitle(host.MenuItemRef(h.LastRef())); got != "difficulty" {
		t.Errorf("title = %q", got)
	}
}

func TestClocks(t *testing.T) {
	h := pdtest.NewHost()
	s := system.New(h)
	if s.CurrentTime() != 0 {
		t.Error("CurrentTime nonzero before any tick")
	}
	if s.BatteryPercentage() != 100 {
		t.Errorf("BatteryPercentage() = %v", s.BatteryPercentage())
	}
}
