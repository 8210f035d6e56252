package event

import (
	"testing"

	"github.com/pdxgo/playdate/task"
)

// harness runs a game loop that appends every event the watcher hands out.
func harness(t *testing.T) (*task.Executor, *Queue, *[]Event) {
	t.Helper()
	exec := task.New()
	q := NewQueue()
	w := NewWatcher(q, exec)
	got := new([]Event)
	exec.SetMainTask(func(ctx *task.Context) {
		for {
			*got = append(*got, w.Next(ctx))
		}
	})
	return exec, q, got
}

func TestNextDeliversInArrivalOrder(t *testing.T) {
	exec, q, got := harness(t)

	exec.PollOnce()
	if len(*got) != 0 {
		t.Fatalf("events before any were queued: %v", *got)
	}

	q.Add(Event{Kind: KindWillPause})
	q.Add(Event{Kind: KindWillResume})
	q.Add(Event{Kind: KindNextFrame, Frame: 1})
	exec.WakeParked()

	want := []Kind{KindWillPause, KindWillResume, KindNextFrame}
	if len(*got) != len(want) {
		t.Fatalf("got %d events, want %d", len(*got), len(want))
	}
	for i, k := range want {
		if (*got)[i].Kind != k {
			t.Errorf("event %d: kind = %v, want %v", i, (*got)[i].Kind, k)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not drained: %d left", q.Len())
	}
}

func TestNextResolvesImmediatelyWhenEventAlreadyQueued(t *testing.T) {
	exec, q, got := harness(t)

	// Queued before the task ever runs: the first poll must resolve without
	// a park/wake round trip.
	q.Add(Event{Kind: KindWillTerminate})
	exec.PollOnce()

	if len(*got) != 1 || (*got)[0].Kind != KindWillTerminate {
		t.Fatalf("got = %v, want one WillTerminate", *got)
	}
}

func TestEachWakeDeliversFreshEventsOnly(t *testing.T) {
	exec, q, got := harness(t)
	exec.PollOnce()

	q.Add(Event{Kind: KindNextFrame, Frame: 1})
	exec.WakeParked()
	q.Add(Event{Kind: KindNextFrame, Frame: 2})
	exec.WakeParked()

	if len(*got) != 2 {
		t.Fatalf("got %d events, want 2", len(*got))
	}
	for i, ev := range *got {
		if ev.Frame != uint64(i+1) {
			t.Errorf("event %d: frame = %d, want %d", i, ev.Frame, i+1)
		}
	}
}

func TestQueueOverflowPanics(t *testing.T) {
	q := NewQueue()
	for i := 0; i < maxPending; i++ {
		q.Add(Event{Kind: KindNextFrame})
	}
	defer func() {
		if recover() == nil {
			t.Fatal("overflowing the queue did not panic")
		}
	}()
	q.Add(Event{Kind: KindNextFrame})
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNextFrame:     "NextFrame",
		KindWillTerminate: "WillTerminate",
		KindCallback:      "Callback",
		Kind(250):         "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
