package sound_test

import (
	"testing"
	"time"

	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/host"
	"github.com/pdxgo/playdate/sound"
	pdtest "github.com/pdxgo/playdate/testing"
)

func newSound(t *testing.T) (*pdtest.Host, *sound.Sound) {
	t.Helper()
	h := pdtest.NewHost()
	h.AddFile("audio/hit.wav", []byte("pcm"))
	h.AddFile("audio/theme.mid", []byte("midi"))
	return h, sound.New(h)
}

func bindRunner[T any](v T, cbs *callbacks.Callbacks[T]) {
	callbacks.Bind(func() {}, func() { cbs.Run(v) })
}

func TestFilePlayerMissingAsset(t *testing.T) {
	_, s := newSound(t)
	if _, err := s.NewFilePlayer("audio/nope.wav"); err == nil {
		t.Fatal("loading a missing file did not fail")
	}
}

func TestPlayerPlayback(t *testing.T) {
	h, s := newSound(t)
	p, err := s.NewFilePlayer("audio/hit.wav")
	if err != nil {
		t.Fatal(err)
	}
	ref := host.SourceRef(h.LastRef())

	if err := p.Play(1); err != nil {
		t.Fatal(err)
	}
	if !h.SourcePlaying(ref) {
		t.Fatal("source not playing after Play")
	}
	if got := p.Len(); got != 1500*time.Millisecond {
		t.Errorf("Len() = %v, want 1.5s", got)
	}
	p.Stop()
	if h.SourcePlaying(ref) {
		t.Fatal("source still playing after Stop")
	}
}

func TestPlayerCompletion(t *testing.T) {
	h, s := newSound(t)
	p, _ := s.NewSamplePlayer("audio/hit.wav")
	ref := host.SourceRef(h.LastRef())

	cbs := callbacks.New[*int]()
	done := 0
	bindRunner(&done, cbs)

	sound.OnComplete(p, cbs, func(n *int) { *n++ })
	p.Play(1)
	h.FinishSource(ref)
	if done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}

	// Closing removes the registration; a stale trampoline fire for the
	// freed source must miss.
	sound.OnComplete(p, cbs, func(n *int) { *n++ })
	p.Close()
	p.Close() // idempotent
	callbacks.OnSoundSourceCompletion(uintptr(ref))
	if done != 1 {
		t.Fatalf("completion ran after Close: done = %d", done)
	}
}

func TestOnCompleteReplacesRegistration(t *testing.T) {
	h, s := newSound(t)
	p, _ := s.NewFilePlayer("audio/hit.wav")
	ref := host.SourceRef(h.LastRef())

	cbs := callbacks.New[struct{}]()
	bindRunner(struct{}{}, cbs)

	var got []string
	sound.OnComplete(p, cbs, func(struct{}) { got = append(got, "old") })
	// Re-registering under the same source key must not trip the duplicate
	// check: the old registration is released first.
	sound.OnComplete(p, cbs, func(struct{}) { got = append(got, "new") })

	h.FinishSource(ref)
	if len(got) != 1 || got[0] != "new" {
		t.Fatalf("got = %v, want [new]", got)
	}
}

func TestSequencePlayback(t *testing.T) {
	h, s := newSound(t)
	q, err := s.LoadSequence("audio/theme.mid")
	if err != nil {
		t.Fatal(err)
	}
	ref := host.SequenceRef(h.LastRef())

	cbs := callbacks.New[*int]()
	done := 0
	bindRunner(&done, cbs)

	if q.TrackCount() != 1 {
		t.Errorf("TrackCount() = %d", q.TrackCount())
	}
	q.SetTempo(240)
	if q.Tempo() != 240 {
		t.Errorf("Tempo() = %v", q.Tempo())
	}

	sound.PlayOnComplete(q, cbs, func(n *int) { *n++ })
	h.FinishSequence(ref)
	if done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}

	q.Close()
	q.Close()
}

func TestHeadphoneChange(t *testing.T) {
	h, s := newSound(t)
	cbs := callbacks.New[struct{}]()
	bindRunner(struct{}{}, cbs)

	var got []callbacks.HeadphoneState
	reg := sound.SetHeadphoneChange(s, cbs, func(hs callbacks.HeadphoneState, _ struct{}) {
		got = append(got, hs)
	})

	h.ChangeHeadphones(true, false)
	if len(got) != 1 || !got[0].Headphones {
		t.Fatalf("got = %v", got)
	}

	reg.Remove()
	h.ChangeHeadphones(false, false)
	if len(got) != 1 {
		t.Fatal("removed headphone callback ran")
	}
}
