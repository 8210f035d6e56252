// Package sound wraps the host's audio table: file and sample players and
// MIDI sequences. Completion notifications run through the callbacks
// registry so their closures execute on the game's task, not on the host's
// audio path.
package sound

import (
	"time"

	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/host"
)

// Sound is the audio API surface. One instance exists per process.
type Sound struct {
	h host.Sound
}

func New(h host.Sound) *Sound {
	return &Sound{h: h}
}

// SetHeadphoneChange registers cb to run when headphones or a headset mic
// are connected or disconnected. Remove the returned registration to stop
// observing changes.
func SetHeadphoneChange[T any](s *Sound, cbs *callbacks.Callbacks[T], cb func(callbacks.HeadphoneState, T)) *callbacks.Registered {
	fn, reg := cbs.AddHeadphoneChange(cb)
	s.h.SetHeadphoneChangeCallback(fn)
	return reg
}

// Player is a playing source: a FilePlayer streaming from disk or a
// SamplePlayer playing a loaded sample.
type Player struct {
	s        *Sound
	ref      host.SourceRef
	finished *callbacks.Registered
}

// NewFilePlayer creates a player streaming the audio file at path.
func (s *Sound) NewFilePlayer(path string) (*Player, error) {
	ref := s.h.NewFilePlayer()
	if err := s.h.LoadIntoFilePlayer(ref, path); err != nil {
		s.h.FreeSource(ref)
		return nil, err
	}
	return &Player{s: s, ref: ref}, nil
}

// NewSamplePlayer creates a player over the decoded sample at path.
func (s *Sound) NewSamplePlayer(path string) (*Player, error) {
	ref := s.h.NewSamplePlayer()
	if err := s.h.LoadIntoSamplePlayer(ref, path); err != nil {
		s.h.FreeSource(ref)
		return nil, err
	}
	return &Player{s: s, ref: ref}, nil
}

// Play starts playback. repeat is the number of times to play (0 loops
// forever).
func (p *Player) Play(repeat int32) error {
	return p.s.h.PlaySource(p.ref, repeat)
}

// Stop stops playback without firing the completion callback.
func (p *Player) Stop() {
	p.s.h.StopSource(p.ref)
}

// Len returns the source's duration.
func (p *Player) Len() time.Duration {
	return time.Duration(float64(p.s.h.SourceLenSeconds(p.ref)) * float64(time.Second))
}

// SetVolume sets the left and right channel volume in [0, 1].
func (p *Player) SetVolume(l, r float32) {
	p.s.h.SetSourceVolume(p.ref, l, r)
}

// OnComplete registers cb to run (through cbs) when the player finishes
// playing. A previous completion registration on this player is released.
func OnComplete[T any](p *Player, cbs *callbacks.Callbacks[T], cb func(T)) {
	p.ClearComplete()
	fn, reg := cbs.AddSoundSourceCompletion(uintptr(p.ref), cb)
	p.finished = reg
	p.s.h.SetFinishCallback(p.ref, fn)
}

// ClearComplete removes the player's completion registration, if any.
func (p *Player) ClearComplete() {
	if p.finished == nil {
		return
	}
	p.s.h.SetFinishCallback(p.ref, nil)
	p.finished.Remove()
	p.finished = nil
}

// Close releases the player. Any completion registration is removed first,
// so a stale host callback can never reach a freed player's closure.
func (p *Player) Close() {
	if p.ref == 0 {
		return
	}
	p.ClearComplete()
	p.s.h.FreeSource(p.ref)
	p.ref = 0
}
