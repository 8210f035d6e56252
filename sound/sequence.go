package sound

import (
	"github.com/pdxgo/playdate/callbacks"
	"github.com/pdxgo/playdate/host"
)

// Sequence is a MIDI sequence loaded from the game's pdx image.
type Sequence struct {
	s        *Sound
	ref      host.SequenceRef
	finished *callbacks.Registered
}

// LoadSequence loads the MIDI file at path.
func (s *Sound) LoadSequence(path string) (*Sequence, error) {
	ref, err := s.h.LoadSequence(path)
	if err != nil {
		return nil, err
	}
	return &Sequence{s: s, ref: ref}, nil
}

// Play starts the sequence without a completion callback.
func (q *Sequence) Play() {
	q.s.h.PlaySequence(q.ref, nil)
}

// PlayOnComplete starts the sequence and registers cb to run (through cbs)
// when playback reaches the end. Stopping explicitly does not fire it.
func PlayOnComplete[T any](q *Sequence, cbs *callbacks.Callbacks[T], cb func(T)) {
	q.clearFinished()
	fn, reg := cbs.AddSequenceFinished(uintptr(q.ref), cb)
	q.finished = reg
	q.s.h.PlaySequence(q.ref, fn)
}

// Stop stops playback.
func (q *Sequence) Stop() {
	q.s.h.StopSequence(q.ref)
}

// Tempo returns the playback tempo in steps per second.
func (q *Sequence) Tempo() float32 {
	return q.s.h.SequenceTempo(q.ref)
}

// SetTempo sets the playback tempo in steps per second.
func (q *Sequence) SetTempo(stepsPerSecond float32) {
	q.s.h.SetSequenceTempo(q.ref, stepsPerSecond)
}

// TrackCount returns the number of tracks in the sequence.
func (q *Sequence) TrackCount() int32 {
	return q.s.h.SequenceTrackCount(q.ref)
}

func (q *Sequence) clearFinished() {
	if q.finished == nil {
		return
	}
	q.finished.Remove()
	q.finished = nil
}

// Close releases the sequence.
func (q *Sequence) Close() {
	if q.ref == 0 {
		return
	}
	q.clearFinished()
	q.s.h.FreeSequence(q.ref)
	q.ref = 0
}
