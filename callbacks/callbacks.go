// Package callbacks owns the closures a game registers for host-originated
// completions: sound sources finishing, menu items being chosen, sequences
// ending, headphones being plugged or unplugged.
//
// The host cannot call a Go closure; it calls a trampoline with an opaque
// key. The trampoline records which (category, key) is active, queues a
// Callback system event and wakes the task, all before returning to the
// host. The woken task observes the event and calls Run on its Callbacks
// collections, which looks the closure up by the recorded key and invokes
// it. From the host's perspective the closure ran inside the original
// callback's dynamic extent; from the task's it was a fresh resume.
//
// Removal is deferred: dropping a registration pushes its key onto a pending
// list that is flushed at the start of the next Run, never while a lookup
// might be in progress. A key that was removed is never matched again, even
// if the host fires a stale trampoline for it.
package callbacks

import "github.com/pdxgo/playdate/host"

type kind uint8

const (
	kindNone kind = iota
	kindSoundSourceCompletion
	kindMenuItem
	kindSequenceFinished
	kindHeadphoneChanged
)

type key struct {
	kind kind
	id   uintptr
}

// HeadphoneState is the payload of a headphone-change callback.
type HeadphoneState struct {
	Headphones bool
	Mic        bool
}

// The single active callback. Only one callback is current at a time: the
// host's callback model is synchronous and single-threaded, so a trampoline
// never fires while another is being serviced.
var current struct {
	kind       kind
	id         uintptr
	headphones HeadphoneState
}

// dispatch is bound once by the runtime at init. raise queues the Callback
// system event; wake re-polls the task.
var dispatch struct {
	raise func()
	wake  func()
}

// Bind wires the trampolines to the process's event queue and executor.
func Bind(raise, wake func()) {
	dispatch.raise = raise
	dispatch.wake = wake
}

func fire(k kind, id uintptr, hs HeadphoneState) {
	if dispatch.raise == nil {
		panic("callbacks: trampoline fired before Bind")
	}
	if current.kind != kindNone {
		panic("callbacks: re-entrant system callback")
	}
	current.kind, current.id, current.headphones = k, id, hs
	dispatch.raise()
	// The task resumes inside this call, observes the Callback event and is
	// expected to Run its collections before yielding back here.
	dispatch.wake()
	current.kind, current.id, current.headphones = kindNone, 0, HeadphoneState{}
}

// Host-callable trampolines, one per category. The key is whatever opaque
// value was handed to the host at registration time.

func OnSoundSourceCompletion(id uintptr) { fire(kindSoundSourceCompletion, id, HeadphoneState{}) }
func OnMenuItem(id uintptr)              { fire(kindMenuItem, id, HeadphoneState{}) }
func OnSequenceFinished(id uintptr)      { fire(kindSequenceFinished, id, HeadphoneState{}) }
func OnHeadphoneChange(headphones, mic bool) {
	fire(kindHeadphoneChanged, 0, HeadphoneState{Headphones: headphones, Mic: mic})
}

// pending is the removal list shared between a Callbacks collection and the
// Registered guards it hands out. Guards may outlive their collection; a
// flush into an unreachable collection's list is harmless.
type pending struct {
	keys []key
}

// Registered holds ownership of one registered closure. Removing it prevents
// the closure from ever running again. Typically kept as a field for as long
// as the registration should stay live.
type Registered struct {
	key     key
	removed *pending
}

// Remove schedules the closure for removal. The entry is garbage collected
// at the next Run; lookups for its key miss from this call on. Remove is
// idempotent.
func (r *Registered) Remove() {
	if r.removed == nil {
		return
	}
	r.removed.keys = append(r.removed.keys, r.key)
	r.removed = nil
}

// Callbacks collects a game's registered closures. The type parameter T is
// the value the game passes through Run to every closure, typically a struct
// of borrowed game state.
type Callbacks[T any] struct {
	soundSourceCompletion map[uintptr]func(T)
	menuItem              map[uintptr]func(T)
	sequenceFinished      map[uintptr]func(T)
	headphoneChanged      func(HeadphoneState, T)
	removed               *pending
}

func New[T any]() *Callbacks[T] {
	return &Callbacks[T]{
		soundSourceCompletion: make(map[uintptr]func(T)),
		menuItem:              make(map[uintptr]func(T)),
		sequenceFinished:      make(map[uintptr]func(T)),
		removed:               &pending{},
	}
}

func (c *Callbacks[T]) gc() {
	keys := c.removed.keys
	c.removed.keys = nil
	for _, k := range keys {
		switch k.kind {
		case kindSoundSourceCompletion:
			delete(c.soundSourceCompletion, k.id)
		case kindMenuItem:
			delete(c.menuItem, k.id)
		case kindSequenceFinished:
			delete(c.sequenceFinished, k.id)
		case kindHeadphoneChanged:
			c.headphoneChanged = nil
		}
	}
}

// Run attempts to run the currently active callback, passing along v.
//
// Call it in response to a Callback system event. Returns true if the active
// callback's closure lives in this collection and was run; false means the
// callback belongs to a different collection, or its registration was
// already removed.
func (c *Callbacks[T]) Run(v T) bool {
	// Flush removals before lookup so a removed entry can never match.
	c.gc()

	switch current.kind {
	case kindSoundSourceCompletion:
		if f, ok := c.soundSourceCompletion[current.id]; ok {
			f(v)
			return true
		}
	case kindMenuItem:
		if f, ok := c.menuItem[current.id]; ok {
			f(v)
			return true
		}
	case kindSequenceFinished:
		if f, ok := c.sequenceFinished[current.id]; ok {
			f(v)
			return true
		}
	case kindHeadphoneChanged:
		if c.headphoneChanged != nil {
			c.headphoneChanged(current.headphones, v)
			return true
		}
	}
	return false
}

func (c *Callbacks[T]) add(k key, cb func(T)) *Registered {
	// Flush removals so re-registering a just-removed key is not a duplicate.
	c.gc()
	switch k.kind {
	case kindSoundSourceCompletion:
		if _, dup := c.soundSourceCompletion[k.id]; dup {
			panic("callbacks: duplicate sound source key")
		}
		c.soundSourceCompletion[k.id] = cb
	case kindMenuItem:
		if _, dup := c.menuItem[k.id]; dup {
			panic("callbacks: duplicate menu item key")
		}
		c.menuItem[k.id] = cb
	case kindSequenceFinished:
		if _, dup := c.sequenceFinished[k.id]; dup {
			panic("callbacks: duplicate sequence key")
		}
		c.sequenceFinished[k.id] = cb
	}
	return &Registered{key: k, removed: c.removed}
}

// AddSoundSourceCompletion registers cb under the sound source's key and
// returns the trampoline to hand to the host alongside the registration
// guard.
func (c *Callbacks[T]) AddSoundSourceCompletion(id uintptr, cb func(T)) (host.SourceCompletionFunc, *Registered) {
	return OnSoundSourceCompletion, c.add(key{kindSoundSourceCompletion, id}, cb)
}

// AddMenuItem registers cb for a menu item key.
func (c *Callbacks[T]) AddMenuItem(id uintptr, cb func(T)) (host.MenuItemFunc, *Registered) {
	return OnMenuItem, c.add(key{kindMenuItem, id}, cb)
}

// AddSequenceFinished registers cb under the sequence's key.
func (c *Callbacks[T]) AddSequenceFinished(id uintptr, cb func(T)) (host.SequenceFinishedFunc, *Registered) {
	return OnSequenceFinished, c.add(key{kindSequenceFinished, id}, cb)
}

// AddHeadphoneChange registers cb for headphone state changes. At most one
// headphone closure may be registered per collection.
func (c *Callbacks[T]) AddHeadphoneChange(cb func(HeadphoneState, T)) (host.HeadphoneChangeFunc, *Registered) {
	c.gc()
	if c.headphoneChanged != nil {
		panic("callbacks: headphone change callback already registered")
	}
	c.headphoneChanged = cb
	return OnHeadphoneChange, &Registered{key: key{kind: kindHeadphoneChanged}, removed: c.removed}
}
