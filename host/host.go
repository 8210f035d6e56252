// Package host defines the boundary to the native Playdate runtime.
//
// The native C API is a set of function tables handed to the game at init
// time. This package mirrors those tables as one interface per subsystem,
// bundled in API. A cgo shim implements them against the real device or
// simulator; tests implement them with a scripted host. Everything above this
// package is host-agnostic.
package host

// SystemEvent identifies an event delivered to the game's event handler.
//
// The host delivers Init exactly once, before the first update tick. InitLua
// follows Init and is ignored by Go games. All other events may arrive at any
// point between ticks.
type SystemEvent uint32

const (
	EventInit SystemEvent = iota
	EventInitLua
	EventLock
	EventUnlock
	EventPause
	EventResume
	EventTerminate
	EventKeyPressed // arg carries the keycode, simulator only
	EventKeyReleased
	EventLowPower
)

// UpdateFunc is the per-tick callback registered with the host. A non-zero
// return requests a redraw and continues the game; zero pauses it.
type UpdateFunc func() int32

// Trampoline signatures the host invokes when a registered completion fires.
// The key is the opaque value handed to the host at registration time.
type (
	MenuItemFunc         func(key uintptr)
	SourceCompletionFunc func(key uintptr)
	SequenceFinishedFunc func(key uintptr)
	HeadphoneChangeFunc  func(headphones, mic bool)
)

// Opaque references to host-owned objects. Zero means "none".
type (
	FontRef     uintptr
	BitmapRef   uintptr
	SourceRef   uintptr
	SequenceRef uintptr
	MenuItemRef uintptr
	FileRef     uintptr
)

// API bundles the host's per-subsystem function tables.
type API struct {
	System   System
	Graphics Graphics
	Sound    Sound
	File     File
	Display  Display
}

// System is the host's system table: update callback registration, console
// logging, input state, timers and the system menu.
type System interface {
	SetUpdateCallback(fn UpdateFunc)
	Log(msg string)
	Error(msg string)

	ButtonState() ButtonSet
	CrankDocked() bool
	CrankAngle() float32
	CrankChange() float32
	Accelerometer() (x, y, z float32)
	SetPeripheralsEnabled(p Peripherals)

	// CurrentTimeMilliseconds is the device's monotonic millisecond clock.
	CurrentTimeMilliseconds() uint32
	// SecondsSinceEpoch counts from midnight, January 1 2000.
	SecondsSinceEpoch() uint32
	// The high resolution timer is a single device-wide resource.
	StartHighResolutionTimer()
	StopHighResolutionTimer()
	ElapsedSeconds() float32

	AddMenuItem(title string, key uintptr, fn MenuItemFunc) MenuItemRef
	AddCheckmarkMenuItem(title string, checked bool, key uintptr, fn MenuItemFunc) MenuItemRef
	AddOptionsMenuItem(title string, options []string, key uintptr, fn MenuItemFunc) MenuItemRef
	SetMenuItemTitle(item MenuItemRef, title string)
	MenuItemValue(item MenuItemRef) int32
	SetMenuItemValue(item MenuItemRef, v int32)
	RemoveMenuItem(item MenuItemRef)

	BatteryPercentage() float32
	Language() Language
	Flipped() bool
	ReduceFlashing() bool
}

// Graphics is the host's drawing table. Rendering happens host-side; the
// bindings only move references and coordinates across.
type Graphics interface {
	Clear(c Color)

	LoadFont(path string) (FontRef, error)
	// SetFont makes f the font used by DrawText; zero unsets it.
	SetFont(f FontRef)
	FontHeight(f FontRef) int32
	TextWidth(f FontRef, text string) int32
	DrawText(text string, x, y int32) int32

	// SetStencil sets b as the framebuffer stencil; zero clears it.
	SetStencil(b BitmapRef)

	NewBitmap(w, h int32, bg Color) BitmapRef
	LoadBitmap(path string) (BitmapRef, error)
	FreeBitmap(b BitmapRef)
	BitmapSize(b BitmapRef) (w, h int32)
	ClearBitmap(b BitmapRef, bg Color)
	DrawBitmap(b BitmapRef, x, y int32, flip BitmapFlip)

	SetDrawMode(m BitmapDrawMode)
	FillRect(x, y, w, h int32, c Color)
	MarkUpdatedRows(start, end int32)
}

// Sound is the host's audio table, covering file/sample players and MIDI
// sequences. Completion callbacks registered here fire from the host's own
// call stack, between or within update ticks.
type Sound interface {
	NewFilePlayer() SourceRef
	LoadIntoFilePlayer(p SourceRef, path string) error
	NewSamplePlayer() SourceRef
	LoadIntoSamplePlayer(p SourceRef, path string) error
	PlaySource(p SourceRef, repeat int32) error
	StopSource(p SourceRef)
	SourceLenSeconds(p SourceRef) float32
	SetSourceVolume(p SourceRef, l, r float32)
	// SetFinishCallback registers fn to fire when p finishes playing; nil
	// unregisters. The host passes back the SourceRef as the key.
	SetFinishCallback(p SourceRef, fn SourceCompletionFunc)
	FreeSource(p SourceRef)

	LoadSequence(path string) (SequenceRef, error)
	// PlaySequence starts s; fn, if non-nil, fires when playback completes
	// (not when stopped explicitly). The host passes back the SequenceRef.
	PlaySequence(s SequenceRef, fn SequenceFinishedFunc)
	StopSequence(s SequenceRef)
	SequenceTempo(s SequenceRef) float32
	SetSequenceTempo(s SequenceRef, stepsPerSecond float32)
	SequenceTrackCount(s SequenceRef) int32
	FreeSequence(s SequenceRef)

	SetHeadphoneChangeCallback(fn HeadphoneChangeFunc)
}

// File is the host's filesystem table. Paths are relative to the game's data
// directory, UTF-8, forward slashes.
type File interface {
	Open(path string, mode OpenMode) (FileRef, error)
	Close(f FileRef) error
	Read(f FileRef, p []byte) (int, error)
	Write(f FileRef, p []byte) (int, error)
	Seek(f FileRef, offset int64, whence int) (int64, error)
	Stat(path string) (FileStat, error)
	Mkdir(path string) error
	Rename(from, to string) error
	Delete(path string, recursive bool) error
	List(path string) ([]string, error)
}

// Display is the host's display configuration table.
type Display interface {
	Width() int32
	Height() int32
	SetRefreshRate(fps float32)
	SetScale(s uint32)
	SetInverted(inverted bool)
	SetMosaic(x, y uint32)
	SetFlipped(x, y bool)
	SetOffset(dx, dy int32)
}
