// Package testing provides a scripted host for exercising the SDK without a
// device or simulator. The Host implements every table in the host package,
// records the calls a test wants to assert on, and exposes the knobs the
// real host would drive: ticking the update callback, delivering input state
// and firing completion trampolines.
package testing

import (
	"fmt"
	"io"

	"github.com/pdxgo/playdate/host"
)

// Host is a scripted in-memory host. The zero value is not usable; call
// NewHost.
type Host struct {
	update host.UpdateFunc

	// Captured console output.
	Logs []string
	Errs []string

	buttons     host.ButtonSet
	crankDocked bool
	crankAngle  float32
	crankChange float32
	accel       [3]float32
	peripherals host.Peripherals

	timeMS      uint32
	epochS      uint32
	elapsedS    float32
	TimerStarts int
	TimerStops  int

	// Every SetFont / SetStencil call in order, zeroes included. Sentinel
	// tests assert on these.
	FontSets    []host.FontRef
	StencilSets []host.BitmapRef
	// Every DrawText call's text.
	TextDrawn []string
	Cleared   []host.Color

	nextRef uintptr

	fonts     map[host.FontRef]string
	bitmaps   map[host.BitmapRef]bitmapData
	menuItems map[host.MenuItemRef]*menuItem
	sources   map[host.SourceRef]*sourceData
	sequences map[host.SequenceRef]*sequenceData

	headphoneFn host.HeadphoneChangeFunc

	files map[string][]byte
	dirs  map[string]bool
	open  map[host.FileRef]*openFile

	width, height int32
	refreshRate   float32
	scale         uint32
	inverted      bool

	language       host.Language
	flipped        bool
	reduceFlashing bool
	battery        float32
}

type bitmapData struct {
	w, h int32
	bg   host.Color
}

type menuItem struct {
	title   string
	value   int32
	options []string
	key     uintptr
	fn      host.MenuItemFunc
	removed bool
}

type sourceData struct {
	path    string
	playing bool
	lenS    float32
	volL    float32
	volR    float32
	finish  host.SourceCompletionFunc
}

type sequenceData struct {
	path    string
	playing bool
	tempo   float32
	tracks  int32
	finish  host.SequenceFinishedFunc
}

type openFile struct {
	path string
	mode host.OpenMode
	pos  int64
}

func NewHost() *Host {
	return &Host{
		crankDocked: true,
		battery:     100,
		width:       400,
		height:      240,
		scale:       1,
		fonts:       make(map[host.FontRef]string),
		bitmaps:     make(map[host.BitmapRef]bitmapData),
		menuItems:   make(map[host.MenuItemRef]*menuItem),
		sources:     make(map[host.SourceRef]*sourceData),
		sequences:   make(map[host.SequenceRef]*sequenceData),
		files:       make(map[string][]byte),
		dirs:        make(map[string]bool),
		open:        make(map[host.FileRef]*openFile),
	}
}

// API returns the host function tables, all backed by h.
func (h *Host) API() host.API {
	return host.API{System: h, Graphics: h, Sound: h, File: h, Display: h}
}

func (h *Host) ref() uintptr {
	h.nextRef++
	return h.nextRef
}

// --- scripting ---

// Tick invokes the registered update callback, as the host does once per
// frame, and advances the millisecond clock.
func (h *Host) Tick() int32 {
	if h.update == nil {
		panic("testing: tick before an update callback was registered")
	}
	h.timeMS += 33
	return h.update()
}

// SetButtons scripts the button state the next ButtonState call reports.
func (h *Host) SetButtons(current, pushed, released host.Buttons) {
	h.buttons = host.ButtonSet{Current: current, Pushed: pushed, Released: released}
}

// SetCrank scripts the crank state.
func (h *Host) SetCrank(docked bool, angle, change float32) {
	h.crankDocked, h.crankAngle, h.crankChange = docked, angle, change
}

// SetAccelerometer scripts the accelerometer reading.
func (h *Host) SetAccelerometer(x, y, z float32) {
	h.accel = [3]float32{x, y, z}
}

// SetElapsedSeconds scripts the high resolution timer's reading.
func (h *Host) SetElapsedSeconds(s float32) {
	h.elapsedS = s
}

// ChooseMenuItem fires the menu item's trampoline, as the host does when the
// player picks it from the System Menu. Firing a removed item is allowed:
// real hosts can race a removal, and the registry must treat it as stale.
func (h *Host) ChooseMenuItem(ref host.MenuItemRef) {
	m, ok := h.menuItems[ref]
	if !ok {
		panic("testing: unknown menu item")
	}
	m.fn(m.key)
}

// FinishSource fires the source's completion trampoline, if one is set.
func (h *Host) FinishSource(ref host.SourceRef) {
	s, ok := h.sources[ref]
	if !ok {
		panic("testing: unknown sound source")
	}
	s.playing = false
	if s.finish != nil {
		s.finish(uintptr(ref))
	}
}

// FinishSequence fires the sequence's finished trampoline, if one is set.
func (h *Host) FinishSequence(ref host.SequenceRef) {
	q, ok := h.sequences[ref]
	if !ok {
		panic("testing: unknown sequence")
	}
	q.playing = false
	if q.finish != nil {
		q.finish(uintptr(ref))
	}
}

// ChangeHeadphones fires the headphone-change trampoline, if registered.
func (h *Host) ChangeHeadphones(headphones, mic bool) {
	if h.headphoneFn != nil {
		h.headphoneFn(headphones, mic)
	}
}

// LastRef returns the most recently allocated host reference, so tests can
// name the object behind an opaque wrapper.
func (h *Host) LastRef() uintptr {
	return h.nextRef
}

// AddFile seeds the in-memory filesystem.
func (h *Host) AddFile(path string, data []byte) {
	h.files[path] = append([]byte(nil), data...)
}

// FileContents returns the current contents of path.
func (h *Host) FileContents(path string) ([]byte, bool) {
	b, ok := h.files[path]
	return b, ok
}

// MenuTitle returns the current title of a menu item.
func (h *Host) MenuTitle(ref host.MenuItemRef) string {
	return h.menuItems[ref].title
}

// MenuRemoved reports whether the item was removed from the menu.
func (h *Host) MenuRemoved(ref host.MenuItemRef) bool {
	return h.menuItems[ref].removed
}

// SourcePlaying reports whether the source is currently playing.
func (h *Host) SourcePlaying(ref host.SourceRef) bool {
	return h.sources[ref].playing
}

// --- host.System ---

func (h *Host) SetUpdateCallback(fn host.UpdateFunc) { h.update = fn }
func (h *Host) Log(msg string) { h.Logs = append(h.Logs, msg) }
func (h *Host) Error(msg string) { h.Errs = append(h.Errs, msg) }

func (h *Host) ButtonState() host.ButtonSet { return h.buttons }
func (h *Host) CrankDocked() bool { return h.crankDocked }
func (h *Host) CrankAngle() float32 { return h.crankAngle }
func (h *Host) CrankChange() float32 { return h.crankChange }
func (h *Host) Accelerometer() (x, y, z float32) { return h.accel[0], h.accel[1], h.accel[2] }
func (h *Host) SetPeripheralsEnabled(p host.Peripherals) { h.peripherals = p }

func (h *Host) CurrentTimeMilliseconds() uint32 { return h.timeMS }
func (h *Host) SecondsSinceEpoch() uint32 { return h.epochS }
func (h *Host) StartHighResolutionTimer() { h.TimerStarts++ }
func (h *Host) StopHighResolutionTimer() { h.TimerStops++ }
func (h *Host) ElapsedSeconds() float32 { return h.elapsedS }

func (h *Host) AddMenuItem(title string, key uintptr, fn host.MenuItemFunc) host.MenuItemRef {
	ref := host.MenuItemRef(h.ref())
	h.menuItems[ref] = &menuItem{title: title, key: key, fn: fn}
	return ref
}

func (h *Host) AddCheckmarkMenuItem(title string, checked bool, key uintptr, fn host.MenuItemFunc) host.MenuItemRef {
	ref := h.AddMenuItem(title, key, fn)
	if checked {
		h.menuItems[ref].value = 1
	}
	return ref
}

func (h *Host) AddOptionsMenuItem(title string, options []string, key uintptr, fn host.MenuItemFunc) host.MenuItemRef {
	ref := h.AddMenuItem(title, key, fn)
	h.menuItems[ref].options = options
	return ref
}

func (h *Host) SetMenuItemTitle(item host.MenuItemRef, title string) { h.menuItems[item].title = title }
func (h *Host) MenuItemValue(item host.MenuItemRef) int32 { return h.menuItems[item].value }
func (h *Host) SetMenuItemValue(item host.MenuItemRef, v int32) { h.menuItems[item].value = v }
func (h *Host) RemoveMenuItem(item host.MenuItemRef) { h.menuItems[item].removed = true }

func (h *Host) BatteryPercentage() float32 { return h.battery }
func (h *Host) Language() host.Language { return h.language }
func (h *Host) Flipped() bool { return h.flipped }
func (h *Host) ReduceFlashing() bool { return h.reduceFlashing }

// --- host.Graphics ---

func (h *Host) Clear(c host.Color) { h.Cleared = append(h.Cleared, c) }

func (h *Host) LoadFont(path string) (host.FontRef, error) {
	if _, ok := h.files[path]; !ok {
		return 0, fmt.Errorf("font %q: no such file", path)
	}
	ref := host.FontRef(h.ref())
	h.fonts[ref] = path
	return ref, nil
}

func (h *Host) SetFont(f host.FontRef) { h.FontSets = append(h.FontSets, f) }
func (h *Host) FontHeight(host.FontRef) int32 { return 16 }
func (h *Host) TextWidth(f host.FontRef, text string) int32 {
	return int32(8 * len([]rune(text)))
}
func (h *Host) DrawText(text string, x, y int32) int32 {
	h.TextDrawn = append(h.TextDrawn, text)
	return int32(8 * len([]rune(text)))
}

func (h *Host) SetStencil(b host.BitmapRef) { h.StencilSets = append(h.StencilSets, b) }

func (h *Host) NewBitmap(w, hgt int32, bg host.Color) host.BitmapRef {
	ref := host.BitmapRef(h.ref())
	h.bitmaps[ref] = bitmapData{w: w, h: hgt, bg: bg}
	return ref
}

func (h *Host) LoadBitmap(path string) (host.BitmapRef, error) {
	if _, ok := h.files[path]; !ok {
		return 0, fmt.Errorf("bitmap %q: no such file", path)
	}
	ref := host.BitmapRef(h.ref())
	h.bitmaps[ref] = bitmapData{w: 32, h: 32}
	return ref, nil
}

func (h *Host) FreeBitmap(b host.BitmapRef) { delete(h.bitmaps, b) }
func (h *Host) BitmapSize(b host.BitmapRef) (w, hgt int32) {
	d := h.bitmaps[b]
	return d.w, d.h
}
func (h *Host) ClearBitmap(b host.BitmapRef, bg host.Color) {
	d := h.bitmaps[b]
	d.bg = bg
	h.bitmaps[b] = d
}
func (h *Host) DrawBitmap(b host.BitmapRef, x, y int32, flip host.BitmapFlip) {}

func (h *Host) SetDrawMode(m host.BitmapDrawMode) {}
func (h *Host) FillRect(x, y, w, hgt int32, c host.Color) {}
func (h *Host) MarkUpdatedRows(start, end int32) {}

// --- host.Sound ---

func (h *Host) NewFilePlayer() host.SourceRef {
	ref := host.SourceRef(h.ref())
	h.sources[ref] = &sourceData{volL: 1, volR: 1}
	return ref
}

func (h *Host) LoadIntoFilePlayer(p host.SourceRef, path string) error {
	return h.loadSource(p, path)
}

func (h *Host) NewSamplePlayer() host.SourceRef { return h.NewFilePlayer() }

func (h *Host) LoadIntoSamplePlayer(p host.SourceRef, path string) error {
	return h.loadSource(p, path)
}

func (h *Host) loadSource(p host.SourceRef, path string) error {
	if _, ok := h.files[path]; !ok {
		return fmt.Errorf("audio %q: no such file", path)
	}
	h.sources[p].path = path
	h.sources[p].lenS = 1.5
	return nil
}

func (h *Host) PlaySource(p host.SourceRef, repeat int32) error {
	s, ok := h.sources[p]
	if !ok || s.path == "" {
		return fmt.Errorf("source: nothing loaded")
	}
	s.playing = true
	return nil
}

func (h *Host) StopSource(p host.SourceRef) { h.sources[p].playing = false }
func (h *Host) SourceLenSeconds(p host.SourceRef) float32 { return h.sources[p].lenS }
func (h *Host) SetSourceVolume(p host.SourceRef, l, r float32) {
	h.sources[p].volL, h.sources[p].volR = l, r
}
func (h *Host) SetFinishCallback(p host.SourceRef, fn host.SourceCompletionFunc) {
	h.sources[p].finish = fn
}
func (h *Host) FreeSource(p host.SourceRef) { delete(h.sources, p) }

func (h *Host) LoadSequence(path string) (host.SequenceRef, error) {
	if _, ok := h.files[path]; !ok {
		return 0, fmt.Errorf("sequence %q: no such file", path)
	}
	ref := host.SequenceRef(h.ref())
	h.sequences[ref] = &sequenceData{path: path, tempo: 120, tracks: 1}
	return ref, nil
}

func (h *Host) PlaySequence(s host.SequenceRef, fn host.SequenceFinishedFunc) {
	q := h.sequences[s]
	q.playing = true
	q.finish = fn
}

func (h *Host) StopSequence(s host.SequenceRef) { h.sequences[s].playing = false }
func (h *Host) SequenceTempo(s host.SequenceRef) float32 { return h.sequences[s].tempo }
func (h *Host) SetSequenceTempo(s host.SequenceRef, t float32) { h.sequences[s].tempo = t }
func (h *Host) SequenceTrackCount(s host.SequenceRef) int32 { return h.sequences[s].tracks }
func (h *Host) FreeSequence(s host.SequenceRef) { delete(h.sequences, s) }

func (h *Host) SetHeadphoneChangeCallback(fn host.HeadphoneChangeFunc) { h.headphoneFn = fn }

// --- host.File ---

func (h *Host) Open(path string, mode host.OpenMode) (host.FileRef, error) {
	switch mode {
	case host.ModeRead, host.ModeReadData:
		if _, ok := h.files[path]; !ok {
			return 0, fmt.Errorf("open %q: no such file", path)
		}
	case host.ModeWrite:
		h.files[path] = nil
	case host.ModeAppend:
		if _, ok := h.files[path]; !ok {
			h.files[path] = nil
		}
	}
	ref := host.FileRef(h.ref())
	f := &openFile{path: path, mode: mode}
	if mode == host.ModeAppend {
		f.pos = int64(len(h.files[path]))
	}
	h.open[ref] = f
	return ref, nil
}

func (h *Host) Close(f host.FileRef) error {
	if _, ok := h.open[f]; !ok {
		return fmt.Errorf("close: not open")
	}
	delete(h.open, f)
	return nil
}

func (h *Host) Read(f host.FileRef, p []byte) (int, error) {
	of, ok := h.open[f]
	if !ok {
		return 0, fmt.Errorf("read: not open")
	}
	data := h.files[of.path]
	if of.pos >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[of.pos:])
	of.pos += int64(n)
	return n, nil
}

func (h *Host) Write(f host.FileRef, p []byte) (int, error) {
	of, ok := h.open[f]
	if !ok {
		return 0, fmt.Errorf("write: not open")
	}
	if of.mode != host.ModeWrite && of.mode != host.ModeAppend {
		return 0, fmt.Errorf("write %q: opened read-only", of.path)
	}
	data := h.files[of.path]
	for int64(len(data)) < of.pos {
		data = append(data, 0)
	}
	data = append(data[:of.pos], p...)
	h.files[of.path] = data
	of.pos += int64(len(p))
	return len(p), nil
}

func (h *Host) Seek(f host.FileRef, offset int64, whence int) (int64, error) {
	of, ok := h.open[f]
	if !ok {
		return 0, fmt.Errorf("seek: not open")
	}
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = of.pos
	case io.SeekEnd:
		base = int64(len(h.files[of.path]))
	default:
		return 0, fmt.Errorf("seek: bad whence %d", whence)
	}
	if base+offset < 0 {
		return 0, fmt.Errorf("seek: negative position")
	}
	of.pos = base + offset
	return of.pos, nil
}

func (h *Host) Stat(path string) (host.FileStat, error) {
	if h.dirs[path] {
		return host.FileStat{IsDir: true}, nil
	}
	data, ok := h.files[path]
	if !ok {
		return host.FileStat{}, fmt.Errorf("stat %q: no such file", path)
	}
	return host.FileStat{Size: uint32(len(data))}, nil
}

func (h *Host) Mkdir(path string) error {
	h.dirs[path] = true
	return nil
}

func (h *Host) Rename(from, to string) error {
	data, ok := h.files[from]
	if !ok {
		return fmt.Errorf("rename %q: no such file", from)
	}
	delete(h.files, from)
	h.files[to] = data
	return nil
}

func (h *Host) Delete(path string, recursive bool) error {
	if h.dirs[path] {
		if !recursive {
			return fmt.Errorf("delete %q: is a directory", path)
		}
		delete(h.dirs, path)
		return nil
	}
	if _, ok := h.files[path]; !ok {
		return fmt.Errorf("delete %q: no such file", path)
	}
	delete(h.files, path)
	return nil
}

func (h *Host) List(path string) ([]string, error) {
	var names []string
	prefix := path
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	for name := range h.files {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name[len(prefix):])
		}
	}
	return names, nil
}

// --- host.Display ---

func (h *Host) Width() int32 { return h.width / int32(h.scale) }
func (h *Host) Height() int32 { return h.height / int32(h.scale) }
func (h *Host) SetRefreshRate(fps float32) { h.refreshRate = fps }
func (h *Host) SetScale(s uint32) { h.scale = s }
func (h *Host) SetInverted(inverted bool) { h.inverted = inverted }
func (h *Host) SetMosaic(x, y uint32) {}
func (h *Host) SetFlipped(x, y bool) {}
func (h *Host) SetOffset(dx, dy int32) {}

var (
	_ host.System   = (*Host)(nil)
	_ host.Graphics = (*Host)(nil)
	_ host.Sound    = (*Host)(nil)
	_ host.File     = (*Host)(nil)
	_ host.Display  = (*Host)(nil)
)
