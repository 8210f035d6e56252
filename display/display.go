// Package display wraps the host's display configuration table.
package display

import "github.com/pdxgo/playdate/host"

// Display is the display API surface. One instance exists per process.
type Display struct {
	h host.Display
}

func New(h host.Display) *Display {
	return &Display{h: h}
}

// Width returns the framebuffer width in pixels at the current scale.
func (d *Display) Width() int32 {
	return d.h.Width()
}

// Height returns the framebuffer height in pixels at the current scale.
func (d *Display) Height() int32 {
	return d.h.Height()
}

// SetRefreshRate caps how often the host invokes the update callback, in
// frames per second. Zero means "as fast as possible".
func (d *Display) SetRefreshRate(fps float32) {
	d.h.SetRefreshRate(fps)
}

// SetScale sets the display scale factor; valid values are 1, 2, 4 and 8.
func (d *Display) SetScale(s uint32) {
	switch s {
	case 1, 2, 4, 8:
	default:
		panic("display: scale must be 1, 2, 4 or 8")
	}
	d.h.SetScale(s)
}

// SetInverted flips black and white on the display.
func (d *Display) SetInverted(inverted bool) {
	d.h.SetInverted(inverted)
}

// SetMosaic sets a mosaic (pixelation) effect; x and y are in [0, 3].
func (d *Display) SetMosaic(x, y uint32) {
	if x > 3 || y > 3 {
		panic("display: mosaic values must be in [0, 3]")
	}
	d.h.SetMosaic(x, y)
}

// SetFlipped mirrors the display on either axis.
func (d *Display) SetFlipped(x, y bool) {
	d.h.SetFlipped(x, y)
}

// SetOffset shifts the framebuffer's origin on the physical display.
func (d *Display) SetOffset(dx, dy int32) {
	d.h.SetOffset(dx, dy)
}
