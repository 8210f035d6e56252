// Package graphics wraps the host's drawing table: bitmaps, fonts, the
// framebuffer stencil and the immediate drawing operations. Rendering itself
// happens host-side; these types track ownership and device state.
package graphics

import "github.com/pdxgo/playdate/host"

// Graphics is the drawing API surface. One instance exists per process,
// created at init. The generation counters back the ActiveFont and Stencil
// sentinels; see those types.
type Graphics struct {
	h          host.Graphics
	fontGen    uint64
	stencilGen uint64
}

func New(h host.Graphics) *Graphics {
	return &Graphics{h: h}
}

// Clear fills the whole framebuffer with c.
func (g *Graphics) Clear(c host.Color) {
	g.h.Clear(c)
}

// FillRect fills a rectangle with c in the current draw mode.
func (g *Graphics) FillRect(x, y, w, h int32, c host.Color) {
	g.h.FillRect(x, y, w, h, c)
}

// SetDrawMode changes how subsequent bitmap draws combine with the
// framebuffer.
func (g *Graphics) SetDrawMode(m host.BitmapDrawMode) {
	g.h.SetDrawMode(m)
}

// DrawText draws text at x, y with the active font and returns the drawn
// width in pixels.
func (g *Graphics) DrawText(text string, x, y int32) int32 {
	return g.h.DrawText(text, x, y)
}

// MarkUpdatedRows tells the host which framebuffer rows changed this frame,
// inclusive on both ends.
func (g *Graphics) MarkUpdatedRows(start, end int32) {
	g.h.MarkUpdatedRows(start, end)
}
