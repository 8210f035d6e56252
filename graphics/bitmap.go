package graphics

import "github.com/pdxgo/playdate/host"

// Bitmap is a host-owned pixel buffer.
type Bitmap struct {
	g   *Graphics
	ref host.BitmapRef
}

// NewBitmap allocates a w by h bitmap filled with bg.
func (g *Graphics) NewBitmap(w, h int32, bg host.Color) *Bitmap {
	return &Bitmap{g: g, ref: g.h.NewBitmap(w, h, bg)}
}

// LoadBitmap loads the image asset at path.
func (g *Graphics) LoadBitmap(path string) (*Bitmap, error) {
	ref, err := g.h.LoadBitmap(path)
	if err != nil {
		return nil, err
	}
	return &Bitmap{g: g, ref: ref}, nil
}

// Size returns the bitmap's dimensions in pixels.
func (b *Bitmap) Size() (w, h int32) {
	return b.g.h.BitmapSize(b.ref)
}

// Clear fills the bitmap with bg.
func (b *Bitmap) Clear(bg host.Color) {
	b.g.h.ClearBitmap(b.ref, bg)
}

// Draw draws the bitmap into the framebuffer at x, y.
func (b *Bitmap) Draw(x, y int32, flip host.BitmapFlip) {
	b.g.h.DrawBitmap(b.ref, x, y, flip)
}

// Close frees the host-side buffer. The bitmap must not be in use as the
// stencil.
func (b *Bitmap) Close() {
	if b.ref == 0 {
		return
	}
	b.g.h.FreeBitmap(b.ref)
	b.ref = 0
}

// Stencil marks a bitmap as the framebuffer stencil: drawing is masked by
// its pixels until the stencil is changed again or the sentinel is closed.
type Stencil struct {
	g          *Graphics
	generation uint64
	bitmap     *Bitmap
}

// SetStencil installs b as the framebuffer stencil and returns the sentinel
// guarding that state.
func (g *Graphics) SetStencil(b *Bitmap) *Stencil {
	g.stencilGen++
	g.h.SetStencil(b.ref)
	return &Stencil{g: g, generation: g.stencilGen, bitmap: b}
}

// Bitmap returns the bitmap this sentinel installed.
func (s *Stencil) Bitmap() *Bitmap {
	return s.bitmap
}

// Close clears the stencil, unless a later SetStencil superseded this
// sentinel (same rule as ActiveFont.Close).
func (s *Stencil) Close() {
	if s.generation == s.g.stencilGen {
		s.g.h.SetStencil(0)
	}
}
