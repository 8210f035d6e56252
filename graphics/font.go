package graphics

import "github.com/pdxgo/playdate/host"

// Font is a font loaded from the game's pdx image.
type Font struct {
	g   *Graphics
	ref host.FontRef
}

// LoadFont loads the .fnt asset at path.
func (g *Graphics) LoadFont(path string) (*Font, error) {
	ref, err := g.h.LoadFont(path)
	if err != nil {
		return nil, err
	}
	return &Font{g: g, ref: ref}, nil
}

// Height returns the font's line height in pixels.
func (f *Font) Height() int32 {
	return f.g.h.FontHeight(f.ref)
}

// TextWidth returns the drawn width of text in this font.
func (f *Font) TextWidth(text string) int32 {
	return f.g.h.TextWidth(f.ref, text)
}

// ActiveFont marks a font as the font used by DrawText. Closing it unsets
// the font again, unless a later SetFont has superseded this one.
type ActiveFont struct {
	g          *Graphics
	generation uint64
	font       *Font
}

// SetFont makes f the active font and returns the sentinel guarding that
// state. Each call supersedes all earlier sentinels of this class.
func (g *Graphics) SetFont(f *Font) *ActiveFont {
	g.fontGen++
	g.h.SetFont(f.ref)
	return &ActiveFont{g: g, generation: g.fontGen, font: f}
}

// Font returns the font this sentinel set.
func (a *ActiveFont) Font() *Font {
	return a.font
}

// Close unsets the active font. The generation tag keeps an out-of-order
// close from clobbering a font that a later SetFont call now owns: if any
// sentinel was constructed after this one, Close does nothing.
func (a *ActiveFont) Close() {
	if a.generation == a.g.fontGen {
		a.g.h.SetFont(0)
	}
}
