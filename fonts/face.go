// Package fonts loads Playdate .fnt assets into font faces usable with the
// display module's text writers, the inverse of the fnt tool. Host-side code
// (asset pipelines, previews, tests) can lay out text exactly the way the
// device will.
package fonts

import (
	"fmt"
	"image"

	"github.com/embeddedgo/display/font/subfont"
)

// Face is a font face backed by a Playdate glyph table. The embedded
// subfont.Face implements the display module's font.Face, so loaded fonts
// drop into its text writers directly.
type Face struct {
	subfont.Face
	// Tracking is the extra spacing between glyphs from the metrics file.
	// The face's advances already include it.
	Tracking int
}

// Load builds a Face from a .fnt metrics file and its glyph table image.
// The cell size comes from the table file's name; ascent is the baseline
// offset from the cell top used when the table was rendered.
func Load(metrics []byte, table image.Image, cellW, cellH, ascent int) (*Face, error) {
	tracking, glyphs, err := parseMetrics(metrics)
	if err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("fonts: metrics list no glyphs")
	}

	data, err := newGlyphTable(table, cellW, cellH, ascent, tracking, glyphs)
	if err != nil {
		return nil, err
	}

	first := glyphs[0].r
	last := glyphs[len(glyphs)-1].r
	return &Face{
		Face: subfont.Face{
			Height: int16(cellH),
			Ascent: int16(ascent),
			Subfonts: []*subfont.Subfont{
				{First: first, Last: last, Data: data},
			},
		},
		Tracking: tracking,
	}, nil
}
