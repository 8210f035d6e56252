// Package fnt renders an x/image font face into a Playdate .fnt asset: a
// fixed-cell glyph table image plus a metrics file listing each glyph's
// advance.
package fnt

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	flags = flag.NewFlagSet("fnt", flag.ExitOnError)

	start    = flags.Uint("start", 0x20, "Unicode value of the first glyph")
	end      = flags.Uint("end", 0x7e, "Unicode value of the last glyph")
	tracking = flags.Int("tracking", 0, "extra pixels between drawn glyphs")
	outdir   = flags.String("o", "fonts", "output directory")
)

const usageString = `Font face to Playdate .fnt converter.

Usage: %s [flags] <name>

Renders the builtin face into <name>.fnt and <name>-table-<w>-<h>.png.

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "fnt")
	flags.PrintDefaults()
}

// columns is the glyph table's grid width; Playdate tables are conventionally
// 16 glyphs per row.
const columns = 16

// Glyph is one entry of the metrics file.
type Glyph struct {
	Rune    rune
	Advance int
}

// Font is a rendered glyph table plus its metrics.
type Font struct {
	// Table holds the glyphs in a columns-wide grid of CellW by CellH
	// cells, in rune order.
	Table        *image.Gray
	CellW, CellH int
	Ascent       int
	Tracking     int
	Glyphs       []Glyph
}

// Generate renders the runes first through last from face into a glyph
// table. Runes the face cannot render get an empty cell with zero advance.
func Generate(face font.Face, first, last rune, tracking int) (*Font, error) {
	if last < first {
		return nil, fmt.Errorf("fnt: empty rune range %d..%d", first, last)
	}

	m := face.Metrics()
	cellH := m.Height.Ceil()
	cellW := 0
	for r := first; r <= last; r++ {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > cellW {
			cellW = adv.Ceil()
		}
	}
	if cellW == 0 {
		return nil, fmt.Errorf("fnt: face renders none of %d..%d", first, last)
	}

	n := int(last-first) + 1
	rows := (n + columns - 1) / columns
	f := &Font{
		Table:    image.NewGray(image.Rect(0, 0, columns*cellW, rows*cellH)),
		CellW:    cellW,
		CellH:    cellH,
		Ascent:   m.Ascent.Ceil(),
		Tracking: tracking,
	}

	drawer := font.Drawer{Dst: f.Table, Src: image.White, Face: face}
	for i := 0; i < n; i++ {
		r := first + rune(i)
		cellX := (i % columns) * cellW
		cellY := (i / columns) * cellH

		adv, ok := face.GlyphAdvance(r)
		if !ok {
			f.Glyphs = append(f.Glyphs, Glyph{Rune: r})
			continue
		}
		drawer.Dot = fixed.P(cellX, cellY+f.Ascent)
		drawer.DrawString(string(r))
		f.Glyphs = append(f.Glyphs, Glyph{Rune: r, Advance: adv.Ceil()})
	}
	return f, nil
}

// TableName returns the glyph table's file name for a font called name; the
// cell size rides in the name, as the device's asset loader expects.
func (f *Font) TableName(name string) string {
	return fmt.Sprintf("%s-table-%d-%d.png", name, f.CellW, f.CellH)
}

// WriteMetrics writes the .fnt metrics file: the tracking header followed by
// one glyph line per table cell, in table order.
func (f *Font) WriteMetrics(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "tracking=%d\n\n", f.Tracking); err != nil {
		return err
	}
	for _, g := range f.Glyphs {
		name := string(g.Rune)
		if g.Rune == ' ' {
			name = "space"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\n", name, g.Advance); err != nil {
			return err
		}
	}
	return nil
}

// Write stores the font as name.fnt plus its table image under dir.
func (f *Font) Write(dir, name string) error {
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return err
	}

	table, err := os.Create(filepath.Join(dir, f.TableName(name)))
	if err != nil {
		return err
	}
	defer table.Close()
	if err := png.Encode(table, binarize(f.Table)); err != nil {
		return err
	}

	metrics, err := os.Create(filepath.Join(dir, name+".fnt"))
	if err != nil {
		return err
	}
	defer metrics.Close()
	return f.WriteMetrics(metrics)
}

// binarize thresholds antialiased coverage into the 1-bit pixels the device
// actually stores.
func binarize(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	for i, px := range dst.Pix {
		if px >= 0x80 {
			dst.Pix[i] = 0xff
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	name := flags.Arg(0)

	f, err := Generate(basicfont.Face7x13, rune(*start), rune(*end), *tracking)
	if err != nil {
		log.Fatalln(err)
	}
	if err := f.Write(*outdir, name); err != nil {
		log.Fatalln(err)
	}
}
