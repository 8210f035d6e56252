package fonts

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/embeddedgo/display/font/subfont"
)

// columns is the grid width glyph tables are laid out with.
const columns = 16

type glyphMetric struct {
	r       rune
	advance int
}

// parseMetrics reads a .fnt metrics file: "key=value" headers followed by
// one "<glyph>\t<advance>" line per table cell, in table order. Glyph runes
// must form one contiguous range.
func parseMetrics(data []byte) (tracking int, glyphs []glyphMetric, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		// Glyph lines always carry a tab; anything else is a header. The tab
		// check matters for the '=' glyph, whose line also contains '='.
		name, adv, ok := strings.Cut(line, "\t")
		if !ok {
			k, v, isHeader := strings.Cut(line, "=")
			if !isHeader {
				return 0, nil, fmt.Errorf("fonts: bad glyph line %q", line)
			}
			if k == "tracking" {
				tracking, err = strconv.Atoi(v)
				if err != nil {
					return 0, nil, fmt.Errorf("fonts: bad tracking %q", v)
				}
			}
			// Unknown headers are allowed; the device ignores them too.
			continue
		}
		r, err := glyphRune(name)
		if err != nil {
			return 0, nil, err
		}
		advance, err := strconv.Atoi(strings.TrimSpace(adv))
		if err != nil {
			return 0, nil, fmt.Errorf("fonts: bad advance %q", line)
		}
		if n := len(glyphs); n > 0 && r != glyphs[n-1].r+1 {
			return 0, nil, fmt.Errorf("fonts: glyph %q out of order", name)
		}
		glyphs = append(glyphs, glyphMetric{r: r, advance: advance})
	}
	return tracking, glyphs, scanner.Err()
}

func glyphRune(name string) (rune, error) {
	if name == "space" {
		return ' ', nil
	}
	runes := []rune(name)
	if len(runes) != 1 {
		return 0, fmt.Errorf("fonts: bad glyph name %q", name)
	}
	return runes[0], nil
}

// glyphTable implements subfont.Data over a fixed-cell glyph table image.
type glyphTable struct {
	table interface {
		image.Image
		SubImage(image.Rectangle) image.Image
	}
	cellW, cellH int
	ascent       int
	advances     []int
}

func newGlyphTable(table image.Image, cellW, cellH, ascent, tracking int, glyphs []glyphMetric) (*glyphTable, error) {
	sub, ok := table.(interface {
		image.Image
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("fonts: table image type %T has no SubImage", table)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("fonts: bad cell size %dx%d", cellW, cellH)
	}

	rows := (len(glyphs) + columns - 1) / columns
	b := table.Bounds()
	if b.Dx() < columns*cellW || b.Dy() < rows*cellH {
		return nil, fmt.Errorf("fonts: table %v too small for %d cells of %dx%d",
			b, len(glyphs), cellW, cellH)
	}

	t := &glyphTable{table: sub, cellW: cellW, cellH: cellH, ascent: ascent}
	for _, g := range glyphs {
		adv := g.advance
		if adv > 0 {
			adv += tracking
		}
		t.advances = append(t.advances, adv)
	}
	return t, nil
}

func (t *glyphTable) cell(i int) image.Rectangle {
	min := t.table.Bounds().Min
	x := min.X + (i%columns)*t.cellW
	y := min.Y + (i/columns)*t.cellH
	return image.Rect(x, y, x+t.cellW, y+t.cellH)
}

// Advance implements subfont.Data.
func (t *glyphTable) Advance(i int) int {
	return t.advances[i]
}

// Glyph implements subfont.Data. The origin sits on the cell's baseline.
func (t *glyphTable) Glyph(i int) (img image.Image, origin image.Point, advance int) {
	r := t.cell(i)
	return t.table.SubImage(r), image.Pt(r.Min.X, r.Min.Y+t.ascent), t.advances[i]
}

var _ subfont.Data = (*glyphTable)(nil)
