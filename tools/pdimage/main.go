// Package pdimage converts images into the 1-bit form the Playdate display
// can show, with optional scaling and error diffusion. A multi-tone mode
// exists for previewing how an asset survives quantization before committing
// to black and white.
package pdimage

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"
)

var (
	flags = flag.NewFlagSet("image", flag.ExitOnError)

	dither = flags.Bool("dither", true, "enable Floyd-Steinberg error diffusion")
	width  = flags.Int("width", 0, "output width, 0 keeps the source width")
	height = flags.Int("height", 0, "output height, 0 keeps the source height")
	colors = flags.Int("colors", 2, "palette size; 2 is pure black and white")
)

const usageString = `Image to Playdate 1-bit image converter.

Usage: %s [flags] <image>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "image")
	flags.PrintDefaults()
}

// Convert renders src into a paletted image. A size of 0 keeps the source
// dimension. With colors == 2 the palette is black and white; larger values
// derive an adaptive palette from the source.
func Convert(src image.Image, width, height, colors int, dither bool) (*image.Paletted, error) {
	if colors < 2 {
		return nil, fmt.Errorf("image: palette needs at least 2 colors")
	}

	b := src.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	if width != b.Dx() || height != b.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, xdraw.Over, nil)
		src = scaled
	}

	var palette color.Palette
	if colors == 2 {
		palette = color.Palette{color.Black, color.White}
	} else {
		q := quantize.MedianCutQuantizer{}
		palette = q.Quantize(make([]color.Color, 0, colors), src)
	}

	dst := image.NewPaletted(image.Rect(0, 0, width, height), palette)
	var d draw.Drawer = draw.Src
	if dither {
		d = draw.FloydSteinberg
	}
	d.Draw(dst, dst.Bounds(), src, src.Bounds().Min)
	return dst, nil
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	imagefile := flags.Arg(0)

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()
	src, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	dst, err := Convert(src, *width, *height, *colors, *dither)
	if err != nil {
		log.Fatalln(err)
	}

	outfile := strings.TrimSuffix(imagefile, filepath.Ext(imagefile)) + "-pd.png"
	w, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer w.Close()
	if err := png.Encode(w, dst); err != nil {
		log.Fatalln(err)
	}
}
