package pdimage

import (
	"image"
	"image/color"
	"testing"
)

// gradient builds a horizontal black-to-white ramp.
func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

func TestConvertBlackAndWhite(t *testing.T) {
	dst, err := Convert(gradient(64, 16), 0, 0, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(dst.Palette) != 2 {
		t.Fatalf("palette size = %d", len(dst.Palette))
	}
	if dst.Bounds() != image.Rect(0, 0, 64, 16) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}

	// A dithered ramp must use both palette entries.
	seen := map[uint8]bool{}
	for _, px := range dst.Pix {
		seen[px] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("dithered output uses entries %v, want both", seen)
	}
}

func TestConvertScales(t *testing.T) {
	dst, err := Convert(gradient(64, 16), 32, 8, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if dst.Bounds() != image.Rect(0, 0, 32, 8) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
}

func TestConvertThresholdWithoutDither(t *testing.T) {
	dst, err := Convert(gradient(64, 16), 0, 0, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	// Hard threshold: left edge black, right edge white.
	if dst.ColorIndexAt(0, 0) == dst.ColorIndexAt(63, 0) {
		t.Error("threshold did not separate the ramp's ends")
	}
}

func TestConvertAdaptivePalette(t *testing.T) {
	dst, err := Convert(gradient(64, 16), 0, 0, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(dst.Palette) == 0 || len(dst.Palette) > 4 {
		t.Fatalf("palette size = %d, want 1..4", len(dst.Palette))
	}
}

func TestConvertRejectsTinyPalette(t *testing.T) {
	if _, err := Convert(gradient(8, 8), 0, 0, 1, false); err == nil {
		t.Fatal("palette of 1 did not fail")
	}
}
