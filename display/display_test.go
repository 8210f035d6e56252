package display_test

import (
	"testing"

	"github.com/pdxgo/playdate/display"
	pdtest "github.com/pdxgo/playdate/testing"
)

func TestDimensionsFollowScale(t *testing.T) {
	h := pdtest.NewHost()
	d := display.New(h)

	if d.Width() != 400 || d.Height() != 240 {
		t.Fatalf("unscaled = %dx%d", d.Width(), d.Height())
	}
	d.SetScale(2)
	if d.Width() != 200 || d.Height() != 120 {
		t.Fatalf("scaled = %dx%d", d.Width(), d.Height())
	}
}

func TestInvalidScalePanics(t *testing.T) {
	d := display.New(pdtest.NewHost())
	defer func() {
		if recover() == nil {
			t.Fatal("SetScale(3) did not panic")
		}
	}()
	d.SetScale(3)
}

func TestInvalidMosaicPanics(t *testing.T) {
	d := display.New(pdtest.NewHost())
	d.SetMosaic(3, 3)
	defer func() {
		if recover() == nil {
			t.Fatal("SetMosaic(4, 0) did not panic")
		}
	}()
	d.SetMosaic(4, 0)
}
