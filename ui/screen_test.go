package ui

import (
	"image"
	"image/color"
	"testing"

	fogleman "github.com/fogleman/nes/nes"

	"nesgo/nes"
)

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 0xFF, A: 0xFF}
	src.SetRGBA(1, 0, red)

	out := Scale(src, 3)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Fatalf("scaled bounds = %v, want 6x6", out.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			if out.RGBAAt(x, y) != red {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, out.RGBAAt(x, y))
			}
		}
	}
	if out.RGBAAt(0, 0) == red {
		t.Error("top-left block took the wrong source pixel")
	}

	if Scale(src, 1) != src {
		t.Error("factor 1 must return the source unchanged")
	}
}

func TestScreenSwapsOnLastDot(t *testing.T) {
	s := NewScreen()
	s.PutPixel(0, 0, 1)

	// still on the back buffer
	if got := s.Frame(1).(*image.RGBA).RGBAAt(0, 0); got == fogleman.Palette[1] {
		t.Error("pixel visible before the frame completed")
	}

	s.PutPixel(255, 239, 2)
	front := s.Frame(1).(*image.RGBA)
	if front.RGBAAt(0, 0) != fogleman.Palette[1] {
		t.Error("pixel missing after the buffer swap")
	}
	if front.RGBAAt(255, 239) != fogleman.Palette[2] {
		t.Error("last dot missing after the buffer swap")
	}
}

func TestSetButton(t *testing.T) {
	s := NewScreen()
	s.SetButton(nes.ButtonA, true)
	s.SetButton(nes.ButtonStart, true)
	if s.Buttons() != nes.ButtonA|nes.ButtonStart {
		t.Errorf("buttons = %02x", s.Buttons())
	}
	s.SetButton(nes.ButtonA, false)
	if s.Buttons() != nes.ButtonStart {
		t.Errorf("buttons = %02x after release", s.Buttons())
	}
}
