package ui

import (
	"image"
	"sync"

	fogleman "github.com/fogleman/nes/nes"

	"nesgo/nes"
)

// Screen is the console's hook surface for a graphical host: pixels go
// into a back buffer translated through the system palette, the buffers
// swap on the last visible dot, and the pad state follows the keyboard.
type Screen struct {
	nes.NopHooks

	mu      sync.Mutex
	front   *image.RGBA
	back    *image.RGBA
	buttons byte
}

func NewScreen() *Screen {
	return &Screen{
		front: image.NewRGBA(image.Rect(0, 0, 256, 240)),
		back:  image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}
}

func (s *Screen) PutPixel(x, y int, palette byte) {
	s.back.SetRGBA(x, y, fogleman.Palette[palette%64])
	if x == 255 && y == 239 {
		s.mu.Lock()
		s.front, s.back = s.back, s.front
		s.mu.Unlock()
	}
}

func (s *Screen) Buttons() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buttons
}

// SetButton is called from the window event goroutine.
func (s *Screen) SetButton(mask byte, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.buttons |= mask
	} else {
		s.buttons &^= mask
	}
}

// Frame returns a copy of the last completed frame, magnified.
func (s *Screen) Frame(factor int) image.Image {
	s.mu.Lock()
	src := s.front
	snap := image.NewRGBA(src.Rect)
	copy(snap.Pix, src.Pix)
	s.mu.Unlock()
	return Scale(snap, factor)
}
