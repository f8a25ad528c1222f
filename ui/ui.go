package ui

import (
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"

	"nesgo/nes"
)

// J/K = A/B, U/I = Select/Start, WSAD = directions.
func keyMask(ev *fyne.KeyEvent) byte {
	switch ev.Name {
	case "J":
		return nes.ButtonA
	case "K":
		return nes.ButtonB
	case "U":
		return nes.ButtonSelect
	case "I":
		return nes.ButtonStart
	case "W":
		return nes.ButtonUp
	case "S":
		return nes.ButtonDown
	case "A":
		return nes.ButtonLeft
	case "D":
		return nes.ButtonRight
	}
	return 0
}

// OpenWindow shows the emulator window and runs the console until the
// window closes.
func OpenWindow(console *nes.Console, screen *Screen, scale int) {
	myApp := app.New()
	w := myApp.NewWindow("nesgo")
	w.Resize(fyne.NewSize(256*scale+4, 240*scale+4))

	go RunView(console)

	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if mask := keyMask(ev); mask != 0 {
				screen.SetButton(mask, true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if mask := keyMask(ev); mask != 0 {
				screen.SetButton(mask, false)
			}
		})
	}

	go refresh(w.Canvas(), screen, scale)

	w.ShowAndRun()
}

func refresh(can fyne.Canvas, screen *Screen, scale int) {
	for {
		// close to 60fps
		time.Sleep(time.Millisecond * 20)
		img := canvas.NewImageFromImage(screen.Frame(scale))
		can.SetContent(img)
	}
}
