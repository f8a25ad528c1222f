package ui

import (
	"log"
	"time"

	"nesgo/nes"
)

// RunView drives the console off the wall clock.
func RunView(console *nes.Console) {
	last := time.Now()
	for {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if dt > 0.25 {
			dt = 0.25
		}
		if err := console.StepSeconds(dt); err != nil {
			log.Printf("emulation stopped: %v", err)
			return
		}
	}
}
