package nes

import (
	"fmt"
	"io"
)

// The automation entry point and line count of the nestest ROM.
const (
	NestestEntry = 0xC000
	NestestLines = 8991
)

type nestestLogger struct {
	NopHooks
	w   io.Writer
	n   int
	err error
}

func (l *nestestLogger) CPUStep(s *CPUState) {
	l.n++
	_, err := fmt.Fprintf(l.w, "%d %04x %02x %s %02x %02x %02x %02x %02x %d\n",
		l.n, s.PC, s.Opcode, s.Mnemonic, s.A, s.X, s.Y, s.P, s.SP, s.Cycles)
	if err != nil && l.err == nil {
		l.err = err
	}
}

// NestestRun executes the nestest ROM in automation mode: PC forced to
// $C000, the cycle counter preloaded to 7, one log line per instruction
// written to w. It stops after limit instructions (NestestLines when
// limit <= 0) or at the first illegal opcode, whichever comes first, and
// returns the number of lines written.
func NestestRun(rom []byte, w io.Writer, limit int) (int, error) {
	if limit <= 0 {
		limit = NestestLines
	}
	logger := &nestestLogger{w: w}
	console, err := NewConsole(rom, logger)
	if err != nil {
		return 0, err
	}
	console.PPU.Reset()
	console.CPU.ResetToPC(NestestEntry)
	for logger.n < limit {
		if _, err := console.StepInstruction(); err != nil {
			return logger.n, err
		}
		if logger.err != nil {
			return logger.n, logger.err
		}
	}
	return logger.n, nil
}
