package nes

import (
	"bytes"
	"errors"
	"testing"
)

// testROM builds a minimal NROM image: code placed at $C000, reset
// vector pointing at it.
func testROM(code []byte) []byte {
	return buildROM(code, 1, 1, 0, 0)
}

func buildROM(code []byte, prgBanks, chrBanks, flags6, flags7 byte) []byte {
	header := make([]byte, inesHeaderSize)
	copy(header, inesSignature[:])
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = flags6
	header[7] = flags7

	rom := header
	if flags6&0x04 != 0 {
		trainer := make([]byte, 512)
		for i := range trainer {
			trainer[i] = byte(i)
		}
		rom = append(rom, trainer...)
	}

	prg := make([]byte, int(prgBanks)*0x4000)
	copy(prg, code)
	if len(prg) >= 0x4000 {
		prg[len(prg)-4] = 0x00 // reset vector = $C000
		prg[len(prg)-3] = 0xC0
	}
	rom = append(rom, prg...)
	return append(rom, make([]byte, int(chrBanks)*0x2000)...)
}

func TestParseINESErrors(t *testing.T) {
	tests := []struct {
		name string
		rom  []byte
		want error
	}{
		{"too short", []byte("NES"), &TruncatedROM{}},
		{"bad signature", buildROM(nil, 1, 1, 0, 0)[1:], &BadSignature{}},
		{"nes 2.0", buildROM(nil, 1, 1, 0, 0x08), ErrNES2},
		{"truncated prg", buildROM(nil, 1, 1, 0, 0)[:0x2000], &TruncatedROM{}},
		{"truncated trainer", buildROM(nil, 1, 1, 0x04, 0)[:0x100], &TruncatedROM{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseINES(tt.rom)
			if err == nil {
				t.Fatal("no error")
			}
			switch want := tt.want.(type) {
			case *TruncatedROM:
				var e *TruncatedROM
				if !errors.As(err, &e) {
					t.Errorf("err = %v, want TruncatedROM", err)
				}
			case *BadSignature:
				var e *BadSignature
				if !errors.As(err, &e) {
					t.Errorf("err = %v, want BadSignature", err)
				}
			default:
				if !errors.Is(err, want) {
					t.Errorf("err = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestParseINESCHRRAM(t *testing.T) {
	card, err := ParseINES(buildROM(nil, 1, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !card.CHRRAM {
		t.Error("zero CHR banks must mean CHR RAM")
	}
	if len(card.CHR) != 0x2000 {
		t.Errorf("CHR RAM size = %d, want 8KiB", len(card.CHR))
	}
}

func TestParseINESMirror(t *testing.T) {
	tests := []struct {
		flags6 byte
		want   byte
	}{
		{0x00, MirrorHorizontal},
		{0x01, MirrorVertical},
		{0x08, MirrorFour},
		{0x09, MirrorFour},
	}
	for _, tt := range tests {
		card, err := ParseINES(buildROM(nil, 1, 1, tt.flags6, 0))
		if err != nil {
			t.Fatal(err)
		}
		if card.Mirror != tt.want {
			t.Errorf("flags6 %02x: mirror = %d, want %d", tt.flags6, card.Mirror, tt.want)
		}
	}
}

func TestNewMapperRejects(t *testing.T) {
	if _, err := NewConsole(buildROM(nil, 1, 1, 0x10, 0), nil); err == nil {
		t.Error("mapper 1 accepted")
	} else {
		var e *MapperUnsupported
		if !errors.As(err, &e) || e.Mapper != 1 {
			t.Errorf("err = %v, want MapperUnsupported{1}", err)
		}
	}

	if _, err := NewConsole(buildROM(nil, 3, 1, 0, 0), nil); err == nil {
		t.Error("3 PRG banks accepted")
	} else {
		var e *BadPRGROMSize
		if !errors.As(err, &e) {
			t.Errorf("err = %v, want BadPRGROMSize", err)
		}
	}

	if _, err := NewConsole(buildROM(nil, 1, 2, 0, 0), nil); err == nil {
		t.Error("2 CHR banks accepted")
	} else {
		var e *BadCHRROMSize
		if !errors.As(err, &e) {
			t.Errorf("err = %v, want BadCHRROMSize", err)
		}
	}
}

func TestPRGMirroring(t *testing.T) {
	code := []byte{0xDE, 0xAD}
	console, err := NewConsole(testROM(code), nil)
	if err != nil {
		t.Fatal(err)
	}
	if console.Bus.Peek(0x8000) != 0xDE || console.Bus.Peek(0xC000) != 0xDE {
		t.Error("16KiB bank not visible at both $8000 and $C000")
	}

	// two banks fill the space without mirroring
	big := make([]byte, 0x8000)
	big[0] = 0x11
	big[0x4000] = 0x22
	console, err = NewConsole(buildROM(big, 2, 1, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if console.Bus.Peek(0x8000) != 0x11 || console.Bus.Peek(0xC000) != 0x22 {
		t.Error("32KiB PRG mapped wrong")
	}
}

func TestRAMMirroring(t *testing.T) {
	rec := &cycleRecorder{}
	console, err := NewConsole(testROM(nil), rec)
	if err != nil {
		t.Fatal(err)
	}
	bus := console.Bus
	bus.ram[0x234] = 0x77
	rec.cycles = nil

	var nmi bool
	for _, addr := range []uint16{0x0234, 0x0A34, 0x1234, 0x1A34} {
		if got := bus.Fetch(addr, &nmi); got != 0x77 {
			t.Errorf("Fetch(%04x) = %02x, want 77", addr, got)
		}
	}
	// the trace carries the effective address, not the CPU one
	for i, cy := range rec.cycles {
		if cy.Addr != 0x0234 {
			t.Errorf("trace %d: addr = %04x, want 0234", i, cy.Addr)
		}
	}
}

func TestRegisterMirrorReadback(t *testing.T) {
	console, err := NewConsole(testROM(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	bus := console.Bus
	var nmi, dma bool

	// $3456 and $2EFE both decode to $2006
	bus.Store(0x3456, 0x33, &nmi, &dma)
	bus.Store(0x2EFE, 0x44, &nmi, &dma)
	if console.PPU.v != 0x3344 {
		t.Errorf("v = %04x, want 3344 after PPUADDR writes through mirrors", console.PPU.v)
	}

	// $3FF8 decodes to $2000
	bus.Store(0x3FF8, 0x03, &nmi, &dma)
	if console.PPU.Ctrl != 0x03 {
		t.Errorf("Ctrl = %02x, want 03", console.PPU.Ctrl)
	}

	// a status read through a mirror ($3FFA -> $2002) resets the toggle
	bus.Store(0x2006, 0x21, &nmi, &dma)
	bus.Fetch(0x3FFA, &nmi)
	bus.Store(0x2006, 0x21, &nmi, &dma)
	bus.Store(0x2006, 0x08, &nmi, &dma)
	if console.PPU.v != 0x2108 {
		t.Errorf("v = %04x, want 2108 after a mirrored status read", console.PPU.v)
	}
}

func TestNametableMirroring(t *testing.T) {
	tests := []struct {
		name   string
		flags6 byte
		same   [2]uint16
		diff   [2]uint16
	}{
		{"horizontal", 0x00, [2]uint16{0x2000, 0x2400}, [2]uint16{0x2000, 0x2800}},
		{"vertical", 0x01, [2]uint16{0x2000, 0x2800}, [2]uint16{0x2000, 0x2400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console, err := NewConsole(buildROM(nil, 1, 1, tt.flags6, 0), nil)
			if err != nil {
				t.Fatal(err)
			}
			bus := console.Bus
			bus.VWrite(tt.same[0], 0xAB)
			if bus.VRead(tt.same[1]) != 0xAB {
				t.Errorf("%04x and %04x not mirrored", tt.same[0], tt.same[1])
			}
			bus.VWrite(tt.diff[0], 0x11)
			bus.VWrite(tt.diff[1], 0x22)
			if bus.VRead(tt.diff[0]) != 0x11 {
				t.Errorf("%04x and %04x share storage", tt.diff[0], tt.diff[1])
			}
		})
	}
}

func TestPaletteMirroring(t *testing.T) {
	console, err := NewConsole(testROM(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	bus := console.Bus
	bus.VWrite(0x3F10, 0x2A)
	if bus.VRead(0x3F00) != 0x2A {
		t.Error("$3F10 does not mirror $3F00")
	}
	bus.VWrite(0x3F04, 0x15)
	if bus.VRead(0x3F04) != 0x15 || bus.VRead(0x3F14) != 0x15 {
		t.Error("$3F14 does not mirror $3F04")
	}
	bus.VWrite(0x3F01, 0x0C)
	if bus.VRead(0x3F11) == 0x0C {
		t.Error("$3F11 must not mirror $3F01")
	}
}

func TestTrainerAt7000(t *testing.T) {
	console, err := NewConsole(buildROM(nil, 1, 1, 0x04, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint16(0); i < 4; i++ {
		if got := console.Bus.Peek(0x7000 + i); got != byte(i) {
			t.Errorf("Peek(%04x) = %02x, want %02x", 0x7000+i, got, byte(i))
		}
	}
}

func TestCHRRAMWritable(t *testing.T) {
	console, err := NewConsole(buildROM(nil, 1, 0, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	console.Bus.VWrite(0x1000, 0x5A)
	if console.Bus.VRead(0x1000) != 0x5A {
		t.Error("CHR RAM not writable")
	}

	console, err = NewConsole(testROM(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	console.Bus.VWrite(0x1000, 0x5A)
	if console.Bus.VRead(0x1000) == 0x5A {
		t.Error("CHR ROM writable")
	}
}

type padHooks struct {
	NopHooks
	buttons byte
}

func (h *padHooks) Buttons() byte { return h.buttons }

func TestControllerSerial(t *testing.T) {
	hooks := &padHooks{buttons: 0xB5}
	pad := NewController()

	pad.Write(1, hooks)
	// strobe high: always the snapshotted A button
	for i := 0; i < 3; i++ {
		if pad.Read() != 1 {
			t.Fatal("parallel read lost the A button")
		}
	}

	pad.Write(0, hooks)
	var got byte
	for i := 0; i < 8; i++ {
		got |= pad.Read() << i
	}
	if got != 0xB5 {
		t.Errorf("shifted out %02x, want b5", got)
	}
	if pad.Read() != 0 {
		t.Error("ninth serial read not zero")
	}
}

func TestOAMDMA(t *testing.T) {
	// LDA #$02, STA $4014
	console, err := NewConsole(testROM([]byte{0xA9, 0x02, 0x8D, 0x14, 0x40}), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 256; i++ {
		console.Bus.ram[0x200+i] = byte(255 - i)
	}

	if _, err := console.StepInstruction(); err != nil {
		t.Fatal(err)
	}
	n, err := console.StepInstruction()
	if err != nil {
		t.Fatal(err)
	}
	// 4 for the store plus 514: the transfer starts on an even cycle
	// here, so both alignment reads happen
	if n != 4+514 {
		t.Errorf("STA $4014 took %d cycles, want %d", n, 4+514)
	}
	for i := 0; i < 256; i++ {
		if console.PPU.oam[i] != byte(255-i) {
			t.Fatalf("oam[%d] = %02x, want %02x", i, console.PPU.oam[i], byte(255-i))
		}
	}
}

func TestPeekPPURange(t *testing.T) {
	console, err := NewConsole(testROM(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	bus := console.Bus
	var nmi, dma bool
	bus.Store(0x2001, 0x5B, &nmi, &dma)

	// the register range peeks as the open bus latch, not IO stub bytes
	for _, addr := range []uint16{0x2000, 0x2002, 0x2007, 0x3FFF} {
		if got := bus.Peek(addr); got != 0x5B {
			t.Errorf("Peek(%04x) = %02x, want 5b", addr, got)
		}
	}
	// peeking must not touch the register state
	if console.PPU.Status&statusVBlank == 0 {
		t.Error("Peek cleared the VBlank flag")
	}
}

func TestHexDump(t *testing.T) {
	var buf bytes.Buffer
	if err := HexDump(&buf, 0x0700, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatal(err)
	}
	want := "0700: de ad be ef\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
