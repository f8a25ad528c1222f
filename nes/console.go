package nes

import "io"

// Console wires the cartridge, bus, CPU, PPU, APU and controller into a
// single owner. Components never reach back into it; the bus mediates
// every cross-component access.
type Console struct {
	CPU        *CPU
	PPU        *PPU
	APU        *APU
	Bus        *Bus
	Controller *Controller
	Card       *Cartridge

	hooks Hooks
}

// NewConsole builds a console from an iNES image. hooks may be nil.
func NewConsole(rom []byte, hooks Hooks) (*Console, error) {
	if hooks == nil {
		hooks = NopHooks{}
	}
	card, err := ParseINES(rom)
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapper(card)
	if err != nil {
		return nil, err
	}

	ppu := NewPPU(hooks)
	apu := NewAPU()
	pad := NewController()
	bus := NewBus(card, mapper, ppu, apu, pad, hooks)
	cpu := NewCPU(bus, hooks)
	apu.SetDMCReader(bus.Peek)

	console := &Console{
		CPU:        cpu,
		PPU:        ppu,
		APU:        apu,
		Bus:        bus,
		Controller: pad,
		Card:       card,
		hooks:      hooks,
	}
	console.Reset()
	return console, nil
}

// Reset brings the CPU and PPU to power-on state. The CPU reads the
// reset vector through the bus, so the PPU moves six dots.
func (console *Console) Reset() {
	console.PPU.Reset()
	console.CPU.Reset()
}

// StepInstruction runs one CPU instruction (the PPU follows behind the
// bus) and returns the cycles it took.
func (console *Console) StepInstruction() (int, error) {
	return console.CPU.Step()
}

// StepDot advances the PPU by a single dot without touching the CPU.
func (console *Console) StepDot() {
	if console.PPU.Step(console.Bus) {
		console.CPU.toNMI = true
	}
}

// StepFrame runs instructions until the PPU finishes the current frame.
func (console *Console) StepFrame() error {
	frame := console.PPU.Frame
	for frame == console.PPU.Frame {
		if _, err := console.StepInstruction(); err != nil {
			return err
		}
	}
	return nil
}

// StepSeconds runs the emulated clock forward by wall time.
func (console *Console) StepSeconds(seconds float64) error {
	cycles := int64(CPUFrequency * seconds)
	for cycles > 0 {
		n, err := console.StepInstruction()
		if err != nil {
			return err
		}
		cycles -= int64(n)
	}
	return nil
}

// SetAudioOutput routes APU samples to fn at the given sample rate.
func (console *Console) SetAudioOutput(sampleRate float64, fn func(float32)) {
	console.APU.SetOutput(sampleRate, fn)
}

// DumpMemory hex dumps [start, end) of the CPU address space without
// disturbing it.
func (console *Console) DumpMemory(w io.Writer, start, end uint16) error {
	data := make([]byte, 0, int(end)-int(start))
	for addr := uint32(start); addr < uint32(end); addr++ {
		data = append(data, console.Bus.Peek(uint16(addr)))
	}
	return HexDump(w, start, data)
}
