package nes

// RAMEntry is one address/value pair of a flat memory image.
type RAMEntry struct {
	Addr  uint16
	Value byte
}

// HarteState describes the CPU before or after a single-step test case.
type HarteState struct {
	PC  uint16
	SP  byte
	A   byte
	X   byte
	Y   byte
	P   byte
	RAM []RAMEntry
}

// BusCycle is one recorded bus access.
type BusCycle struct {
	Addr  uint16
	Value byte
	Write bool
}

type cycleRecorder struct {
	NopHooks
	cycles []BusCycle
}

func (r *cycleRecorder) MemFetch(addr uint16, val byte) {
	r.cycles = append(r.cycles, BusCycle{Addr: addr, Value: val})
}

func (r *cycleRecorder) MemWrite(addr uint16, val byte) {
	r.cycles = append(r.cycles, BusCycle{Addr: addr, Value: val, Write: true})
}

// HarteRun executes exactly one instruction over a bare 64KiB memory
// image, with no PPU or APU attached and I flag changes applied
// immediately. It returns the final state and the per-cycle bus traffic.
// The final RAM lists the initial addresses plus any the instruction
// wrote.
func HarteRun(initial HarteState) (HarteState, []BusCycle, error) {
	rec := &cycleRecorder{}
	bus := NewFlatBus(rec)
	cpu := NewCPU(bus, rec)
	cpu.SetImmediateI()

	cpu.PC = initial.PC
	cpu.SP = initial.SP
	cpu.A = initial.A
	cpu.X = initial.X
	cpu.Y = initial.Y
	cpu.P = initial.P
	for _, e := range initial.RAM {
		bus.flat[e.Addr] = e.Value
	}

	_, err := cpu.Step()

	final := HarteState{
		PC: cpu.PC,
		SP: cpu.SP,
		A:  cpu.A,
		X:  cpu.X,
		Y:  cpu.Y,
		P:  cpu.P,
	}
	seen := make(map[uint16]bool, len(initial.RAM))
	for _, e := range initial.RAM {
		final.RAM = append(final.RAM, RAMEntry{e.Addr, bus.flat[e.Addr]})
		seen[e.Addr] = true
	}
	for _, cy := range rec.cycles {
		if cy.Write && !seen[cy.Addr] {
			final.RAM = append(final.RAM, RAMEntry{cy.Addr, bus.flat[cy.Addr]})
			seen[cy.Addr] = true
		}
	}
	return final, rec.cycles, err
}
