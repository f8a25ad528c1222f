package nes

/*
CPU address space:
[$0000, $2000) 2KiB RAM, mirrored every $0800
[$2000, $4000) PPU registers, mirrored every 8
[$4000, $4020) APU and IO registers
[$4020, $6000) expansion area (byte storage)
[$6000, $8000) cartridge SRAM
[$8000, $10000) PRG ROM via the mapper
*/

// Bus wires the CPU to everything it can address. Every access goes
// through Fetch/Store, advances the PPU three dots and the APU one cycle,
// and is reported on the memory trace with its effective address.
type Bus struct {
	ram [0x800]byte
	io  [0x20]byte
	exp [0x1FE0]byte

	nameTable [0x800]byte
	palette   [32]byte

	card   *Cartridge
	mapper Mapper
	ppu    *PPU
	apu    *APU
	pad    *Controller
	hooks  Hooks

	// flat replaces the whole map in memory-only mode, used by the
	// single-instruction test harness. No PPU or APU runs then.
	flat *[0x10000]byte
}

func NewBus(card *Cartridge, mapper Mapper, ppu *PPU, apu *APU, pad *Controller, hooks Hooks) *Bus {
	b := &Bus{
		card:   card,
		mapper: mapper,
		ppu:    ppu,
		apu:    apu,
		pad:    pad,
		hooks:  hooks,
	}
	if card != nil && card.Trainer != nil {
		// trainer data lands at $7000
		copy(card.SRAM[0x1000:], card.Trainer)
	}
	return b
}

// NewFlatBus builds a bus backed by a bare 64KiB array with no devices.
func NewFlatBus(hooks Hooks) *Bus {
	return &Bus{hooks: hooks, flat: new([0x10000]byte)}
}

// Fetch performs one CPU read cycle.
func (b *Bus) Fetch(addr uint16, toNMI *bool) byte {
	if b.flat != nil {
		value := b.flat[addr]
		b.hooks.MemFetch(addr, value)
		return value
	}
	var value byte
	eff := addr
	switch {
	case addr < 0x2000:
		eff = addr % 0x0800
		value = b.ram[eff]
	case addr < 0x4000:
		eff = 0x2000 + addr%8
		value = b.ppu.ReadRegister(eff, b)
	case addr == 0x4014:
		value = b.ppu.ReadRegister(addr, b)
	case addr == 0x4015:
		value = b.apu.ReadRegister(addr)
	case addr == 0x4016:
		value = b.pad.Read()
	case addr < 0x4020:
		value = b.io[addr-0x4000]
	case addr < 0x6000:
		value = b.exp[addr-0x4020]
	default:
		value = b.mapper.Read(addr)
	}
	b.hooks.MemFetch(eff, value)
	b.tick(toNMI)
	return value
}

// Store performs one CPU write cycle. A write to $4014 does not run the
// DMA here; it raises toOAMDMA and the CPU drives the transfer.
func (b *Bus) Store(addr uint16, value byte, toNMI *bool, toOAMDMA *bool) {
	if b.flat != nil {
		b.flat[addr] = value
		b.hooks.MemWrite(addr, value)
		return
	}
	eff := addr
	switch {
	case addr < 0x2000:
		eff = addr % 0x0800
		b.ram[eff] = value
	case addr < 0x4000:
		eff = 0x2000 + addr%8
		b.ppu.WriteRegister(eff, value, b)
	case addr == 0x4014:
		b.io[0x14] = value
		*toOAMDMA = true
	case addr == 0x4016:
		b.io[0x16] = value
		b.pad.Write(value, b.hooks)
	case addr < 0x4020:
		b.io[addr-0x4000] = value
		b.apu.WriteRegister(addr, value)
	case addr < 0x6000:
		b.exp[addr-0x4020] = value
	default:
		b.mapper.Write(addr, value)
	}
	b.hooks.MemWrite(eff, value)
	b.tick(toNMI)
}

// Peek reads without side effects: no clocking, no trace, registers
// untouched. Debug use only.
func (b *Bus) Peek(addr uint16) byte {
	if b.flat != nil {
		return b.flat[addr]
	}
	switch {
	case addr < 0x2000:
		return b.ram[addr%0x0800]
	case addr < 0x4000:
		// reading a PPU register has side effects, show the open bus instead
		return b.ppu.db
	case addr < 0x4020:
		return b.io[addr&0x1F]
	case addr < 0x6000:
		return b.exp[addr-0x4020]
	default:
		return b.mapper.Read(addr)
	}
}

func (b *Bus) tick(toNMI *bool) {
	for i := 0; i < 3; i++ {
		if b.ppu.Step(b) {
			*toNMI = true
		}
	}
	b.apu.Step()
}

// VRead resolves an address in the PPU's own space.
func (b *Bus) VRead(addr uint16) byte {
	addr = addr % 0x4000
	switch {
	case addr < 0x2000:
		return b.mapper.Read(addr)
	case addr < 0x3F00:
		return b.nameTable[MirrorAddress(b.card.Mirror, addr)%2048]
	default:
		return b.readPalette(addr % 32)
	}
}

func (b *Bus) VWrite(addr uint16, value byte) {
	addr = addr % 0x4000
	switch {
	case addr < 0x2000:
		b.mapper.Write(addr, value)
	case addr < 0x3F00:
		b.nameTable[MirrorAddress(b.card.Mirror, addr)%2048] = value
	default:
		b.writePalette(addr%32, value)
	}
}

// The upper-left entry of each sprite palette mirrors the background one.
func (b *Bus) readPalette(addr uint16) byte {
	if addr >= 16 && addr%4 == 0 {
		addr -= 16
	}
	return b.palette[addr]
}

func (b *Bus) writePalette(addr uint16, value byte) {
	if addr >= 16 && addr%4 == 0 {
		addr -= 16
	}
	b.palette[addr] = value
}

// Mirroring modes.
const (
	MirrorHorizontal = 0
	MirrorVertical   = 1
	MirrorSingle0    = 2
	MirrorSingle1    = 3
	MirrorFour       = 4
)

var MirrorLookup = [...][4]uint16{
	{0, 0, 1, 1},
	{0, 1, 0, 1},
	{0, 0, 0, 0},
	{1, 1, 1, 1},
	{0, 1, 2, 3},
}

func MirrorAddress(mode byte, address uint16) uint16 {
	address = (address - 0x2000) % 0x1000
	table := address / 0x0400
	offset := address % 0x0400
	return 0x2000 + MirrorLookup[mode][table]*0x0400 + offset
}
