package nes

// Mapper0 (NROM): 16 or 32KiB of PRG ROM at $8000, 8KiB of CHR at $0000.
// A single 16KiB bank appears at both $8000 and $C000; the mirroring is
// done here in address logic, the PRG slice is never duplicated.
type Mapper0 struct {
	card    *Cartridge
	prgMask uint16
}

func NewMapper0(card *Cartridge) (Mapper, error) {
	if card.CHRBanks != 1 && !card.CHRRAM {
		return nil, &BadCHRROMSize{Banks: card.CHRBanks}
	}
	if card.PRGBanks != 1 && card.PRGBanks != 2 {
		return nil, &BadPRGROMSize{Banks: card.PRGBanks}
	}
	mask := uint16(0x7FFF)
	if card.PRGBanks == 1 {
		mask = 0x3FFF
	}
	return &Mapper0{card: card, prgMask: mask}, nil
}

func (m *Mapper0) Read(addr uint16) byte {
	card := m.card
	switch {
	case addr < 0x2000:
		return card.CHR[addr]
	case addr >= 0x8000:
		return card.PRG[addr&m.prgMask]
	case addr >= 0x6000:
		return card.SRAM[addr-0x6000]
	}
	return 0
}

func (m *Mapper0) Write(addr uint16, value byte) {
	card := m.card
	switch {
	case addr < 0x2000:
		if card.CHRRAM {
			card.CHR[addr] = value
		}
	case addr >= 0x8000:
		// PRG ROM, writes dropped
	case addr >= 0x6000:
		card.SRAM[addr-0x6000] = value
	}
}
