package nes

type Cartridge struct {
	PRG      []byte // PRG ROM, 16KiB banks
	CHR      []byte // CHR ROM (or CHR RAM when the header has no CHR banks)
	SRAM     []byte // battery-backed WRAM at $6000-$7FFF
	Trainer  []byte // optional 512 bytes loaded at $7000
	Mapper   byte
	Mirror   byte
	PRGBanks byte
	CHRBanks byte
	CHRRAM   bool
}

func NewCartridge(prg, chr []byte, mapper, mirror byte) *Cartridge {
	sram := make([]byte, 0x2000)
	return &Cartridge{
		PRG:      prg,
		CHR:      chr,
		SRAM:     sram,
		Mapper:   mapper,
		Mirror:   mirror,
		PRGBanks: byte(len(prg) / 0x4000),
		CHRBanks: byte(len(chr) / 0x2000),
	}
}
