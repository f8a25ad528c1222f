package nes

// VRAM is the PPU's view of its own address space. The bus implements it
// with the pattern tables, mirrored nametables and the palette.
type VRAM interface {
	VRead(addr uint16) byte
	VWrite(addr uint16, value byte)
}

// PPUCTRL bits
const (
	ctrlNameTable   = 0x03
	ctrlIncrement   = 0x04
	ctrlSpriteTable = 0x08
	ctrlBackTable   = 0x10
	ctrlSpriteSize  = 0x20
	ctrlNMIEnable   = 0x80
)

// PPUMASK bits
const (
	maskShowLeftBack   = 0x02
	maskShowLeftSprite = 0x04
	maskShowBack       = 0x08
	maskShowSprite     = 0x10
)

// PPUSTATUS bits
const (
	statusOverflow = 0x20
	statusSprite0  = 0x40
	statusVBlank   = 0x80
)

type PPU struct {
	hooks Hooks

	Ctrl   byte // $2000
	Mask   byte // $2001
	Status byte // $2002
	db     byte // register port open bus

	Dot      int
	Scanline int
	Frame    uint64
	odd      bool

	// internal registers
	v uint16 // current VRAM address, 15 bits
	t uint16 // temporary VRAM address
	x byte   // fine X scroll, 3 bits
	w byte   // write toggle

	// background fetch latches and shift registers. The active tile sits
	// in the high byte of each 16-bit register, the prefetched one below.
	ntByte    byte
	atByte    byte
	ptLow     byte
	ptHigh    byte
	patternLo uint16
	patternHi uint16
	attrLo    uint16
	attrHi    uint16

	oamAddr byte
	oam     [256]byte
	readBuf byte // $2007 read buffer

	spriteCount      int
	spritePatterns   [8]uint32
	spritePositions  [8]byte
	spritePriorities [8]byte
	spriteIndexes    [8]byte

	prevNMI bool
	state   PPUState
}

func NewPPU(hooks Hooks) *PPU {
	ppu := &PPU{hooks: hooks}
	ppu.Reset()
	return ppu
}

func (p *PPU) Reset() {
	p.Ctrl = 0
	p.Mask = 0
	p.Status = 0xA0
	p.db = 0
	p.Dot = 0
	p.Scanline = 0
	p.Frame = 0
	p.odd = false
	p.v, p.t, p.x, p.w = 0, 0, 0, 0
	p.readBuf = 0
	p.oamAddr = 0
	p.spriteCount = 0
	p.prevNMI = false
}

func (p *PPU) rendering() bool {
	return p.Mask&(maskShowBack|maskShowSprite) != 0
}

// Step advances one dot and reports whether the NMI line rises. The CPU
// bus calls this three times per CPU cycle.
func (p *PPU) Step(vram VRAM) bool {
	p.advance()

	visibleLine := p.Scanline < 240
	preLine := p.Scanline == 261

	// pixel output comes first: the dot 7 reload must not steal the last
	// pixel of the current tile
	if visibleLine && p.Dot < 256 {
		p.renderPixel(vram)
	}

	if p.rendering() && (visibleLine || preLine) {
		fetch := (p.Dot >= 1 && p.Dot <= 256) || (p.Dot >= 321 && p.Dot <= 336)
		if fetch {
			switch p.Dot % 8 {
			case 1:
				p.ntByte = vram.VRead(0x2000 | p.v&0x0FFF)
			case 3:
				p.fetchAttribute(vram)
			case 5:
				p.ptLow = vram.VRead(p.tileAddress())
			case 7:
				p.ptHigh = vram.VRead(p.tileAddress() + 8)
				p.reloadShift()
				p.incrementX()
			}
		}
		if p.Dot == 256 {
			p.incrementY()
		}
		if p.Dot == 257 {
			p.copyX()
			if visibleLine {
				p.evaluateSprites(vram)
			} else {
				p.spriteCount = 0
			}
		}
		if preLine && p.Dot >= 280 && p.Dot <= 304 {
			p.copyY()
		}
	}

	if p.Scanline == 241 && p.Dot == 1 {
		p.Status |= statusVBlank
	}
	if preLine && p.Dot == 1 {
		p.Status &^= statusVBlank | statusSprite0 | statusOverflow
	}

	// edge-triggered: one rise per false->true transition of enable&flag
	cond := p.Ctrl&ctrlNMIEnable != 0 && p.Status&statusVBlank != 0
	nmi := cond && !p.prevNMI
	p.prevNMI = cond

	p.hooks.PPUStep(p.snapshot())
	return nmi
}

func (p *PPU) advance() {
	// odd frames drop the last pre-render dot while rendering
	if p.rendering() && p.odd && p.Scanline == 261 && p.Dot == 339 {
		p.Dot = 0
		p.Scanline = 0
		p.Frame++
		p.odd = !p.odd
		return
	}
	p.Dot++
	if p.Dot > 340 {
		p.Dot = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
			p.Frame++
			p.odd = !p.odd
		}
	}
}

func (p *PPU) tileAddress() uint16 {
	var table uint16
	if p.Ctrl&ctrlBackTable != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 7
	return table + uint16(p.ntByte)*16 + fineY
}

func (p *PPU) fetchAttribute(vram VRAM) {
	v := p.v
	address := 0x23C0 | (v & 0x0C00) | ((v >> 4) & 0x38) | ((v >> 2) & 0x07)
	shift := ((v >> 4) & 4) | (v & 2)
	p.atByte = (vram.VRead(address) >> shift) & 3
}

func (p *PPU) reloadShift() {
	p.patternLo = p.patternLo<<8 | uint16(p.ptLow)
	p.patternHi = p.patternHi<<8 | uint16(p.ptHigh)
	var lo, hi uint16
	if p.atByte&1 != 0 {
		lo = 0xFF
	}
	if p.atByte&2 != 0 {
		hi = 0xFF
	}
	p.attrLo = p.attrLo<<8 | lo
	p.attrHi = p.attrHi<<8 | hi
}

func (p *PPU) backgroundPixel() byte {
	if p.Mask&maskShowBack == 0 {
		return 0
	}
	sel := uint(p.Dot&7) + uint(p.x)
	lo := byte(p.patternLo >> (15 - sel) & 1)
	hi := byte(p.patternHi >> (15 - sel) & 1)
	a0 := byte(p.attrLo >> (15 - sel) & 1)
	a1 := byte(p.attrHi >> (15 - sel) & 1)
	return a1<<3 | a0<<2 | hi<<1 | lo
}

func (p *PPU) spritePixel() (byte, byte) {
	if p.Mask&maskShowSprite == 0 {
		return 0, 0
	}
	for i := 0; i < p.spriteCount; i++ {
		offset := p.Dot - int(p.spritePositions[i])
		if offset < 0 || offset > 7 {
			continue
		}
		offset = 7 - offset
		color := byte(p.spritePatterns[i] >> byte(offset*4) & 0x0F)
		if color%4 == 0 {
			continue
		}
		return byte(i), color
	}
	return 0, 0
}

func (p *PPU) renderPixel(vram VRAM) {
	x := p.Dot
	y := p.Scanline

	background := p.backgroundPixel()
	i, sprite := p.spritePixel()

	if x < 8 && p.Mask&maskShowLeftBack == 0 {
		background = 0
	}
	if x < 8 && p.Mask&maskShowLeftSprite == 0 {
		sprite = 0
	}

	b := background%4 != 0
	s := sprite%4 != 0

	var index byte
	switch {
	case !b && !s:
		index = 0
	case !b && s:
		index = sprite | 0x10
	case b && !s:
		index = background
	default:
		if p.spriteIndexes[i] == 0 && x < 255 {
			p.Status |= statusSprite0
		}
		if p.spritePriorities[i] == 0 {
			index = sprite | 0x10
		} else {
			index = background
		}
	}

	color := vram.VRead(0x3F00 + uint16(index))
	p.hooks.PutPixel(x, y, color%64)
}

func (p *PPU) evaluateSprites(vram VRAM) {
	h := 8
	if p.Ctrl&ctrlSpriteSize != 0 {
		h = 16
	}
	count := 0
	for i := 0; i < 64; i++ {
		y := p.oam[i*4+0]
		a := p.oam[i*4+2]
		x := p.oam[i*4+3]
		row := p.Scanline - int(y)
		if row < 0 || row >= h {
			continue
		}
		if count < 8 {
			p.spritePatterns[count] = p.fetchSpritePattern(vram, i, row)
			p.spritePositions[count] = x
			p.spritePriorities[count] = (a >> 5) & 1
			p.spriteIndexes[count] = byte(i)
		}
		count++
	}
	if count > 8 {
		count = 8
		p.Status |= statusOverflow
	}
	p.spriteCount = count
}

func (p *PPU) fetchSpritePattern(vram VRAM, i, row int) uint32 {
	tile := p.oam[i*4+1]
	attribute := p.oam[i*4+2]

	var address uint16
	if p.Ctrl&ctrlSpriteSize == 0 {
		if attribute&0x80 == 0x80 {
			row = 7 - row
		}
		var table uint16
		if p.Ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		address = table + uint16(tile)*16 + uint16(row)
	} else {
		if attribute&0x80 == 0x80 {
			row = 15 - row
		}
		table := uint16(tile&1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		address = table + uint16(tile)*16 + uint16(row)
	}

	lowTileByte := vram.VRead(address)
	highTileByte := vram.VRead(address + 8)
	high := (attribute & 3) << 2

	var data uint32
	for n := 0; n < 8; n++ {
		var p1, p2 byte
		if attribute&0x40 == 0x40 {
			p1 = lowTileByte & 1
			p2 = (highTileByte & 1) << 1
			lowTileByte >>= 1
			highTileByte >>= 1
		} else {
			p1 = (lowTileByte & 0x80) >> 7
			p2 = (highTileByte & 0x80) >> 6
			lowTileByte <<= 1
			highTileByte <<= 1
		}
		data <<= 4
		data |= uint32(high | p1 | p2)
	}
	return data
}

// loopy scroll helpers

func (p *PPU) copyX() {
	// v: ....A.. ...BCDEF <- t
	p.v = p.v&0xFBE0 | p.t&0x041F
}

func (p *PPU) copyY() {
	// v: GHIA.BC DEF..... <- t
	p.v = p.v&0x841F | p.t&0x7BE0
}

func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &= 0x8FFF
		y := (p.v & 0x03E0) >> 5
		switch {
		case y == 29:
			y = 0
			p.v ^= 0x0800
		case y == 31:
			y = 0
		default:
			y++
		}
		p.v = p.v&0xFC1F | y<<5
	}
}

// registers

// ReadRegister handles a CPU read of $2000-$2007 (mirror-resolved) or
// $4014. Write-only registers read back as the port's open bus value.
func (p *PPU) ReadRegister(addr uint16, vram VRAM) byte {
	switch addr {
	case 0x2002:
		return p.readStatus()
	case 0x2004:
		value := p.oam[p.oamAddr]
		if p.oamAddr&0x03 == 0x02 {
			value &= 0xE3
		}
		p.db = value
		return value
	case 0x2007:
		return p.readData(vram)
	}
	return p.db
}

func (p *PPU) WriteRegister(addr uint16, value byte, vram VRAM) {
	p.db = value
	switch addr {
	case 0x2000:
		p.writeControl(value)
	case 0x2001:
		p.Mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddress(value)
	case 0x2007:
		p.writeData(vram, value)
	}
}

func (p *PPU) writeControl(value byte) {
	p.Ctrl = value
	// t: ....BA.. ........ <- d: ......BA
	p.t = p.t&0xF3FF | uint16(value&0x03)<<10
}

func (p *PPU) writeScroll(value byte) {
	if p.w == 0 {
		// t: ....... ...ABCDE <- d: ABCDE...
		p.t = p.t&0xFFE0 | uint16(value)>>3
		p.x = value & 0x07
		p.w = 1
	} else {
		// t: .CBA..HG FED..... <- d: HGFEDCBA
		p.t = p.t&0x8FFF | uint16(value&0x07)<<12
		p.t = p.t&0xFC1F | uint16(value&0xF8)<<2
		p.w = 0
	}
}

func (p *PPU) writeAddress(value byte) {
	if p.w == 0 {
		// t: .0FEDCBA ........ <- d: ..FEDCBA, bit 14 cleared
		p.t = p.t&0x00FF | uint16(value&0x3F)<<8
		p.w = 1
	} else {
		p.t = p.t&0xFF00 | uint16(value)
		p.v = p.t
		p.w = 0
	}
}

func (p *PPU) readStatus() byte {
	value := p.Status&0xE0 | p.db&0x1F
	p.Status &^= statusVBlank
	p.w = 0
	p.db = p.db&0x1F | value&0xE0
	return value
}

func (p *PPU) readData(vram VRAM) byte {
	addr := p.v & 0x3FFF
	value := vram.VRead(addr)
	if addr < 0x3F00 {
		value, p.readBuf = p.readBuf, value
	} else {
		p.readBuf = vram.VRead(addr - 0x1000)
	}
	p.advanceV()
	p.db = value
	return value
}

func (p *PPU) writeData(vram VRAM, value byte) {
	// VRAM writes are dropped while rendering is on, the pointer still moves
	if !p.rendering() || (p.Scanline >= 240 && p.Scanline != 261) {
		vram.VWrite(p.v&0x3FFF, value)
	}
	p.advanceV()
}

func (p *PPU) advanceV() {
	if p.Ctrl&ctrlIncrement == 0 {
		p.v++
	} else {
		p.v += 32
	}
	p.v &= 0x7FFF
}

func (p *PPU) snapshot() *PPUState {
	s := &p.state
	s.Dot = p.Dot
	s.Scanline = p.Scanline
	s.Ctrl = p.Ctrl
	s.Mask = p.Mask
	s.Status = p.Status
	s.V = p.v
	s.T = p.t
	s.X = p.x
	s.W = p.w
	s.NTByte = p.ntByte
	s.ATByte = p.atByte
	s.PTLow = p.ptLow
	s.PTHigh = p.ptHigh
	return s
}
