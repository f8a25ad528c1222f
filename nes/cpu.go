package nes

// Interrupt vectors.
const (
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE
)

const CPUFrequency = 1789773

// Status register bits.
const (
	flagC byte = 1 << 0
	flagZ byte = 1 << 1
	flagI byte = 1 << 2
	flagD byte = 1 << 3
	flagB byte = 1 << 4
	flagU byte = 1 << 5
	flagV byte = 1 << 6
	flagN byte = 1 << 7
)

type addrMode byte

const (
	modeImplied addrMode = iota
	modeRelative
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeAbsoluteXEC // indexed store/RMW variants always pay the extra cycle
	modeAbsoluteYEC
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeIndirectYEC
)

var modeNames = [...]string{
	"IMP", "REL", "IMM", "ZP", "ZPX", "ZPY", "ABS",
	"ABX", "ABY", "ABX", "ABY", "IND", "IZX", "IZY", "IZY",
}

// CPU is a cycle-stepped 6502. Every bus access, dummy accesses included,
// goes through fetch8/write8 and costs one cycle; the bus advances the
// PPU three dots per cycle behind those calls.
type CPU struct {
	bus   *Bus
	hooks Hooks

	A      byte
	X      byte
	Y      byte
	SP     byte
	P      byte
	PC     uint16
	Cycles uint64

	toNMI    bool
	inNMI    bool
	toOAMDMA bool

	// CLI, SEI and PLP change I one instruction late. updateI counts
	// down at the top of each step; pendingI lands when it hits 1.
	updateI  int
	pendingI byte
	deferI   bool

	state CPUState
}

func NewCPU(bus *Bus, hooks Hooks) *CPU {
	return &CPU{bus: bus, hooks: hooks, deferI: true}
}

// Reset loads the reset vector through the bus, so it costs two cycles.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagI | flagU
	c.Cycles = 0
	c.toNMI = false
	c.inNMI = false
	c.toOAMDMA = false
	c.updateI = 0
	c.PC = c.fetch16(ResetVector)
	c.snapshot()
}

// ResetToPC sets up the automation entry state: registers as after reset,
// the cycle counter preloaded to 7, no vector fetch.
func (c *CPU) ResetToPC(pc uint16) {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = flagI | flagU
	c.Cycles = 7
	c.toNMI = false
	c.inNMI = false
	c.toOAMDMA = false
	c.updateI = 0
	c.PC = pc
	c.snapshot()
}

// SetImmediateI makes I flag changes apply within the same instruction,
// as the single-step test harness expects.
func (c *CPU) SetImmediateI() {
	c.deferI = false
}

// Step runs one instruction (or a pending NMI) and returns the cycles it
// took. An opcode with no handler aborts before any of its operand
// traffic and returns IllegalOpcode.
func (c *CPU) Step() (int, error) {
	start := c.Cycles
	if c.deferI {
		c.applyPendingI()
		c.snapshot()
	}
	if c.toNMI {
		c.nmi()
	} else {
		opcode := c.fetch8(c.PC)
		c.PC++
		inst := &opcodeTable[opcode]
		if inst.fn == nil {
			return int(c.Cycles - start), &IllegalOpcode{Opcode: opcode, PC: c.PC - 1}
		}
		c.state.Opcode = opcode
		c.state.Mnemonic = inst.name
		c.state.Mode = modeNames[inst.mode]
		inst.fn(c, inst.mode)
	}
	if c.toOAMDMA {
		c.toOAMDMA = false
		c.oamDMA()
	}
	if !c.deferI {
		c.snapshot()
	}
	c.hooks.CPUStep(&c.state)
	return int(c.Cycles - start), nil
}

func (c *CPU) applyPendingI() {
	switch c.updateI {
	case 2:
		c.updateI = 1
	case 1:
		c.P = c.P&^flagI | c.pendingI
		c.updateI = 0
	}
}

func (c *CPU) scheduleI(bit byte) {
	if !c.deferI {
		c.P = c.P&^flagI | bit
		return
	}
	c.updateI = 2
	c.pendingI = bit
}

func (c *CPU) snapshot() {
	s := &c.state
	s.PC = c.PC
	s.A = c.A
	s.X = c.X
	s.Y = c.Y
	s.SP = c.SP
	s.P = c.P
	s.Cycles = c.Cycles
}

// nmi is the 7-cycle interrupt sequence: two dummy opcode fetches, three
// pushes (B clear, U set), then the vector.
func (c *CPU) nmi() {
	c.toNMI = false
	c.inNMI = true
	c.state.Opcode = 0
	c.state.Mnemonic = "NMI"
	c.state.Mode = modeNames[modeImplied]
	c.fetch8(c.PC)
	c.fetch8(c.PC)
	c.push(byte(c.PC >> 8))
	c.push(byte(c.PC))
	c.push(c.P&^flagB | flagU)
	c.P |= flagI
	c.PC = c.fetch16(NMIVector)
	c.inNMI = false
}

// oamDMA copies a 256-byte page into OAM through $2004: one alignment
// cycle, a second one when the write landed on an odd cycle, then 256
// read/write pairs. 513 or 514 cycles in total.
func (c *CPU) oamDMA() {
	page := uint16(c.bus.io[0x14]) << 8
	c.fetch8(c.PC)
	if c.Cycles%2 == 1 {
		c.fetch8(c.PC)
	}
	for i := 0; i < 256; i++ {
		value := c.fetch8(page + uint16(i))
		c.write8(0x2004, value)
	}
}

// bus access

func (c *CPU) fetch8(addr uint16) byte {
	c.Cycles++
	return c.bus.Fetch(addr, &c.toNMI)
}

func (c *CPU) fetch16(addr uint16) uint16 {
	lo := c.fetch8(addr)
	hi := c.fetch8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) write8(addr uint16, value byte) {
	c.bus.Store(addr, value, &c.toNMI, &c.toOAMDMA)
	c.Cycles++
}

func (c *CPU) fetchPC() byte {
	value := c.fetch8(c.PC)
	c.PC++
	return value
}

func (c *CPU) fetchPC16() uint16 {
	lo := c.fetchPC()
	hi := c.fetchPC()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(value byte) {
	c.write8(0x0100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() byte {
	c.SP++
	return c.fetch8(0x0100 | uint16(c.SP))
}

// operand resolves the effective address for a mode with the exact bus
// traffic of the hardware: dummy zero page reads on indexed zero page,
// a wrapped-address dummy read when indexing crosses a page (always for
// the EC variants), and the page-wrapped high byte of JMP (indirect).
func (c *CPU) operand(mode addrMode) uint16 {
	switch mode {
	case modeImplied:
		return c.PC
	case modeImmediate, modeRelative:
		addr := c.PC
		c.PC++
		return addr
	case modeZeroPage:
		return uint16(c.fetchPC())
	case modeZeroPageX:
		base := c.fetchPC()
		c.fetch8(uint16(base))
		return uint16(base+c.X) & 0x00FF
	case modeZeroPageY:
		base := c.fetchPC()
		c.fetch8(uint16(base))
		return uint16(base+c.Y) & 0x00FF
	case modeAbsolute:
		return c.fetchPC16()
	case modeAbsoluteX:
		return c.indexedAbsolute(c.X, false)
	case modeAbsoluteXEC:
		return c.indexedAbsolute(c.X, true)
	case modeAbsoluteY:
		return c.indexedAbsolute(c.Y, false)
	case modeAbsoluteYEC:
		return c.indexedAbsolute(c.Y, true)
	case modeIndirect:
		ptr := c.fetchPC16()
		lo := c.fetch8(ptr)
		hi := c.fetch8(ptr&0xFF00 | uint16(byte(ptr)+1))
		return uint16(hi)<<8 | uint16(lo)
	case modeIndirectX:
		zp := c.fetchPC()
		c.fetch8(uint16(zp))
		lo := c.fetch8(uint16(zp + c.X))
		hi := c.fetch8(uint16(zp + c.X + 1))
		return uint16(hi)<<8 | uint16(lo)
	case modeIndirectY:
		return c.indirectIndexed(false)
	case modeIndirectYEC:
		return c.indirectIndexed(true)
	}
	return 0
}

func (c *CPU) indexedAbsolute(index byte, extra bool) uint16 {
	base := c.fetchPC16()
	addr := base + uint16(index)
	if extra || base&0xFF00 != addr&0xFF00 {
		c.fetch8(base&0xFF00 | addr&0x00FF)
	}
	return addr
}

func (c *CPU) indirectIndexed(extra bool) uint16 {
	zp := c.fetchPC()
	lo := c.fetch8(uint16(zp))
	hi := c.fetch8(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	if extra || base&0xFF00 != addr&0xFF00 {
		c.fetch8(base&0xFF00 | addr&0x00FF)
	}
	return addr
}

// flag helpers

func (c *CPU) setFlag(flag byte, on bool) {
	if on {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setZN(value byte) {
	c.setFlag(flagZ, value == 0)
	c.setFlag(flagN, value&0x80 != 0)
}

func (c *CPU) compare(reg, m byte) {
	c.setFlag(flagC, reg >= m)
	c.setFlag(flagZ, reg == m)
	c.setFlag(flagN, (reg-m)&0x80 != 0)
}

func (c *CPU) addWithCarry(m byte) {
	a := c.A
	carry := c.P & flagC
	sum := uint16(a) + uint16(m) + uint16(carry)
	c.A = byte(sum)
	c.setFlag(flagC, sum > 0xFF)
	c.setFlag(flagV, (a^c.A)&(m^c.A)&0x80 != 0)
	c.setZN(c.A)
}

// modify is the read-modify-write choreography: read, write the stale
// value back, write the result.
func (c *CPU) modify(addr uint16, op func(byte) byte) byte {
	value := c.fetch8(addr)
	c.write8(addr, value)
	value = op(value)
	c.write8(addr, value)
	return value
}

func (c *CPU) aslOp(v byte) byte {
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) lsrOp(v byte) byte {
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rolOp(v byte) byte {
	carry := c.P & flagC
	c.setFlag(flagC, v&0x80 != 0)
	v = v<<1 | carry
	c.setZN(v)
	return v
}

func (c *CPU) rorOp(v byte) byte {
	carry := c.P & flagC
	c.setFlag(flagC, v&0x01 != 0)
	v = v>>1 | carry<<7
	c.setZN(v)
	return v
}

func (c *CPU) incOp(v byte) byte {
	v++
	c.setZN(v)
	return v
}

func (c *CPU) decOp(v byte) byte {
	v--
	c.setZN(v)
	return v
}

// instructions

func (c *CPU) lda(mode addrMode) {
	c.A = c.fetch8(c.operand(mode))
	c.setZN(c.A)
}

func (c *CPU) ldx(mode addrMode) {
	c.X = c.fetch8(c.operand(mode))
	c.setZN(c.X)
}

func (c *CPU) ldy(mode addrMode) {
	c.Y = c.fetch8(c.operand(mode))
	c.setZN(c.Y)
}

func (c *CPU) sta(mode addrMode) { c.write8(c.operand(mode), c.A) }
func (c *CPU) stx(mode addrMode) { c.write8(c.operand(mode), c.X) }
func (c *CPU) sty(mode addrMode) { c.write8(c.operand(mode), c.Y) }

func (c *CPU) adc(mode addrMode) { c.addWithCarry(c.fetch8(c.operand(mode))) }
func (c *CPU) sbc(mode addrMode) { c.addWithCarry(^c.fetch8(c.operand(mode))) }

func (c *CPU) and(mode addrMode) {
	c.A &= c.fetch8(c.operand(mode))
	c.setZN(c.A)
}

func (c *CPU) ora(mode addrMode) {
	c.A |= c.fetch8(c.operand(mode))
	c.setZN(c.A)
}

func (c *CPU) eor(mode addrMode) {
	c.A ^= c.fetch8(c.operand(mode))
	c.setZN(c.A)
}

func (c *CPU) cmp(mode addrMode) { c.compare(c.A, c.fetch8(c.operand(mode))) }
func (c *CPU) cpx(mode addrMode) { c.compare(c.X, c.fetch8(c.operand(mode))) }
func (c *CPU) cpy(mode addrMode) { c.compare(c.Y, c.fetch8(c.operand(mode))) }

func (c *CPU) bit(mode addrMode) {
	m := c.fetch8(c.operand(mode))
	c.setFlag(flagZ, c.A&m == 0)
	c.setFlag(flagV, m&flagV != 0)
	c.setFlag(flagN, m&flagN != 0)
}

func (c *CPU) asl(mode addrMode) {
	if mode == modeImplied {
		c.fetch8(c.PC)
		c.A = c.aslOp(c.A)
		return
	}
	c.modify(c.operand(mode), c.aslOp)
}

func (c *CPU) lsr(mode addrMode) {
	if mode == modeImplied {
		c.fetch8(c.PC)
		c.A = c.lsrOp(c.A)
		return
	}
	c.modify(c.operand(mode), c.lsrOp)
}

func (c *CPU) rol(mode addrMode) {
	if mode == modeImplied {
		c.fetch8(c.PC)
		c.A = c.rolOp(c.A)
		return
	}
	c.modify(c.operand(mode), c.rolOp)
}

func (c *CPU) ror(mode addrMode) {
	if mode == modeImplied {
		c.fetch8(c.PC)
		c.A = c.rorOp(c.A)
		return
	}
	c.modify(c.operand(mode), c.rorOp)
}

func (c *CPU) inc(mode addrMode) { c.modify(c.operand(mode), c.incOp) }
func (c *CPU) dec(mode addrMode) { c.modify(c.operand(mode), c.decOp) }

func (c *CPU) inx(_ addrMode) {
	c.fetch8(c.PC)
	c.X++
	c.setZN(c.X)
}

func (c *CPU) iny(_ addrMode) {
	c.fetch8(c.PC)
	c.Y++
	c.setZN(c.Y)
}

func (c *CPU) dex(_ addrMode) {
	c.fetch8(c.PC)
	c.X--
	c.setZN(c.X)
}

func (c *CPU) dey(_ addrMode) {
	c.fetch8(c.PC)
	c.Y--
	c.setZN(c.Y)
}

func (c *CPU) tax(_ addrMode) {
	c.fetch8(c.PC)
	c.X = c.A
	c.setZN(c.X)
}

func (c *CPU) tay(_ addrMode) {
	c.fetch8(c.PC)
	c.Y = c.A
	c.setZN(c.Y)
}

func (c *CPU) txa(_ addrMode) {
	c.fetch8(c.PC)
	c.A = c.X
	c.setZN(c.A)
}

func (c *CPU) tya(_ addrMode) {
	c.fetch8(c.PC)
	c.A = c.Y
	c.setZN(c.A)
}

func (c *CPU) tsx(_ addrMode) {
	c.fetch8(c.PC)
	c.X = c.SP
	c.setZN(c.X)
}

func (c *CPU) txs(_ addrMode) {
	c.fetch8(c.PC)
	c.SP = c.X
}

func (c *CPU) clc(_ addrMode) { c.fetch8(c.PC); c.P &^= flagC }
func (c *CPU) sec(_ addrMode) { c.fetch8(c.PC); c.P |= flagC }
func (c *CPU) cld(_ addrMode) { c.fetch8(c.PC); c.P &^= flagD }
func (c *CPU) sed(_ addrMode) { c.fetch8(c.PC); c.P |= flagD }
func (c *CPU) clv(_ addrMode) { c.fetch8(c.PC); c.P &^= flagV }

func (c *CPU) cli(_ addrMode) {
	c.fetch8(c.PC)
	c.scheduleI(0)
}

func (c *CPU) sei(_ addrMode) {
	c.fetch8(c.PC)
	c.scheduleI(flagI)
}

// nop also covers the illegal variants: resolving the operand performs
// their documented (dummy) bus traffic.
func (c *CPU) nop(mode addrMode) {
	c.fetch8(c.operand(mode))
}

func (c *CPU) branch(taken bool) {
	offset := c.fetch8(c.operand(modeRelative))
	if !taken {
		return
	}
	c.fetch8(c.PC)
	page := c.PC & 0xFF00
	c.PC += uint16(int8(offset))
	if c.PC&0xFF00 != page {
		c.fetch8(page | c.PC&0x00FF)
	}
}

func (c *CPU) bcc(_ addrMode) { c.branch(c.P&flagC == 0) }
func (c *CPU) bcs(_ addrMode) { c.branch(c.P&flagC != 0) }
func (c *CPU) bne(_ addrMode) { c.branch(c.P&flagZ == 0) }
func (c *CPU) beq(_ addrMode) { c.branch(c.P&flagZ != 0) }
func (c *CPU) bpl(_ addrMode) { c.branch(c.P&flagN == 0) }
func (c *CPU) bmi(_ addrMode) { c.branch(c.P&flagN != 0) }
func (c *CPU) bvc(_ addrMode) { c.branch(c.P&flagV == 0) }
func (c *CPU) bvs(_ addrMode) { c.branch(c.P&flagV != 0) }

func (c *CPU) jmp(mode addrMode) {
	c.PC = c.operand(mode)
}

func (c *CPU) jsr(_ addrMode) {
	lo := c.fetch8(c.PC)
	c.fetch8(0x0100 | uint16(c.SP))
	ret := c.PC + 1
	c.push(byte(ret >> 8))
	c.push(byte(ret))
	hi := c.fetch8(c.PC + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) rts(_ addrMode) {
	c.fetch8(c.PC)
	c.fetch8(0x0100 | uint16(c.SP))
	lo := c.pop()
	hi := c.pop()
	addr := uint16(hi)<<8 | uint16(lo)
	c.fetch8(addr)
	c.PC = addr + 1
}

func (c *CPU) rti(_ addrMode) {
	c.fetch8(c.PC)
	c.fetch8(0x0100 | uint16(c.SP))
	c.P = c.pop()&^flagB | flagU
	lo := c.pop()
	hi := c.pop()
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) brk(_ addrMode) {
	c.fetch8(c.PC)
	ret := c.PC + 1
	c.push(byte(ret >> 8))
	c.push(byte(ret))
	c.push(c.P | flagB | flagU)
	c.P |= flagI
	c.PC = c.fetch16(IRQVector)
}

func (c *CPU) pha(_ addrMode) {
	c.fetch8(c.PC)
	c.push(c.A)
}

func (c *CPU) php(_ addrMode) {
	c.fetch8(c.PC)
	c.push(c.P | flagB | flagU)
}

func (c *CPU) pla(_ addrMode) {
	c.fetch8(c.PC)
	c.fetch8(0x0100 | uint16(c.SP))
	c.A = c.pop()
	c.setZN(c.A)
}

func (c *CPU) plp(_ addrMode) {
	c.fetch8(c.PC)
	c.fetch8(0x0100 | uint16(c.SP))
	v := c.pop()
	keep := flagI | flagB | flagU
	c.P = c.P&keep | v&^keep
	c.scheduleI(v & flagI)
}

// illegal opcodes

func (c *CPU) lax(mode addrMode) {
	v := c.fetch8(c.operand(mode))
	c.A = v
	c.X = v
	c.setZN(v)
}

func (c *CPU) sax(mode addrMode) {
	c.write8(c.operand(mode), c.A&c.X)
}

func (c *CPU) dcp(mode addrMode) {
	v := c.modify(c.operand(mode), c.decOp)
	c.compare(c.A, v)
}

func (c *CPU) isb(mode addrMode) {
	v := c.modify(c.operand(mode), c.incOp)
	c.addWithCarry(^v)
}

func (c *CPU) slo(mode addrMode) {
	v := c.modify(c.operand(mode), c.aslOp)
	c.A |= v
	c.setZN(c.A)
}

func (c *CPU) rla(mode addrMode) {
	v := c.modify(c.operand(mode), c.rolOp)
	c.A &= v
	c.setZN(c.A)
}

func (c *CPU) sre(mode addrMode) {
	v := c.modify(c.operand(mode), c.lsrOp)
	c.A ^= v
	c.setZN(c.A)
}

func (c *CPU) rra(mode addrMode) {
	v := c.modify(c.operand(mode), c.rorOp)
	c.addWithCarry(v)
}
