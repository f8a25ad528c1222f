package nes

// instruction is one dispatch table entry. Entries left zero have no
// handler and raise IllegalOpcode when fetched.
type instruction struct {
	name string
	mode addrMode
	fn   func(*CPU, addrMode)
}

var opcodeTable = [256]instruction{
	0x00: {"BRK", modeImplied, (*CPU).brk},
	0x01: {"ORA", modeIndirectX, (*CPU).ora},
	0x03: {"SLO", modeIndirectX, (*CPU).slo},
	0x04: {"NOP", modeZeroPage, (*CPU).nop},
	0x05: {"ORA", modeZeroPage, (*CPU).ora},
	0x06: {"ASL", modeZeroPage, (*CPU).asl},
	0x07: {"SLO", modeZeroPage, (*CPU).slo},
	0x08: {"PHP", modeImplied, (*CPU).php},
	0x09: {"ORA", modeImmediate, (*CPU).ora},
	0x0A: {"ASL", modeImplied, (*CPU).asl},
	0x0C: {"NOP", modeAbsolute, (*CPU).nop},
	0x0D: {"ORA", modeAbsolute, (*CPU).ora},
	0x0E: {"ASL", modeAbsolute, (*CPU).asl},
	0x0F: {"SLO", modeAbsolute, (*CPU).slo},

	0x10: {"BPL", modeRelative, (*CPU).bpl},
	0x11: {"ORA", modeIndirectY, (*CPU).ora},
	0x13: {"SLO", modeIndirectYEC, (*CPU).slo},
	0x14: {"NOP", modeZeroPageX, (*CPU).nop},
	0x15: {"ORA", modeZeroPageX, (*CPU).ora},
	0x16: {"ASL", modeZeroPageX, (*CPU).asl},
	0x17: {"SLO", modeZeroPageX, (*CPU).slo},
	0x18: {"CLC", modeImplied, (*CPU).clc},
	0x19: {"ORA", modeAbsoluteY, (*CPU).ora},
	0x1A: {"NOP", modeImplied, (*CPU).nop},
	0x1B: {"SLO", modeAbsoluteYEC, (*CPU).slo},
	0x1C: {"NOP", modeAbsoluteX, (*CPU).nop},
	0x1D: {"ORA", modeAbsoluteX, (*CPU).ora},
	0x1E: {"ASL", modeAbsoluteXEC, (*CPU).asl},
	0x1F: {"SLO", modeAbsoluteXEC, (*CPU).slo},

	0x20: {"JSR", modeAbsolute, (*CPU).jsr},
	0x21: {"AND", modeIndirectX, (*CPU).and},
	0x23: {"RLA", modeIndirectX, (*CPU).rla},
	0x24: {"BIT", modeZeroPage, (*CPU).bit},
	0x25: {"AND", modeZeroPage, (*CPU).and},
	0x26: {"ROL", modeZeroPage, (*CPU).rol},
	0x27: {"RLA", modeZeroPage, (*CPU).rla},
	0x28: {"PLP", modeImplied, (*CPU).plp},
	0x29: {"AND", modeImmediate, (*CPU).and},
	0x2A: {"ROL", modeImplied, (*CPU).rol},
	0x2C: {"BIT", modeAbsolute, (*CPU).bit},
	0x2D: {"AND", modeAbsolute, (*CPU).and},
	0x2E: {"ROL", modeAbsolute, (*CPU).rol},
	0x2F: {"RLA", modeAbsolute, (*CPU).rla},

	0x30: {"BMI", modeRelative, (*CPU).bmi},
	0x31: {"AND", modeIndirectY, (*CPU).and},
	0x33: {"RLA", modeIndirectYEC, (*CPU).rla},
	0x34: {"NOP", modeZeroPageX, (*CPU).nop},
	0x35: {"AND", modeZeroPageX, (*CPU).and},
	0x36: {"ROL", modeZeroPageX, (*CPU).rol},
	0x37: {"RLA", modeZeroPageX, (*CPU).rla},
	0x38: {"SEC", modeImplied, (*CPU).sec},
	0x39: {"AND", modeAbsoluteY, (*CPU).and},
	0x3A: {"NOP", modeImplied, (*CPU).nop},
	0x3B: {"RLA", modeAbsoluteYEC, (*CPU).rla},
	0x3C: {"NOP", modeAbsoluteX, (*CPU).nop},
	0x3D: {"AND", modeAbsoluteX, (*CPU).and},
	0x3E: {"ROL", modeAbsoluteXEC, (*CPU).rol},
	0x3F: {"RLA", modeAbsoluteXEC, (*CPU).rla},

	0x40: {"RTI", modeImplied, (*CPU).rti},
	0x41: {"EOR", modeIndirectX, (*CPU).eor},
	0x43: {"SRE", modeIndirectX, (*CPU).sre},
	0x44: {"NOP", modeZeroPage, (*CPU).nop},
	0x45: {"EOR", modeZeroPage, (*CPU).eor},
	0x46: {"LSR", modeZeroPage, (*CPU).lsr},
	0x47: {"SRE", modeZeroPage, (*CPU).sre},
	0x48: {"PHA", modeImplied, (*CPU).pha},
	0x49: {"EOR", modeImmediate, (*CPU).eor},
	0x4A: {"LSR", modeImplied, (*CPU).lsr},
	0x4C: {"JMP", modeAbsolute, (*CPU).jmp},
	0x4D: {"EOR", modeAbsolute, (*CPU).eor},
	0x4E: {"LSR", modeAbsolute, (*CPU).lsr},
	0x4F: {"SRE", modeAbsolute, (*CPU).sre},

	0x50: {"BVC", modeRelative, (*CPU).bvc},
	0x51: {"EOR", modeIndirectY, (*CPU).eor},
	0x53: {"SRE", modeIndirectYEC, (*CPU).sre},
	0x54: {"NOP", modeZeroPageX, (*CPU).nop},
	0x55: {"EOR", modeZeroPageX, (*CPU).eor},
	0x56: {"LSR", modeZeroPageX, (*CPU).lsr},
	0x57: {"SRE", modeZeroPageX, (*CPU).sre},
	0x58: {"CLI", modeImplied, (*CPU).cli},
	0x59: {"EOR", modeAbsoluteY, (*CPU).eor},
	0x5A: {"NOP", modeImplied, (*CPU).nop},
	0x5B: {"SRE", modeAbsoluteYEC, (*CPU).sre},
	0x5C: {"NOP", modeAbsoluteX, (*CPU).nop},
	0x5D: {"EOR", modeAbsoluteX, (*CPU).eor},
	0x5E: {"LSR", modeAbsoluteXEC, (*CPU).lsr},
	0x5F: {"SRE", modeAbsoluteXEC, (*CPU).sre},

	0x60: {"RTS", modeImplied, (*CPU).rts},
	0x61: {"ADC", modeIndirectX, (*CPU).adc},
	0x63: {"RRA", modeIndirectX, (*CPU).rra},
	0x64: {"NOP", modeZeroPage, (*CPU).nop},
	0x65: {"ADC", modeZeroPage, (*CPU).adc},
	0x66: {"ROR", modeZeroPage, (*CPU).ror},
	0x67: {"RRA", modeZeroPage, (*CPU).rra},
	0x68: {"PLA", modeImplied, (*CPU).pla},
	0x69: {"ADC", modeImmediate, (*CPU).adc},
	0x6A: {"ROR", modeImplied, (*CPU).ror},
	0x6C: {"JMP", modeIndirect, (*CPU).jmp},
	0x6D: {"ADC", modeAbsolute, (*CPU).adc},
	0x6E: {"ROR", modeAbsolute, (*CPU).ror},
	0x6F: {"RRA", modeAbsolute, (*CPU).rra},

	0x70: {"BVS", modeRelative, (*CPU).bvs},
	0x71: {"ADC", modeIndirectY, (*CPU).adc},
	0x73: {"RRA", modeIndirectYEC, (*CPU).rra},
	0x74: {"NOP", modeZeroPageX, (*CPU).nop},
	0x75: {"ADC", modeZeroPageX, (*CPU).adc},
	0x76: {"ROR", modeZeroPageX, (*CPU).ror},
	0x77: {"RRA", modeZeroPageX, (*CPU).rra},
	0x78: {"SEI", modeImplied, (*CPU).sei},
	0x79: {"ADC", modeAbsoluteY, (*CPU).adc},
	0x7A: {"NOP", modeImplied, (*CPU).nop},
	0x7B: {"RRA", modeAbsoluteYEC, (*CPU).rra},
	0x7C: {"NOP", modeAbsoluteX, (*CPU).nop},
	0x7D: {"ADC", modeAbsoluteX, (*CPU).adc},
	0x7E: {"ROR", modeAbsoluteXEC, (*CPU).ror},
	0x7F: {"RRA", modeAbsoluteXEC, (*CPU).rra},

	0x80: {"NOP", modeImmediate, (*CPU).nop},
	0x81: {"STA", modeIndirectX, (*CPU).sta},
	0x82: {"NOP", modeImmediate, (*CPU).nop},
	0x83: {"SAX", modeIndirectX, (*CPU).sax},
	0x84: {"STY", modeZeroPage, (*CPU).sty},
	0x85: {"STA", modeZeroPage, (*CPU).sta},
	0x86: {"STX", modeZeroPage, (*CPU).stx},
	0x87: {"SAX", modeZeroPage, (*CPU).sax},
	0x88: {"DEY", modeImplied, (*CPU).dey},
	0x89: {"NOP", modeImmediate, (*CPU).nop},
	0x8A: {"TXA", modeImplied, (*CPU).txa},
	0x8C: {"STY", modeAbsolute, (*CPU).sty},
	0x8D: {"STA", modeAbsolute, (*CPU).sta},
	0x8E: {"STX", modeAbsolute, (*CPU).stx},
	0x8F: {"SAX", modeAbsolute, (*CPU).sax},

	0x90: {"BCC", modeRelative, (*CPU).bcc},
	0x91: {"STA", modeIndirectYEC, (*CPU).sta},
	0x94: {"STY", modeZeroPageX, (*CPU).sty},
	0x95: {"STA", modeZeroPageX, (*CPU).sta},
	0x96: {"STX", modeZeroPageY, (*CPU).stx},
	0x97: {"SAX", modeZeroPageY, (*CPU).sax},
	0x98: {"TYA", modeImplied, (*CPU).tya},
	0x99: {"STA", modeAbsoluteYEC, (*CPU).sta},
	0x9A: {"TXS", modeImplied, (*CPU).txs},
	0x9D: {"STA", modeAbsoluteXEC, (*CPU).sta},

	0xA0: {"LDY", modeImmediate, (*CPU).ldy},
	0xA1: {"LDA", modeIndirectX, (*CPU).lda},
	0xA2: {"LDX", modeImmediate, (*CPU).ldx},
	0xA3: {"LAX", modeIndirectX, (*CPU).lax},
	0xA4: {"LDY", modeZeroPage, (*CPU).ldy},
	0xA5: {"LDA", modeZeroPage, (*CPU).lda},
	0xA6: {"LDX", modeZeroPage, (*CPU).ldx},
	0xA7: {"LAX", modeZeroPage, (*CPU).lax},
	0xA8: {"TAY", modeImplied, (*CPU).tay},
	0xA9: {"LDA", modeImmediate, (*CPU).lda},
	0xAA: {"TAX", modeImplied, (*CPU).tax},
	0xAC: {"LDY", modeAbsolute, (*CPU).ldy},
	0xAD: {"LDA", modeAbsolute, (*CPU).lda},
	0xAE: {"LDX", modeAbsolute, (*CPU).ldx},
	0xAF: {"LAX", modeAbsolute, (*CPU).lax},

	0xB0: {"BCS", modeRelative, (*CPU).bcs},
	0xB1: {"LDA", modeIndirectY, (*CPU).lda},
	0xB3: {"LAX", modeIndirectY, (*CPU).lax},
	0xB4: {"LDY", modeZeroPageX, (*CPU).ldy},
	0xB5: {"LDA", modeZeroPageX, (*CPU).lda},
	0xB6: {"LDX", modeZeroPageY, (*CPU).ldx},
	0xB7: {"LAX", modeZeroPageY, (*CPU).lax},
	0xB8: {"CLV", modeImplied, (*CPU).clv},
	0xB9: {"LDA", modeAbsoluteY, (*CPU).lda},
	0xBA: {"TSX", modeImplied, (*CPU).tsx},
	0xBC: {"LDY", modeAbsoluteX, (*CPU).ldy},
	0xBD: {"LDA", modeAbsoluteX, (*CPU).lda},
	0xBE: {"LDX", modeAbsoluteY, (*CPU).ldx},
	0xBF: {"LAX", modeAbsoluteY, (*CPU).lax},

	0xC0: {"CPY", modeImmediate, (*CPU).cpy},
	0xC1: {"CMP", modeIndirectX, (*CPU).cmp},
	0xC2: {"NOP", modeImmediate, (*CPU).nop},
	0xC3: {"DCP", modeIndirectX, (*CPU).dcp},
	0xC4: {"CPY", modeZeroPage, (*CPU).cpy},
	0xC5: {"CMP", modeZeroPage, (*CPU).cmp},
	0xC6: {"DEC", modeZeroPage, (*CPU).dec},
	0xC7: {"DCP", modeZeroPage, (*CPU).dcp},
	0xC8: {"INY", modeImplied, (*CPU).iny},
	0xC9: {"CMP", modeImmediate, (*CPU).cmp},
	0xCA: {"DEX", modeImplied, (*CPU).dex},
	0xCC: {"CPY", modeAbsolute, (*CPU).cpy},
	0xCD: {"CMP", modeAbsolute, (*CPU).cmp},
	0xCE: {"DEC", modeAbsolute, (*CPU).dec},
	0xCF: {"DCP", modeAbsolute, (*CPU).dcp},

	0xD0: {"BNE", modeRelative, (*CPU).bne},
	0xD1: {"CMP", modeIndirectY, (*CPU).cmp},
	0xD3: {"DCP", modeIndirectYEC, (*CPU).dcp},
	0xD4: {"NOP", modeZeroPageX, (*CPU).nop},
	0xD5: {"CMP", modeZeroPageX, (*CPU).cmp},
	0xD6: {"DEC", modeZeroPageX, (*CPU).dec},
	0xD7: {"DCP", modeZeroPageX, (*CPU).dcp},
	0xD8: {"CLD", modeImplied, (*CPU).cld},
	0xD9: {"CMP", modeAbsoluteY, (*CPU).cmp},
	0xDA: {"NOP", modeImplied, (*CPU).nop},
	0xDB: {"DCP", modeAbsoluteYEC, (*CPU).dcp},
	0xDC: {"NOP", modeAbsoluteX, (*CPU).nop},
	0xDD: {"CMP", modeAbsoluteX, (*CPU).cmp},
	0xDE: {"DEC", modeAbsoluteXEC, (*CPU).dec},
	0xDF: {"DCP", modeAbsoluteXEC, (*CPU).dcp},

	0xE0: {"CPX", modeImmediate, (*CPU).cpx},
	0xE1: {"SBC", modeIndirectX, (*CPU).sbc},
	0xE2: {"NOP", modeImmediate, (*CPU).nop},
	0xE3: {"ISB", modeIndirectX, (*CPU).isb},
	0xE4: {"CPX", modeZeroPage, (*CPU).cpx},
	0xE5: {"SBC", modeZeroPage, (*CPU).sbc},
	0xE6: {"INC", modeZeroPage, (*CPU).inc},
	0xE7: {"ISB", modeZeroPage, (*CPU).isb},
	0xE8: {"INX", modeImplied, (*CPU).inx},
	0xE9: {"SBC", modeImmediate, (*CPU).sbc},
	0xEA: {"NOP", modeImplied, (*CPU).nop},
	0xEB: {"SBC", modeImmediate, (*CPU).sbc},
	0xEC: {"CPX", modeAbsolute, (*CPU).cpx},
	0xED: {"SBC", modeAbsolute, (*CPU).sbc},
	0xEE: {"INC", modeAbsolute, (*CPU).inc},
	0xEF: {"ISB", modeAbsolute, (*CPU).isb},

	0xF0: {"BEQ", modeRelative, (*CPU).beq},
	0xF1: {"SBC", modeIndirectY, (*CPU).sbc},
	0xF3: {"ISB", modeIndirectYEC, (*CPU).isb},
	0xF4: {"NOP", modeZeroPageX, (*CPU).nop},
	0xF5: {"SBC", modeZeroPageX, (*CPU).sbc},
	0xF6: {"INC", modeZeroPageX, (*CPU).inc},
	0xF7: {"ISB", modeZeroPageX, (*CPU).isb},
	0xF8: {"SED", modeImplied, (*CPU).sed},
	0xF9: {"SBC", modeAbsoluteY, (*CPU).sbc},
	0xFA: {"NOP", modeImplied, (*CPU).nop},
	0xFB: {"ISB", modeAbsoluteYEC, (*CPU).isb},
	0xFC: {"NOP", modeAbsoluteX, (*CPU).nop},
	0xFD: {"SBC", modeAbsoluteX, (*CPU).sbc},
	0xFE: {"INC", modeAbsoluteXEC, (*CPU).inc},
	0xFF: {"ISB", modeAbsoluteXEC, (*CPU).isb},
}
