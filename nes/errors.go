package nes

import "fmt"

// BadSignature reports a ROM whose first four bytes are not "NES\x1A".
type BadSignature struct {
	Got [4]byte
}

func (e *BadSignature) Error() string {
	return fmt.Sprintf("bad iNES signature: % 02x", e.Got[:])
}

// MapperUnsupported reports a cartridge whose mapper is not implemented.
type MapperUnsupported struct {
	Mapper byte
}

func (e *MapperUnsupported) Error() string {
	return fmt.Sprintf("mapper %d not supported", e.Mapper)
}

// BadPRGROMSize reports a PRG ROM bank count the mapper cannot take.
type BadPRGROMSize struct {
	Banks byte
}

func (e *BadPRGROMSize) Error() string {
	return fmt.Sprintf("bad PRG ROM size: %d x 16KiB", e.Banks)
}

// BadCHRROMSize reports a CHR ROM bank count the mapper cannot take.
type BadCHRROMSize struct {
	Banks byte
}

func (e *BadCHRROMSize) Error() string {
	return fmt.Sprintf("bad CHR ROM size: %d x 8KiB", e.Banks)
}

// IllegalOpcode reports an opcode with no handler in the dispatch table.
type IllegalOpcode struct {
	Opcode byte
	PC     uint16
}

func (e *IllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode %02x at %04x", e.Opcode, e.PC)
}

// TruncatedROM reports a ROM image shorter than its header promises.
type TruncatedROM struct {
	Want, Got int
}

func (e *TruncatedROM) Error() string {
	return fmt.Sprintf("truncated ROM: want %d bytes, got %d", e.Want, e.Got)
}
