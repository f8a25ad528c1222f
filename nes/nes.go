package nes

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
)

const inesHeaderSize = 16

var inesSignature = [4]byte{'N', 'E', 'S', 0x1A}

// ErrNES2 rejects NES 2.0 images; only classic iNES headers are handled.
var ErrNES2 = errors.New("NES 2.0 format not supported")

// LoadROM reads and parses an iNES file.
func LoadROM(path string) (*Cartridge, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rom: %w", err)
	}
	return ParseINES(data)
}

// ParseINES parses an iNES image: 16-byte header, optional 512-byte
// trainer, PRG banks of 16KiB, CHR banks of 8KiB. A header with zero CHR
// banks means the cartridge carries 8KiB of CHR RAM instead.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, &TruncatedROM{Want: inesHeaderSize, Got: len(data)}
	}
	var sig [4]byte
	copy(sig[:], data[0:4])
	if sig != inesSignature {
		return nil, &BadSignature{Got: sig}
	}

	prgBanks := data[4]
	chrBanks := data[5]
	flags6 := data[6]
	flags7 := data[7]

	if flags7&0x0C == 0x08 {
		return nil, ErrNES2
	}

	mapper := flags6>>4 | flags7&0xF0
	mirror := flags6 & 1
	if flags6&0x08 != 0 {
		mirror = MirrorFour
	}

	offset := inesHeaderSize
	var trainer []byte
	if flags6&0x04 != 0 {
		if len(data) < offset+512 {
			return nil, &TruncatedROM{Want: offset + 512, Got: len(data)}
		}
		trainer = make([]byte, 512)
		copy(trainer, data[offset:offset+512])
		offset += 512
	}

	prgSize := int(prgBanks) * 0x4000
	chrSize := int(chrBanks) * 0x2000
	if len(data) < offset+prgSize+chrSize {
		return nil, &TruncatedROM{Want: offset + prgSize + chrSize, Got: len(data)}
	}

	prg := make([]byte, prgSize)
	copy(prg, data[offset:offset+prgSize])
	offset += prgSize

	chrRAM := false
	var chr []byte
	if chrBanks == 0 {
		chr = make([]byte, 0x2000)
		chrRAM = true
	} else {
		chr = make([]byte, chrSize)
		copy(chr, data[offset:offset+chrSize])
	}

	cart := NewCartridge(prg, chr, mapper, mirror)
	cart.Trainer = trainer
	cart.CHRBanks = chrBanks
	cart.CHRRAM = chrRAM
	return cart, nil
}

// HexDump writes data as rows of 16 bytes prefixed with the address.
func HexDump(w io.Writer, base uint16, data []byte) error {
	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		if _, err := fmt.Fprintf(w, "%04x:", base+uint16(row)); err != nil {
			return err
		}
		for _, b := range data[row:end] {
			if _, err := fmt.Fprintf(w, " %02x", b); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
