package nes

// CPUState is a snapshot of the CPU taken just before an instruction
// executes (or, in single-step mode, just after). The opcode/mnemonic
// fields describe the instruction being executed.
type CPUState struct {
	PC       uint16
	A        byte
	X        byte
	Y        byte
	SP       byte
	P        byte
	Cycles   uint64
	Opcode   byte
	Mnemonic string
	Mode     string
}

// PPUState is a snapshot of the PPU taken after each dot.
type PPUState struct {
	Dot      int
	Scanline int
	Ctrl     byte
	Mask     byte
	Status   byte
	V        uint16
	T        uint16
	X        byte
	W        byte
	NTByte   byte
	ATByte   byte
	PTLow    byte
	PTHigh   byte
}

// Hooks is the observation surface of the console. Every method may be
// called at very high frequency; implementations should be cheap.
// State pointers are reused between calls and must not be retained.
type Hooks interface {
	// PutPixel fires once per visible dot, in raster order. palette is a
	// 6-bit system palette index.
	PutPixel(x, y int, palette byte)
	// CPUStep fires once per executed instruction (and once per taken NMI).
	CPUStep(s *CPUState)
	// PPUStep fires once per PPU dot.
	PPUStep(s *PPUState)
	// MemFetch and MemWrite fire for every CPU bus access, dummy accesses
	// included, with the effective (post-mirroring) address.
	MemFetch(addr uint16, val byte)
	MemWrite(addr uint16, val byte)
	// Buttons returns the current pad state, one bit per button
	// (A, B, Select, Start, Up, Down, Left, Right from bit 0 up). It is
	// sampled when the game strobes $4016.
	Buttons() byte
}

// NopHooks implements Hooks with no-ops. Embed it to override a subset.
type NopHooks struct{}

func (NopHooks) PutPixel(x, y int, palette byte) {}
func (NopHooks) CPUStep(s *CPUState) {}
func (NopHooks) PPUStep(s *PPUState) {}
func (NopHooks) MemFetch(addr uint16, val byte) {}
func (NopHooks) MemWrite(addr uint16, val byte) {}
func (NopHooks) Buttons() byte { return 0 }
