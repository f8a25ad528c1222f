package nes

const frameCounterRate = 240.0

var lengthTable = [32]byte{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

var triangleTable = [32]byte{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

var noiseTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var dmcTable = [16]byte{
	214, 190, 170, 160, 143, 127, 113, 107, 95, 80, 71, 64, 53, 42, 36, 27,
}

var dutyTable = [4][8]byte{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// mixer lookup, nonlinear DAC response
var pulseMix [31]float32
var tndMix [203]float32

func init() {
	for i := 1; i < 31; i++ {
		pulseMix[i] = 95.52 / (8128.0/float32(i) + 100)
	}
	for i := 1; i < 203; i++ {
		tndMix[i] = 163.67 / (24329.0/float32(i) + 100)
	}
}

// APU holds the five sound channels and the frame counter. It is clocked
// once per CPU cycle by the bus; sample output goes through the output
// callback at the configured sample rate.
type APU struct {
	output          func(float32)
	cyclesPerSample float64
	cycle           uint64
	frameCycle      uint64

	pulse1   pulse
	pulse2   pulse
	triangle triangle
	noise    noise
	dmc      dmc

	frameMode    byte // 0: 4-step, 1: 5-step
	frameIRQOff  byte
	frameIRQ     byte
	frameCounter uint64
}

func NewAPU() *APU {
	apu := &APU{}
	apu.noise.shift = 1
	apu.pulse1.channel = 1
	apu.pulse2.channel = 2
	return apu
}

// SetOutput installs the sample sink and the sample rate in Hz.
func (apu *APU) SetOutput(sampleRate float64, fn func(float32)) {
	apu.cyclesPerSample = CPUFrequency / sampleRate
	apu.output = fn
}

// SetDMCReader gives the delta channel its memory access.
func (apu *APU) SetDMCReader(read func(uint16) byte) {
	apu.dmc.read = read
}

func (apu *APU) Step() {
	apu.stepTimers()

	if float64(apu.cycle-apu.frameCycle) >= CPUFrequency/frameCounterRate {
		apu.stepFrameCounter()
		apu.frameCycle = apu.cycle
	}

	if apu.output != nil && apu.cyclesPerSample > 0 {
		s1 := int(float64(apu.cycle) / apu.cyclesPerSample)
		s2 := int(float64(apu.cycle+1) / apu.cyclesPerSample)
		if s1 != s2 {
			apu.output(apu.mix())
		}
	}
	apu.cycle++
}

func (apu *APU) stepTimers() {
	// the pulse, noise and DMC dividers run at half the CPU clock
	if apu.cycle%2 == 0 {
		apu.pulse1.stepTimer()
		apu.pulse2.stepTimer()
		apu.noise.stepTimer()
		apu.dmc.stepTimer()
	}
	apu.triangle.stepTimer()
}

func (apu *APU) stepFrameCounter() {
	if apu.frameMode == 0 {
		apu.stepEnvelopes()
		switch apu.frameCounter % 4 {
		case 1:
			apu.stepLengths()
			apu.stepSweeps()
		case 3:
			apu.stepLengths()
			apu.stepSweeps()
			if apu.frameIRQOff == 0 {
				apu.frameIRQ = 1
			}
		}
	} else {
		switch apu.frameCounter % 5 {
		case 0, 2:
			apu.stepEnvelopes()
			apu.stepLengths()
			apu.stepSweeps()
		case 1, 3:
			apu.stepEnvelopes()
		}
	}
	apu.frameCounter++
}

func (apu *APU) stepEnvelopes() {
	apu.pulse1.stepEnvelope()
	apu.pulse2.stepEnvelope()
	apu.noise.stepEnvelope()
	apu.triangle.stepLinear()
}

func (apu *APU) stepLengths() {
	apu.pulse1.stepLength()
	apu.pulse2.stepLength()
	apu.triangle.stepLength()
	apu.noise.stepLength()
}

func (apu *APU) stepSweeps() {
	apu.pulse1.stepSweep()
	apu.pulse2.stepSweep()
}

func (apu *APU) mix() float32 {
	p1 := apu.pulse1.output()
	p2 := apu.pulse2.output()
	t := apu.triangle.output()
	n := apu.noise.output()
	d := apu.dmc.value
	return pulseMix[p1+p2] + tndMix[3*t+2*n+d]
}

func (apu *APU) WriteRegister(addr uint16, value byte) {
	switch addr {
	case 0x4000:
		apu.pulse1.writeControl(value)
	case 0x4001:
		apu.pulse1.writeSweep(value)
	case 0x4002:
		apu.pulse1.writeTimerLow(value)
	case 0x4003:
		apu.pulse1.writeTimerHigh(value)
	case 0x4004:
		apu.pulse2.writeControl(value)
	case 0x4005:
		apu.pulse2.writeSweep(value)
	case 0x4006:
		apu.pulse2.writeTimerLow(value)
	case 0x4007:
		apu.pulse2.writeTimerHigh(value)
	case 0x4008:
		apu.triangle.writeLinearControl(value)
	case 0x400A:
		apu.triangle.writePeriodLow(value)
	case 0x400B:
		apu.triangle.writePeriodHigh(value)
	case 0x400C:
		apu.noise.writeEnvelope(value)
	case 0x400E:
		apu.noise.writePeriod(value)
	case 0x400F:
		apu.noise.writeLength(value)
	case 0x4010:
		apu.dmc.writeControl(value)
	case 0x4011:
		apu.dmc.writeValue(value)
	case 0x4012:
		apu.dmc.writeSampleAddress(value)
	case 0x4013:
		apu.dmc.writeSampleLength(value)
	case 0x4015:
		apu.writeStatus(value)
	case 0x4017:
		apu.writeFrameCounter(value)
	}
}

// ReadRegister serves $4015, the only readable APU register.
func (apu *APU) ReadRegister(addr uint16) byte {
	if addr != 0x4015 {
		return 0
	}
	var status byte
	status |= apu.dmc.irq << 7
	status |= apu.frameIRQ << 6
	if apu.dmc.currentLength > 0 {
		status |= 1 << 4
	}
	if apu.noise.lengthValue > 0 {
		status |= 1 << 3
	}
	if apu.triangle.lengthValue > 0 {
		status |= 1 << 2
	}
	if apu.pulse2.lengthValue > 0 {
		status |= 1 << 1
	}
	if apu.pulse1.lengthValue > 0 {
		status |= 1
	}
	apu.frameIRQ = 0
	return status
}

func (apu *APU) writeStatus(value byte) {
	apu.pulse1.enabled = value&0x01 != 0
	apu.pulse2.enabled = value&0x02 != 0
	apu.triangle.enabled = value&0x04 != 0
	apu.noise.enabled = value&0x08 != 0
	apu.dmc.enabled = value&0x10 != 0

	if !apu.pulse1.enabled {
		apu.pulse1.lengthValue = 0
	}
	if !apu.pulse2.enabled {
		apu.pulse2.lengthValue = 0
	}
	if !apu.triangle.enabled {
		apu.triangle.lengthValue = 0
	}
	if !apu.noise.enabled {
		apu.noise.lengthValue = 0
	}
	if !apu.dmc.enabled {
		apu.dmc.currentLength = 0
	} else if apu.dmc.currentLength == 0 {
		apu.dmc.restart()
	}
	apu.dmc.irq = 0
}

func (apu *APU) writeFrameCounter(value byte) {
	apu.frameMode = value >> 7 & 1
	apu.frameIRQOff = value >> 6 & 1
	if apu.frameIRQOff == 1 {
		apu.frameIRQ = 0
	}
	if apu.frameMode == 1 {
		apu.stepEnvelopes()
		apu.stepSweeps()
		apu.stepLengths()
	}
}

// pulse is one of the two square channels: timer, duty sequencer,
// envelope, sweep and length counter.
type pulse struct {
	enabled bool
	channel byte

	dutyMode  byte
	dutyValue byte

	timerPeriod uint16
	timerValue  uint16

	lengthHalt  bool
	lengthValue byte

	envelopeEnabled bool
	envelopeLoop    bool
	envelopeStart   bool
	envelopePeriod  byte
	envelopeValue   byte
	envelopeVolume  byte
	constantVolume  byte

	sweepEnabled bool
	sweepPeriod  byte
	sweepNegate  bool
	sweepShift   byte
	sweepValue   byte
	sweepReload  bool
}

func (p *pulse) writeControl(value byte) {
	p.dutyMode = value >> 6 & 3
	p.envelopeLoop = value&0x20 != 0
	p.lengthHalt = value&0x20 != 0
	p.envelopeEnabled = value&0x10 == 0
	p.envelopePeriod = value & 0x0F
	p.constantVolume = value & 0x0F
	p.envelopeStart = true
}

func (p *pulse) writeSweep(value byte) {
	p.sweepEnabled = value&0x80 != 0
	p.sweepPeriod = value >> 4 & 7
	p.sweepNegate = value&0x08 != 0
	p.sweepShift = value & 7
	p.sweepReload = true
}

func (p *pulse) writeTimerLow(value byte) {
	p.timerPeriod = p.timerPeriod&0xFF00 | uint16(value)
}

func (p *pulse) writeTimerHigh(value byte) {
	p.timerPeriod = p.timerPeriod&0x00FF | uint16(value&7)<<8
	p.lengthValue = lengthTable[value>>3]
	p.envelopeStart = true
	p.dutyValue = 0
}

func (p *pulse) stepTimer() {
	if p.timerValue == 0 {
		p.timerValue = p.timerPeriod
		p.dutyValue = (p.dutyValue + 1) % 8
	} else {
		p.timerValue--
	}
}

func (p *pulse) stepEnvelope() {
	if p.envelopeStart {
		p.envelopeVolume = 15
		p.envelopeValue = p.envelopePeriod
		p.envelopeStart = false
	} else if p.envelopeValue > 0 {
		p.envelopeValue--
	} else {
		if p.envelopeLoop {
			p.envelopeVolume = 15
		} else if p.envelopeVolume > 0 {
			p.envelopeVolume--
		}
		p.envelopeValue = p.envelopePeriod
	}
}

func (p *pulse) stepSweep() {
	if p.sweepReload {
		if p.sweepEnabled && p.sweepValue == 0 {
			p.sweep()
		}
		p.sweepValue = p.sweepPeriod
		p.sweepReload = false
	} else if p.sweepValue > 0 {
		p.sweepValue--
	} else {
		if p.sweepEnabled {
			p.sweep()
		}
		p.sweepValue = p.sweepPeriod
	}
}

func (p *pulse) sweep() {
	delta := p.timerPeriod >> p.sweepShift
	if p.sweepNegate {
		p.timerPeriod -= delta
		// channel 1 negates with one's complement
		if p.channel == 1 {
			p.timerPeriod--
		}
	} else {
		p.timerPeriod += delta
	}
}

func (p *pulse) stepLength() {
	if !p.lengthHalt && p.lengthValue > 0 {
		p.lengthValue--
	}
}

func (p *pulse) output() byte {
	if !p.enabled || p.lengthValue == 0 {
		return 0
	}
	if dutyTable[p.dutyMode][p.dutyValue] == 0 {
		return 0
	}
	if p.timerPeriod < 8 || p.timerPeriod > 0x7FF {
		return 0
	}
	if p.envelopeEnabled {
		return p.envelopeVolume
	}
	return p.constantVolume
}

type triangle struct {
	enabled bool

	timerPeriod uint16
	timerValue  uint16
	dutyValue   byte

	lengthHalt  bool
	lengthValue byte

	linearValue  byte
	linearReload byte
	linearStart  bool
}

func (t *triangle) writeLinearControl(value byte) {
	t.lengthHalt = value&0x80 != 0
	t.linearReload = value & 0x7F
}

func (t *triangle) writePeriodLow(value byte) {
	t.timerPeriod = t.timerPeriod&0xFF00 | uint16(value)
}

func (t *triangle) writePeriodHigh(value byte) {
	t.timerPeriod = t.timerPeriod&0x00FF | uint16(value&7)<<8
	t.lengthValue = lengthTable[value>>3]
	t.linearStart = true
	t.dutyValue = 0
}

func (t *triangle) stepTimer() {
	if t.timerValue == 0 {
		t.timerValue = t.timerPeriod
		if t.lengthValue > 0 && t.linearValue > 0 {
			t.dutyValue = (t.dutyValue + 1) % 32
		}
	} else {
		t.timerValue--
	}
}

func (t *triangle) stepLength() {
	if !t.lengthHalt && t.lengthValue > 0 {
		t.lengthValue--
	}
}

func (t *triangle) stepLinear() {
	if t.linearStart {
		t.linearValue = t.linearReload
	} else if t.linearValue > 0 {
		t.linearValue--
	}
	if !t.lengthHalt {
		t.linearStart = false
	}
}

func (t *triangle) output() byte {
	if !t.enabled || t.lengthValue == 0 || t.linearValue == 0 {
		return 0
	}
	return triangleTable[t.dutyValue]
}

type noise struct {
	enabled   bool
	shortMode bool
	shift     uint16 // 15-bit LFSR

	timerPeriod uint16
	timerValue  uint16

	lengthHalt  bool
	lengthValue byte

	envelopeEnabled bool
	envelopeLoop    bool
	envelopeStart   bool
	envelopePeriod  byte
	envelopeValue   byte
	envelopeVolume  byte
	constantVolume  byte
}

func (n *noise) writeEnvelope(value byte) {
	n.lengthHalt = value&0x20 != 0
	n.envelopeLoop = value&0x20 != 0
	n.envelopeEnabled = value&0x10 == 0
	n.envelopePeriod = value & 0x0F
	n.constantVolume = value & 0x0F
	n.envelopeStart = true
}

func (n *noise) writePeriod(value byte) {
	n.shortMode = value&0x80 != 0
	n.timerPeriod = noiseTable[value&0x0F]
}

func (n *noise) writeLength(value byte) {
	n.lengthValue = lengthTable[value>>3&0x1F]
}

func (n *noise) stepTimer() {
	if n.timerValue == 0 {
		n.timerValue = n.timerPeriod
		var tap uint16
		if n.shortMode {
			tap = n.shift >> 6
		} else {
			tap = n.shift >> 1
		}
		bit := (n.shift ^ tap) & 1
		n.shift = n.shift>>1 | bit<<14
	} else {
		n.timerValue--
	}
}

func (n *noise) stepEnvelope() {
	if n.envelopeStart {
		n.envelopeVolume = 15
		n.envelopeValue = n.envelopePeriod
		n.envelopeStart = false
	} else if n.envelopeValue > 0 {
		n.envelopeValue--
	} else {
		if n.envelopeLoop {
			n.envelopeVolume = 15
		} else if n.envelopeVolume > 0 {
			n.envelopeVolume--
		}
		n.envelopeValue = n.envelopePeriod
	}
}

func (n *noise) stepLength() {
	if !n.lengthHalt && n.lengthValue > 0 {
		n.lengthValue--
	}
}

func (n *noise) output() byte {
	if !n.enabled || n.lengthValue == 0 {
		return 0
	}
	if n.shift&1 == 1 {
		return 0
	}
	if n.envelopeEnabled {
		return n.envelopeVolume
	}
	return n.constantVolume
}

// dmc plays delta-coded samples fetched straight from the CPU address
// space via the injected reader.
type dmc struct {
	enabled bool
	read    func(uint16) byte

	value byte // 7-bit DAC level

	sampleAddress  uint16
	sampleLength   uint16
	currentAddress uint16
	currentLength  uint16

	shiftRegister byte
	bitCount      byte
	tickPeriod    byte
	tickValue     byte

	loop  bool
	irqOn bool
	irq   byte
}

func (d *dmc) writeControl(value byte) {
	d.irqOn = value&0x80 != 0
	d.loop = value&0x40 != 0
	d.tickPeriod = dmcTable[value&0x0F]
	if !d.irqOn {
		d.irq = 0
	}
}

func (d *dmc) writeValue(value byte) {
	d.value = value & 0x7F
}

func (d *dmc) writeSampleAddress(value byte) {
	// %11AAAAAA.AA000000
	d.sampleAddress = 0xC000 | uint16(value)<<6
}

func (d *dmc) writeSampleLength(value byte) {
	// %LLLL.LLLL0001
	d.sampleLength = uint16(value)<<4 | 1
}

func (d *dmc) restart() {
	d.currentAddress = d.sampleAddress
	d.currentLength = d.sampleLength
}

func (d *dmc) stepTimer() {
	if !d.enabled {
		return
	}
	d.stepReader()
	if d.tickValue == 0 {
		d.tickValue = d.tickPeriod
		d.stepShifter()
	} else {
		d.tickValue--
	}
}

func (d *dmc) stepReader() {
	if d.currentLength == 0 || d.bitCount != 0 || d.read == nil {
		return
	}
	d.shiftRegister = d.read(d.currentAddress)
	d.bitCount = 8
	d.currentAddress++
	if d.currentAddress == 0 {
		d.currentAddress = 0x8000
	}
	d.currentLength--
	if d.currentLength == 0 {
		if d.loop {
			d.restart()
		} else if d.irqOn {
			d.irq = 1
		}
	}
}

func (d *dmc) stepShifter() {
	if d.bitCount == 0 {
		return
	}
	if d.shiftRegister&1 == 1 {
		if d.value <= 125 {
			d.value += 2
		}
	} else if d.value >= 2 {
		d.value -= 2
	}
	d.shiftRegister >>= 1
	d.bitCount--
}
