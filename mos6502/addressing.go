package mos6502

// mode names one of the closed set of 6502 addressing modes.
type mode uint8

const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeIndirectX // (Zero-page,X)
	modeIndirectY // (Zero-page),Y
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
)

// operand carries the result of resolving an addressing mode: either an
// effective address to read/write, an immediate value, or a flag marking
// the accumulator as the operand location. Exactly one of these is
// meaningful per mode.
type operand struct {
	addr  uint16
	value uint8
	isAcc bool
}

// resolve reads the operand bytes for m from PC (advancing PC) and
// returns the effective address, immediate value, or accumulator flag.
// Index arithmetic in zero-page modes wraps within page 0 by virtue of
// uint8 addition; index arithmetic in absolute modes is 16-bit and
// carries into the high byte, per §4.3.
func (c *CPU) resolve(m mode) operand {
	switch m {
	case modeImplied:
		return operand{}
	case modeAccumulator:
		return operand{isAcc: true}
	case modeImmediate:
		return operand{value: c.fetch()}
	case modeRelative:
		off := int8(c.fetch())
		return operand{addr: uint16(int32(c.pc) + int32(off))}
	case modeZeroPage:
		return operand{addr: uint16(c.fetch())}
	case modeZeroPageX:
		return operand{addr: uint16(c.fetch() + c.x)}
	case modeZeroPageY:
		return operand{addr: uint16(c.fetch() + c.y)}
	case modeIndirectX:
		zp := c.fetch() + c.x
		return operand{addr: read16ZP(c.readMem, zp)}
	case modeIndirectY:
		zp := c.fetch()
		base := read16ZP(c.readMem, zp)
		return operand{addr: base + uint16(c.y)}
	case modeAbsolute:
		return operand{addr: c.fetchAbs()}
	case modeAbsoluteX:
		return operand{addr: c.fetchAbs() + uint16(c.x)}
	case modeAbsoluteY:
		return operand{addr: c.fetchAbs() + uint16(c.y)}
	case modeIndirect:
		ptr := c.fetchAbs()
		return operand{addr: Read16(c.readMem, ptr)}
	}
	return operand{}
}

// fetchAbs reads a little-endian 16-bit absolute operand from PC,
// advancing PC by two.
func (c *CPU) fetchAbs() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// load returns the byte an operand designates: the immediate value, the
// accumulator, or the byte at the effective address.
func (c *CPU) load(m mode, o operand) uint8 {
	switch {
	case m == modeImmediate:
		return o.value
	case o.isAcc:
		return c.acc
	default:
		return c.readMem.Read(o.addr)
	}
}

// store writes val to the location an operand designates: the
// accumulator or the effective address.
func (c *CPU) store(o operand, val uint8) {
	if o.isAcc {
		c.acc = val
	} else {
		c.writeMem.Write(o.addr, val)
	}
}

// operandBytes returns the number of bytes a mode consumes from the
// instruction stream after the opcode byte, used by the assembler and
// disassembler.
func operandBytes(m mode) int {
	switch m {
	case modeImplied, modeAccumulator:
		return 0
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return 2
	default:
		return 1
	}
}
