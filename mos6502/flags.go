package mos6502

// Processor status bits, bit 7 .. bit 0: S V - B D I Z C.
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // Interrupt disable
	FlagD uint8 = 1 << 3 // Decimal mode
	FlagB uint8 = 1 << 4 // Break (only meaningful in a pushed copy)
	flag5 uint8 = 1 << 5 // unused, always reads 1
	FlagV uint8 = 1 << 6 // Overflow
	FlagS uint8 = 1 << 7 // Sign (negative)
)

func (c *CPU) getFlag(mask uint8) bool {
	return c.p&mask != 0
}

func (c *CPU) setFlag(mask uint8, on bool) {
	if on {
		c.p |= mask
	} else {
		c.p &^= mask
	}
}

// setSZ sets S and Z from the low byte of result, leaving the rest of P
// untouched.
func (c *CPU) setSZ(result uint8) {
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagS, result&0x80 != 0)
}

// setSZC additionally sets C from bit 8 of a 9-bit result.
func (c *CPU) setSZC(result uint16) {
	c.setSZ(uint8(result))
	c.setFlag(FlagC, result&0x100 != 0)
}

// setSZCV sets S, Z, C and V for an additive operation. a is the
// accumulator value before the operation, operand is the value added to
// it (already inverted by the caller for SBC), result is the full,
// untruncated sum.
func (c *CPU) setSZCV(result uint16, a, operand uint8) {
	c.setSZC(result)
	r8 := uint8(result)
	v := (^(a ^ operand) & (a ^ r8)) >> 1 & 0x40
	c.setFlag(FlagV, v != 0)
}

// GetP returns P with bits 4 and 5 forced to 1.
func (c *CPU) GetP() uint8 {
	return c.p | FlagB | flag5
}

// SetP stores b as P with bits 4 and 5 forced to 1. If the D bit changes,
// the active dispatch array is swapped between binary and decimal.
func (c *CPU) SetP(b uint8) {
	was := c.p & FlagD
	c.p = b | FlagB | flag5
	if c.p&FlagD != was {
		c.swapDispatch()
	}
}

func (c *CPU) swapDispatch() {
	if c.p&FlagD != 0 {
		c.active = &jDecimal
	} else {
		c.active = &jBinary
	}
}
