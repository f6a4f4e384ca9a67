package mos6502

// AddrMode is the addressing mode type, exported for the assembler and
// monitor packages; it is an alias for the dispatch table's internal
// mode so the two can never disagree about what an opcode means.
type AddrMode = mode

const (
	AddrImplied     = modeImplied
	AddrAccumulator = modeAccumulator
	AddrImmediate   = modeImmediate
	AddrRelative    = modeRelative
	AddrZeroPage    = modeZeroPage
	AddrZeroPageX   = modeZeroPageX
	AddrZeroPageY   = modeZeroPageY
	AddrIndirectX   = modeIndirectX
	AddrIndirectY   = modeIndirectY
	AddrAbsolute    = modeAbsolute
	AddrAbsoluteX   = modeAbsoluteX
	AddrAbsoluteY   = modeAbsoluteY
	AddrIndirect    = modeIndirect
)

// OpcodeInfo describes one entry of the opcode table, exported for
// callers outside the package (the assembler and disassembler-adjacent
// tooling).
type OpcodeInfo struct {
	Opcode   uint8
	Mnemonic string
	Mode     AddrMode
	Cycles   uint8
	Bytes    int
}

// FindOpcode returns the opcode byte for a mnemonic/mode pair, if one
// exists among the documented opcodes.
func FindOpcode(mnemonic string, m AddrMode) (OpcodeInfo, bool) {
	for op := 0; op < 256; op++ {
		e := jBinary[op]
		if e.mnemonic == mnemonic && e.mode == m {
			return OpcodeInfo{Opcode: uint8(op), Mnemonic: e.mnemonic, Mode: e.mode, Cycles: e.cycles, Bytes: operandBytes(e.mode) + 1}, true
		}
	}
	return OpcodeInfo{}, false
}

// HasMode reports whether mnemonic has an encoding using mode m. Used by
// the assembler to decide whether a Zero-page operand must be promoted to
// Absolute (or Zero-page,Y to Absolute,Y) because no Zero-page form
// exists for that mnemonic.
func HasMode(mnemonic string, m AddrMode) bool {
	_, ok := FindOpcode(mnemonic, m)
	return ok
}

// OperandBytes exports operandBytes for use outside the package.
func OperandBytes(m AddrMode) int { return operandBytes(m) }

// CoverageReport returns the number of documented and undefined entries
// in the dispatch array, for the host's "--check-opcodes" diagnostic.
func CoverageReport() (documented, undefined int) {
	for op := 0; op < 256; op++ {
		if jBinary[op].mnemonic == "BAD" {
			undefined++
		} else {
			documented++
		}
	}
	return documented, undefined
}
