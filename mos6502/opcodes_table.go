package mos6502

// opcodeEntry is one entry of a dispatch array: the numeric opcode's
// nominal cycle cost, addressing mode, and specialized handler. mnemonic
// is carried for the assembler and disassembler, which share this table
// so their notion of "what an opcode means" can never drift from what
// the dispatch loop actually does.
type opcodeEntry struct {
	mnemonic string
	mode     mode
	cycles   uint8
	handler  opFunc
}

// jBinary and jDecimal are the two 256-entry dispatch arrays described by
// the specification. They are identical except for the ADC and SBC
// opcodes, which jDecimal maps to the decimal-corrected handlers.
// SED/CLD and any write to P that changes the D bit swap the CPU's active
// pointer between them.
var (
	jBinary  [256]opcodeEntry
	jDecimal [256]opcodeEntry
)

type opcodeSpec struct {
	op       uint8
	mnemonic string
	mode     mode
	cycles   uint8
	fn       opFunc
}

// officialOpcodes lists every documented MOS 6502 opcode. Bytes not
// listed here dispatch to a deterministic 2-cycle no-op (see init below),
// which is this implementation's documented choice for undefined
// opcodes.
var officialOpcodes = []opcodeSpec{
	{0x00, "BRK", modeImplied, 7, opBRK},
	{0x01, "ORA", modeIndirectX, 6, opORA},
	{0x05, "ORA", modeZeroPage, 3, opORA},
	{0x06, "ASL", modeZeroPage, 5, opASL},
	{0x08, "PHP", modeImplied, 3, opPHP},
	{0x09, "ORA", modeImmediate, 2, opORA},
	{0x0A, "ASL", modeAccumulator, 2, opASL},
	{0x0D, "ORA", modeAbsolute, 4, opORA},
	{0x0E, "ASL", modeAbsolute, 6, opASL},

	{0x10, "BPL", modeRelative, 2, opBPL},
	{0x11, "ORA", modeIndirectY, 5, opORA},
	{0x15, "ORA", modeZeroPageX, 4, opORA},
	{0x16, "ASL", modeZeroPageX, 6, opASL},
	{0x18, "CLC", modeImplied, 2, opCLC},
	{0x19, "ORA", modeAbsoluteY, 4, opORA},
	{0x1D, "ORA", modeAbsoluteX, 4, opORA},
	{0x1E, "ASL", modeAbsoluteX, 7, opASL},

	{0x20, "JSR", modeAbsolute, 6, opJSR},
	{0x21, "AND", modeIndirectX, 6, opAND},
	{0x24, "BIT", modeZeroPage, 3, opBIT},
	{0x25, "AND", modeZeroPage, 3, opAND},
	{0x26, "ROL", modeZeroPage, 5, opROL},
	{0x28, "PLP", modeImplied, 4, opPLP},
	{0x29, "AND", modeImmediate, 2, opAND},
	{0x2A, "ROL", modeAccumulator, 2, opROL},
	{0x2C, "BIT", modeAbsolute, 4, opBIT},
	{0x2D, "AND", modeAbsolute, 4, opAND},
	{0x2E, "ROL", modeAbsolute, 6, opROL},

	{0x30, "BMI", modeRelative, 2, opBMI},
	{0x31, "AND", modeIndirectY, 5, opAND},
	{0x35, "AND", modeZeroPageX, 4, opAND},
	{0x36, "ROL", modeZeroPageX, 6, opROL},
	{0x38, "SEC", modeImplied, 2, opSEC},
	{0x39, "AND", modeAbsoluteY, 4, opAND},
	{0x3D, "AND", modeAbsoluteX, 4, opAND},
	{0x3E, "ROL", modeAbsoluteX, 7, opROL},

	{0x40, "RTI", modeImplied, 6, opRTI},
	{0x41, "EOR", modeIndirectX, 6, opEOR},
	{0x45, "EOR", modeZeroPage, 3, opEOR},
	{0x46, "LSR", modeZeroPage, 5, opLSR},
	{0x48, "PHA", modeImplied, 3, opPHA},
	{0x49, "EOR", modeImmediate, 2, opEOR},
	{0x4A, "LSR", modeAccumulator, 2, opLSR},
	{0x4C, "JMP", modeAbsolute, 3, opJMP},
	{0x4D, "EOR", modeAbsolute, 4, opEOR},
	{0x4E, "LSR", modeAbsolute, 6, opLSR},

	{0x50, "BVC", modeRelative, 2, opBVC},
	{0x51, "EOR", modeIndirectY, 5, opEOR},
	{0x55, "EOR", modeZeroPageX, 4, opEOR},
	{0x56, "LSR", modeZeroPageX, 6, opLSR},
	{0x58, "CLI", modeImplied, 2, opCLI},
	{0x59, "EOR", modeAbsoluteY, 4, opEOR},
	{0x5D, "EOR", modeAbsoluteX, 4, opEOR},
	{0x5E, "LSR", modeAbsoluteX, 7, opLSR},

	{0x60, "RTS", modeImplied, 6, opRTS},
	{0x61, "ADC", modeIndirectX, 6, opADC},
	{0x65, "ADC", modeZeroPage, 3, opADC},
	{0x66, "ROR", modeZeroPage, 5, opROR},
	{0x68, "PLA", modeImplied, 4, opPLA},
	{0x69, "ADC", modeImmediate, 2, opADC},
	{0x6A, "ROR", modeAccumulator, 2, opROR},
	{0x6C, "JMP", modeIndirect, 5, opJMP},
	{0x6D, "ADC", modeAbsolute, 4, opADC},
	{0x6E, "ROR", modeAbsolute, 6, opROR},

	{0x70, "BVS", modeRelative, 2, opBVS},
	{0x71, "ADC", modeIndirectY, 5, opADC},
	{0x75, "ADC", modeZeroPageX, 4, opADC},
	{0x76, "ROR", modeZeroPageX, 6, opROR},
	{0x78, "SEI", modeImplied, 2, opSEI},
	{0x79, "ADC", modeAbsoluteY, 4, opADC},
	{0x7D, "ADC", modeAbsoluteX, 4, opADC},
	{0x7E, "ROR", modeAbsoluteX, 7, opROR},

	{0x81, "STA", modeIndirectX, 6, opSTA},
	{0x84, "STY", modeZeroPage, 3, opSTY},
	{0x85, "STA", modeZeroPage, 3, opSTA},
	{0x86, "STX", modeZeroPage, 3, opSTX},
	{0x88, "DEY", modeImplied, 2, opDEY},
	{0x8A, "TXA", modeImplied, 2, opTXA},
	{0x8C, "STY", modeAbsolute, 4, opSTY},
	{0x8D, "STA", modeAbsolute, 4, opSTA},
	{0x8E, "STX", modeAbsolute, 4, opSTX},

	{0x90, "BCC", modeRelative, 2, opBCC},
	{0x91, "STA", modeIndirectY, 6, opSTA},
	{0x94, "STY", modeZeroPageX, 4, opSTY},
	{0x95, "STA", modeZeroPageX, 4, opSTA},
	{0x96, "STX", modeZeroPageY, 4, opSTX},
	{0x98, "TYA", modeImplied, 2, opTYA},
	{0x99, "STA", modeAbsoluteY, 5, opSTA},
	{0x9A, "TXS", modeImplied, 2, opTXS},
	{0x9D, "STA", modeAbsoluteX, 5, opSTA},

	{0xA0, "LDY", modeImmediate, 2, opLDY},
	{0xA1, "LDA", modeIndirectX, 6, opLDA},
	{0xA2, "LDX", modeImmediate, 2, opLDX},
	{0xA4, "LDY", modeZeroPage, 3, opLDY},
	{0xA5, "LDA", modeZeroPage, 3, opLDA},
	{0xA6, "LDX", modeZeroPage, 3, opLDX},
	{0xA8, "TAY", modeImplied, 2, opTAY},
	{0xA9, "LDA", modeImmediate, 2, opLDA},
	{0xAA, "TAX", modeImplied, 2, opTAX},
	{0xAC, "LDY", modeAbsolute, 4, opLDY},
	{0xAD, "LDA", modeAbsolute, 4, opLDA},
	{0xAE, "LDX", modeAbsolute, 4, opLDX},

	{0xB0, "BCS", modeRelative, 2, opBCS},
	{0xB1, "LDA", modeIndirectY, 5, opLDA},
	{0xB4, "LDY", modeZeroPageX, 4, opLDY},
	{0xB5, "LDA", modeZeroPageX, 4, opLDA},
	{0xB6, "LDX", modeZeroPageY, 4, opLDX},
	{0xB8, "CLV", modeImplied, 2, opCLV},
	{0xB9, "LDA", modeAbsoluteY, 4, opLDA},
	{0xBA, "TSX", modeImplied, 2, opTSX},
	{0xBC, "LDY", modeAbsoluteX, 4, opLDY},
	{0xBD, "LDA", modeAbsoluteX, 4, opLDA},
	{0xBE, "LDX", modeAbsoluteY, 4, opLDX},

	{0xC0, "CPY", modeImmediate, 2, opCPY},
	{0xC1, "CMP", modeIndirectX, 6, opCMP},
	{0xC4, "CPY", modeZeroPage, 3, opCPY},
	{0xC5, "CMP", modeZeroPage, 3, opCMP},
	{0xC6, "DEC", modeZeroPage, 5, opDEC},
	{0xC8, "INY", modeImplied, 2, opINY},
	{0xC9, "CMP", modeImmediate, 2, opCMP},
	{0xCA, "DEX", modeImplied, 2, opDEX},
	{0xCC, "CPY", modeAbsolute, 4, opCPY},
	{0xCD, "CMP", modeAbsolute, 4, opCMP},
	{0xCE, "DEC", modeAbsolute, 6, opDEC},

	{0xD0, "BNE", modeRelative, 2, opBNE},
	{0xD1, "CMP", modeIndirectY, 5, opCMP},
	{0xD5, "CMP", modeZeroPageX, 4, opCMP},
	{0xD6, "DEC", modeZeroPageX, 6, opDEC},
	{0xD8, "CLD", modeImplied, 2, opCLD},
	{0xD9, "CMP", modeAbsoluteY, 4, opCMP},
	{0xDD, "CMP", modeAbsoluteX, 4, opCMP},
	{0xDE, "DEC", modeAbsoluteX, 7, opDEC},

	{0xE0, "CPX", modeImmediate, 2, opCPX},
	{0xE1, "SBC", modeIndirectX, 6, opSBC},
	{0xE4, "CPX", modeZeroPage, 3, opCPX},
	{0xE5, "SBC", modeZeroPage, 3, opSBC},
	{0xE6, "INC", modeZeroPage, 5, opINC},
	{0xE8, "INX", modeImplied, 2, opINX},
	{0xE9, "SBC", modeImmediate, 2, opSBC},
	{0xEA, "NOP", modeImplied, 2, opNOP},
	{0xEC, "CPX", modeAbsolute, 4, opCPX},
	{0xED, "SBC", modeAbsolute, 4, opSBC},
	{0xEE, "INC", modeAbsolute, 6, opINC},

	{0xF0, "BEQ", modeRelative, 2, opBEQ},
	{0xF1, "SBC", modeIndirectY, 5, opSBC},
	{0xF5, "SBC", modeZeroPageX, 4, opSBC},
	{0xF6, "INC", modeZeroPageX, 6, opINC},
	{0xF8, "SED", modeImplied, 2, opSED},
	{0xF9, "SBC", modeAbsoluteY, 4, opSBC},
	{0xFD, "SBC", modeAbsoluteX, 4, opSBC},
	{0xFE, "INC", modeAbsoluteX, 7, opINC},
}

// decimalOverrides maps the opcode bytes whose behavior differs between
// jBinary and jDecimal to their decimal-mode handler.
var decimalOverrides = map[uint8]opFunc{
	0x61: opADCDecimal, 0x65: opADCDecimal, 0x69: opADCDecimal,
	0x6D: opADCDecimal, 0x71: opADCDecimal, 0x75: opADCDecimal,
	0x79: opADCDecimal, 0x7D: opADCDecimal,
	0xE1: opSBCDecimal, 0xE5: opSBCDecimal, 0xE9: opSBCDecimal,
	0xED: opSBCDecimal, 0xF1: opSBCDecimal, 0xF5: opSBCDecimal,
	0xF9: opSBCDecimal, 0xFD: opSBCDecimal,
}

func init() {
	for i := range jBinary {
		jBinary[i] = opcodeEntry{mnemonic: "BAD", mode: modeImplied, cycles: 2, handler: opNOP}
	}
	for _, s := range officialOpcodes {
		jBinary[s.op] = opcodeEntry{mnemonic: s.mnemonic, mode: s.mode, cycles: s.cycles, handler: s.fn}
	}

	jDecimal = jBinary
	for op, fn := range decimalOverrides {
		e := jDecimal[op]
		e.handler = fn
		jDecimal[op] = e
	}
}
