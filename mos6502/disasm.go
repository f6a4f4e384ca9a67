package mos6502

import "fmt"

// Disassemble decodes the single instruction at addr and returns its text
// form plus the number of bytes it occupies. It is driven by the same
// jBinary table the dispatch loop uses, so its notion of mnemonic and
// addressing mode can never drift from execution behavior; ADC/SBC are
// shown identically whether or not the table is in decimal mode, since
// decimal-ness affects only the arithmetic, not the syntax.
func Disassemble(mem Memory, addr uint16) (string, int) {
	op := mem.Read(addr)
	entry := jBinary[op]
	n := operandBytes(entry.mode)

	var operandText string
	switch entry.mode {
	case modeImplied:
		operandText = ""
	case modeAccumulator:
		operandText = "A"
	case modeImmediate:
		operandText = fmt.Sprintf("#$%02x", mem.Read(addr+1))
	case modeRelative:
		off := int8(mem.Read(addr + 1))
		target := uint16(int32(addr) + 2 + int32(off))
		operandText = fmt.Sprintf("$%04x", target)
	case modeZeroPage:
		operandText = fmt.Sprintf("$%02x", mem.Read(addr+1))
	case modeZeroPageX:
		operandText = fmt.Sprintf("$%02x,X", mem.Read(addr+1))
	case modeZeroPageY:
		operandText = fmt.Sprintf("$%02x,Y", mem.Read(addr+1))
	case modeIndirectX:
		operandText = fmt.Sprintf("($%02x,X)", mem.Read(addr+1))
	case modeIndirectY:
		operandText = fmt.Sprintf("($%02x),Y", mem.Read(addr+1))
	case modeAbsolute:
		operandText = fmt.Sprintf("$%04x", Read16(mem, addr+1))
	case modeAbsoluteX:
		operandText = fmt.Sprintf("$%04x,X", Read16(mem, addr+1))
	case modeAbsoluteY:
		operandText = fmt.Sprintf("$%04x,Y", Read16(mem, addr+1))
	case modeIndirect:
		operandText = fmt.Sprintf("($%04x)", Read16(mem, addr+1))
	}

	text := entry.mnemonic
	if operandText != "" {
		text = entry.mnemonic + " " + operandText
	}
	return text, n + 1
}

// DisassembleRange disassembles count instructions starting at addr,
// returning one formatted "addr: bytes  mnemonic operand" line per
// instruction and the address just past the last one. It backs the
// monitor's "d" command.
func DisassembleRange(mem Memory, addr uint16, count int) ([]string, uint16) {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, n := Disassemble(mem, addr)
		raw := ""
		for b := 0; b < n; b++ {
			raw += fmt.Sprintf("%02x ", mem.Read(addr+uint16(b)))
		}
		lines = append(lines, fmt.Sprintf("%04x: %-9s%s", addr, raw, text))
		addr += uint16(n)
	}
	return lines, addr
}
