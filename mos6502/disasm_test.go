package mos6502

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleImmediate(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0, 0x69)
	m.Write(1, 0x27)
	text, n := Disassemble(m, 0)
	require.Equal(t, "ADC #$27", text)
	require.Equal(t, 2, n)
}

func TestDisassembleAbsoluteIndexed(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0, 0x7D)
	Write16(m, 1, 0x1234)
	text, n := Disassemble(m, 0)
	require.Equal(t, "ADC $1234,X", text)
	require.Equal(t, 3, n)
}

func TestDisassembleImplied(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0, 0xEA)
	text, n := Disassemble(m, 0)
	require.Equal(t, "NOP", text)
	require.Equal(t, 1, n)
}

func TestDisassembleRangeAdvancesAddress(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0, 0xEA) // NOP
	m.Write(1, 0x00) // BRK
	m.Write(2, 0x00)
	lines, next := DisassembleRange(m, 0, 2)
	require.Len(t, lines, 2)
	require.Equal(t, uint16(2), next)
}
