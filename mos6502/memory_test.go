package mos6502

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectMemoryReadWrite(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0x1234, 0xAB)
	require.Equal(t, uint8(0xAB), m.Read(0x1234))
}

func TestRead16NoWrap(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0x00ff, 0x34)
	m.Write(0x0100, 0x12)
	require.Equal(t, uint16(0x1234), Read16(m, 0x00ff))
}

func TestRead16ZPWrapsWithinPageZero(t *testing.T) {
	m := NewDirectMemory()
	m.Write(0x00ff, 0x34)
	m.Write(0x0000, 0x12) // the "next" byte wraps to address 0, not 0x100
	require.Equal(t, uint16(0x1234), read16ZP(m, 0xff))
}

func TestWrite16(t *testing.T) {
	m := NewDirectMemory()
	Write16(m, 0x2000, 0xBEEF)
	require.Equal(t, uint8(0xEF), m.Read(0x2000))
	require.Equal(t, uint8(0xBE), m.Read(0x2001))
}

func TestBankedMemoryROMOverlayLeavesWritesToRAM(t *testing.T) {
	mem := NewBankedMemory()
	rom := make([]byte, 256)
	rom[0x10] = 0x42
	mem.MapROM(0x20, rom)

	require.Equal(t, uint8(0x42), mem.Read(0x2010))

	mem.Write(0x2010, 0x99)
	require.Equal(t, uint8(0x42), mem.Read(0x2010), "ROM overlay should still serve the read")
	require.Equal(t, uint8(0x99), mem.RawRAM()[0x2010], "the write should have fallen through to RAM")
}

func TestBankedMemoryCallbacks(t *testing.T) {
	mem := NewBankedMemory()
	var lastWrite uint8
	mem.MapReadCallback(0x40, 1, func(addr uint16) uint8 { return uint8(addr & 0xff) })
	mem.MapWriteCallback(0x40, 1, func(addr uint16, val uint8) { lastWrite = val })

	require.Equal(t, uint8(0x05), mem.Read(0x4005))

	mem.Write(0x4005, 0x77)
	require.Equal(t, uint8(0x77), lastWrite)
}
