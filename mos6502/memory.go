package mos6502

import "github.com/bdwalton/m6502/mappers"

// MemSize is the size of the 6502's flat address space.
const MemSize = 1 << 16

// Memory is the single dependency the CPU has on its host: an
// addressable byte array. Implementations choose the access strategy
// (Direct, Banked, Callback) named by the Policy; the CPU never knows
// which one it is talking to.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// directMemory is the Direct access strategy: ram[addr], no indirection.
// Used when no ROM, bank switching or I/O region is present.
type directMemory struct {
	ram []uint8
}

// NewDirectMemory returns a flat MemSize-byte RAM array with no overlays.
func NewDirectMemory() Memory {
	return &directMemory{ram: make([]uint8, MemSize)}
}

func (m *directMemory) Read(addr uint16) uint8 { return m.ram[addr] }

func (m *directMemory) Write(addr uint16, val uint8) { m.ram[addr] = val }

// NewBankedMemory returns the Banked access strategy: a mappers.Overlay
// whose independent read/write page tables support ROM overlays and bank
// switching by rewriting table entries. This is also the implementation
// used for the Callback strategy, since callbacks are just another kind
// of page-table entry in the overlay.
func NewBankedMemory() *mappers.Overlay {
	return mappers.New(MemSize)
}

// Read16 returns the two bytes at addr and addr+1 (low byte first),
// without zero-page wrapping. Used by absolute fetches and JMP (ind).
func Read16(m Memory, addr uint16) uint16 {
	lo := uint16(m.Read(addr))
	hi := uint16(m.Read(addr + 1))
	return hi<<8 | lo
}

// Write16 stores val at addr and addr+1 (low byte first).
func Write16(m Memory, addr uint16, val uint16) {
	m.Write(addr, uint8(val&0xff))
	m.Write(addr+1, uint8(val>>8))
}

// read16ZP is like Read16 but wraps the high-byte fetch within page 0,
// matching the zero-page pointer semantics used by (Zero-page,X) and
// (Zero-page),Y.
func read16ZP(m Memory, zp uint8) uint16 {
	lo := uint16(m.Read(uint16(zp)))
	hi := uint16(m.Read(uint16(zp + 1)))
	return hi<<8 | lo
}
