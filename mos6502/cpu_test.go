package mos6502

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCPU() *CPU {
	return New(NewDirectMemory())
}

func TestStatusIdempotent(t *testing.T) {
	c := newTestCPU()
	c.SetP(0xA5)
	before := c.GetP()
	c.SetP(before)
	require.Equal(t, before, c.GetP())
}

func TestStatusAlwaysReadsBit5(t *testing.T) {
	c := newTestCPU()
	c.SetP(0x00)
	require.NotZero(t, c.GetP()&flag5)
}

func TestStackRoundTripAccumulator(t *testing.T) {
	c := newTestCPU()
	c.SetA(0x42)
	c.SetP(0)
	opPHA(c, modeImplied)
	c.SetA(0)
	opPLA(c, modeImplied)
	require.Equal(t, uint8(0x42), c.A())
	require.False(t, c.getFlag(FlagZ))
	require.False(t, c.getFlag(FlagS))
}

func TestStackRoundTripStatus(t *testing.T) {
	c := newTestCPU()
	c.SetP(0xC3)
	opPHP(c, modeImplied)
	c.SetP(0)
	opPLP(c, modeImplied)
	require.Equal(t, uint8(0xC3|FlagB|flag5), c.GetP())
}

func TestBCDAdditionScenario(t *testing.T) {
	// Scenario 3: D set, A = 0x15, carry clear, ADC #0x27 -> A = 0x42, C = 0.
	c := newTestCPU()
	c.SetP(FlagD)
	c.SetA(0x15)
	c.LoadMem(0, []uint8{0x69, 0x27}) // ADC #$27
	c.SetPC(0)
	c.Step()

	require.Equal(t, uint8(0x42), c.A())
	require.False(t, c.getFlag(FlagC))
}

func TestBranchTimingScenario(t *testing.T) {
	// Scenario 4: a taken branch costs base(2) + 1; not taken costs base(2).
	c := newTestCPU()
	c.SetP(FlagZ) // BNE not taken
	c.LoadMem(0, []uint8{0xD0, 0xFE})
	c.SetPC(0)
	got := c.Step()
	require.Equal(t, 2, got)

	c = newTestCPU()
	c.SetP(0) // BNE taken
	c.LoadMem(0, []uint8{0xD0, 0xFE})
	c.SetPC(0)
	got = c.Step()
	require.Equal(t, 3, got)
}

func TestJSRRTSSymmetryScenario(t *testing.T) {
	c := newTestCPU()
	c.SetPC(0x1000)
	c.LoadMem(0x1000, []uint8{0x20, 0x34, 0x12}) // JSR $1234
	c.LoadMem(0x1234, []uint8{0x60})             // RTS

	c.Step() // JSR
	c.Step() // RTS

	require.Equal(t, uint16(0x1003), c.PC())
	require.Equal(t, uint8(0xFF), c.SP())
	require.Equal(t, uint64(12), c.Cycles())
}

func TestBinaryADCCanonicalFormula(t *testing.T) {
	c := newTestCPU()
	c.SetP(FlagC)
	c.SetA(0x10)
	c.LoadMem(0, []uint8{0x69, 0x05}) // ADC #$05
	c.SetPC(0)
	c.Step()
	require.Equal(t, uint8(0x16), c.A())
}

func TestBinarySBCCanonicalFormula(t *testing.T) {
	c := newTestCPU()
	c.SetP(FlagC) // carry set => no borrow
	c.SetA(0x10)
	c.LoadMem(0, []uint8{0xE9, 0x05}) // SBC #$05
	c.SetPC(0)
	c.Step()
	require.Equal(t, uint8(0x0B), c.A())
}

func TestBreakPushesBWithFlagSet(t *testing.T) {
	c := newTestCPU()
	c.SetP(0)
	c.LoadMem(0, []uint8{0x00, 0x00}) // BRK, break-mark byte
	c.Write16(0xfffe, 0x9000)
	c.SetPC(0)
	c.Step()

	pushed := c.Read(0x01fd) // after PC high ($01FF) and PC low ($01FE)
	require.NotZero(t, pushed&FlagB)
	require.Equal(t, uint16(0x9000), c.PC())
}

func TestRunExitsOnStackWrapRTS(t *testing.T) {
	c := newTestCPU()
	c.SetPC(0x0200)
	c.LoadMem(0x0200, []uint8{0x60}) // bare RTS with SP already 0xFF
	c.Run(1_000_000)
	require.Equal(t, uint64(0), c.Cycles())
}

func TestUndefinedOpcodeIsDeterministic(t *testing.T) {
	c := newTestCPU()
	c.LoadMem(0, []uint8{0x02}) // not in officialOpcodes
	c.SetPC(0)
	got := c.Step()
	require.Equal(t, 2, got)
}

func TestPolicySelectsMemoryPerAccessClass(t *testing.T) {
	// fetchMem supplies the opcode stream, readMem supplies the operand
	// LDA reads from, writeMem catches whatever it writes. Each must be
	// consulted independently rather than all three collapsing to a
	// single shared Memory.
	fetchMem := NewDirectMemory()
	readMem := NewDirectMemory()
	writeMem := NewDirectMemory()

	fetchMem.Write(0, 0xA5) // LDA $10 (zero page)
	fetchMem.Write(1, 0x10)
	fetchMem.Write(2, 0x85) // STA $10
	fetchMem.Write(3, 0x10)
	readMem.Write(0x10, 0x42)

	c := NewWithPolicy(NewDirectMemory(), Policy{
		FetchMemory: fetchMem,
		ReadMemory:  readMem,
		WriteMemory: writeMem,
	})
	c.SetPC(0)
	c.Step() // LDA $10
	require.Equal(t, uint8(0x42), c.A())

	c.Step() // STA $10
	require.Equal(t, uint8(0x42), writeMem.Read(0x10))
	require.Equal(t, uint8(0x42), readMem.Read(0x10)) // readMem untouched by the store, still holds its original value
	require.Zero(t, fetchMem.Read(0x10))              // fetchMem never sees data accesses
}
