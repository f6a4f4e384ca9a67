package assembler

import (
	"testing"

	"github.com/bdwalton/m6502/mos6502"
	"github.com/stretchr/testify/require"
)

func TestParseLineLabelMnemonicOperand(t *testing.T) {
	p, ok := ParseLine("loop: LDA #$10 ; comment")
	require.True(t, ok)
	require.Equal(t, "loop", p.Label)
	require.Equal(t, "LDA", p.Mnemonic)
	require.Equal(t, "#$10", p.Operand)
}

func TestParseLineBlank(t *testing.T) {
	p, ok := ParseLine("   ")
	require.True(t, ok)
	require.True(t, p.Empty)
}

func TestAssembleLineImmediate(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	n, err := a.AssembleLine("LDA #$10", 0x1000)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, uint8(0xA9), mem.Read(0x1000))
	require.Equal(t, uint8(0x10), mem.Read(0x1001))
}

func TestAssembleLineZeroPagePromotesToAbsoluteWhenNoZPForm(t *testing.T) {
	// JMP has no zero-page encoding; a bare "$10" operand must widen to
	// the absolute form instead of failing to resolve.
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	n, err := a.AssembleLine("JMP $10", 0x1000)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, uint8(0x4C), mem.Read(0x1000))
}

func TestAssembleLineBranchConvertsToRelative(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	// BNE $1005 from PC 0x1000: displacement = 0x1005 - 0x1000 - 2 = 3
	n, err := a.AssembleLine("BNE $1005", 0x1000)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, uint8(0xD0), mem.Read(0x1000))
	require.Equal(t, uint8(3), mem.Read(0x1001))
}

func TestAssembleLineIndirectX(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	n, err := a.AssembleLine("LDA ($20,x)", 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, uint8(0xA1), mem.Read(0))
	require.Equal(t, uint8(0x20), mem.Read(1))
}

func TestAssembleLineAccumulator(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	n, err := a.AssembleLine("ASL a", 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint8(0x0A), mem.Read(0))
}

func TestAssembleLineUnparsableFails(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	_, err := a.AssembleLine("FROB #$1", 0)
	require.Error(t, err)
}

func TestAssembleMultiLineForwardReference(t *testing.T) {
	// "end" is referenced by the JMP before its label is defined; the
	// multi-pass fixpoint must retry that line once the label binds.
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	src := "LDA #$01\nJMP end\nNOP\nend:\nRTS"
	n, err := a.Assemble(0x1000, src)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	require.Equal(t, uint8(0xA9), mem.Read(0x1000)) // LDA #$01
	require.Equal(t, uint8(0x4C), mem.Read(0x1002)) // JMP
	require.Equal(t, uint8(0x06), mem.Read(0x1003)) // end = 0x1006, low byte
	require.Equal(t, uint8(0x10), mem.Read(0x1004)) // end = 0x1006, high byte
	require.Equal(t, uint8(0xEA), mem.Read(0x1005)) // NOP
	require.Equal(t, uint8(0x60), mem.Read(0x1006)) // RTS

	end, ok := a.Symbols.Lookup("end")
	require.True(t, ok)
	require.Equal(t, 0x1006, end)
}

func TestAssembleUndefinedSymbolFails(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	_, err := a.Assemble(0x1000, "JMP nowhere\nRTS")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nowhere")
}

func TestAssembleEmbeddedAssertion(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	cpu := mos6502.New(mem)
	a := New(mem)
	a.AttachCPU(cpu)

	src := "LDA #$20\n@a=0x10\nRTS"
	_, err := a.Assemble(0x1000, src)
	require.NoError(t, err)

	cpu.SetPC(0x1000)
	cpu.RunDebug(1000)
	require.Error(t, a.AssertionFailure())
}

func TestAssembleMultiLineRoundTrip(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	a := New(mem)
	src := "LDA #$01\nSTA $2000\nRTS"
	n, err := a.Assemble(0x1000, src)
	require.NoError(t, err)
	require.Equal(t, 6, n)

	require.Equal(t, uint8(0xA9), mem.Read(0x1000))
	require.Equal(t, uint8(0x8D), mem.Read(0x1002))
	require.Equal(t, uint8(0x60), mem.Read(0x1005))
}

func TestAssertionDetectsMismatch(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	cpu := mos6502.New(mem)
	cpu.SetA(0x10)

	a, ok := ParseAssertion("@a=0x20", cpu.PC())
	require.True(t, ok)

	var failure error
	fn := a.BreakFunc(&failure)
	fn(cpu)
	require.Error(t, failure)
}

func TestAssertionPasses(t *testing.T) {
	mem := mos6502.NewDirectMemory()
	cpu := mos6502.New(mem)
	cpu.SetA(0x20)

	a, ok := ParseAssertion("@a=0x20", cpu.PC())
	require.True(t, ok)

	var failure error
	fn := a.BreakFunc(&failure)
	fn(cpu)
	require.NoError(t, failure)
}
