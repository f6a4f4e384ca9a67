package mos6502

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKlausDormannFunctional runs the well-known 6502 functional test
// suite when its binary is present alongside the module (it is not
// checked into this repository). It loads the image at address 0,
// patches the documented infinite-loop address to RTS, sets PC to the
// entry point, and relies on stack-wrap termination to detect
// completion within the cycle budget.
func TestKlausDormannFunctional(t *testing.T) {
	const path = "testdata/6502_functional_test.bin"
	data, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("skipping: %s not present (%v)", path, err)
	}

	mem := NewDirectMemory()
	c := New(mem)
	c.LoadMem(0, data)
	c.Write(0x3b91, 0x60) // patch the success loop to RTS
	c.SetPC(0x1000)

	c.Run(1_000_000_000)

	// Run exits either via stack-wrap termination at the patched success
	// RTS (PC still pointing at it) or because it ran out of cycles
	// stuck in an unrelated failure trap (PC parked somewhere else).
	require.Equal(t, uint16(0x3b91), c.PC(), "stalled instead of completing")
}
