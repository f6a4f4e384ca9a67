package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommandMemoryDefaults(t *testing.T) {
	c, err := ParseCommand("m")
	require.NoError(t, err)
	require.Equal(t, CmdMemory, c.Kind)
	require.False(t, c.HasAddr)
}

func TestParseCommandMemoryWithAddrAndCount(t *testing.T) {
	c, err := ParseCommand("m 1000 32")
	require.NoError(t, err)
	require.Equal(t, uint16(0x1000), c.Addr)
	require.Equal(t, 32, c.Count)
}

func TestParseCommandAssemble(t *testing.T) {
	c, err := ParseCommand("a 1000 LDA #$10")
	require.NoError(t, err)
	require.Equal(t, CmdAssemble, c.Kind)
	require.Equal(t, uint16(0x1000), c.Addr)
	require.Equal(t, "LDA #$10", c.Text)
}

func TestParseCommandGo(t *testing.T) {
	c, err := ParseCommand("g 1000")
	require.NoError(t, err)
	require.Equal(t, CmdGo, c.Kind)
	require.Equal(t, uint16(0x1000), c.Addr)
}

func TestParseCommandTrace(t *testing.T) {
	c, err := ParseCommand("trace on")
	require.NoError(t, err)
	require.Equal(t, CmdTrace, c.Kind)
	require.Equal(t, "on", c.Text)
}

func TestParseCommandTraceRejectsBadArg(t *testing.T) {
	_, err := ParseCommand("trace maybe")
	require.Error(t, err)
}

func TestParseCommandSymbolDefinition(t *testing.T) {
	c, err := ParseCommand("counter = 2000")
	require.NoError(t, err)
	require.Equal(t, CmdDefineSymbol, c.Kind)
	require.Equal(t, "counter", c.Symbol)
	require.Equal(t, "2000", c.Text)
}

func TestParseCommandRejectsGarbage(t *testing.T) {
	_, err := ParseCommand("frobnicate")
	require.Error(t, err)
}
