package monitor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bdwalton/m6502/assembler"
	"github.com/bdwalton/m6502/mos6502"
)

// Monitor executes parsed monitor-grammar commands against a CPU and an
// Assembler, remembering the last memory/disassembly address and count
// the way the original line editor's "repeat last command" convention
// does.
type Monitor struct {
	CPU *mos6502.CPU
	Asm *assembler.Assembler

	lastMemAddr     uint16
	lastMemCount    int
	lastDisasmAddr  uint16
	lastDisasmCount int
	trace           bool
	traceLog        []string
}

// New returns a Monitor driving cpu via asm, with the defaults the
// grammar's "m"/"d" commands fall back to: a zero start address, a count
// of 16 bytes for "m" and 8 instructions for "d".
func New(cpu *mos6502.CPU, asm *assembler.Assembler) *Monitor {
	asm.AttachCPU(cpu)
	return &Monitor{CPU: cpu, Asm: asm, lastMemCount: 16, lastDisasmCount: 8}
}

// TraceEnabled reports whether "trace on" is currently in effect.
func (m *Monitor) TraceEnabled() bool { return m.trace }

// traceHook is installed as the CPU's per-opcode policy hook while
// tracing is enabled. It disassembles the instruction about to execute
// and appends it to the trace log; it never halts execution.
func (m *Monitor) traceHook(c *mos6502.CPU) bool {
	text, _ := mos6502.Disassemble(c, c.PC())
	m.traceLog = append(m.traceLog, fmt.Sprintf("%04x: %s", c.PC(), text))
	return false
}

// Execute runs one parsed command and returns its textual output.
func (m *Monitor) Execute(cmd Command) (string, error) {
	switch cmd.Kind {
	case CmdMemory:
		addr, count := m.lastMemAddr, m.lastMemCount
		if cmd.HasAddr {
			addr = cmd.Addr
		}
		if cmd.HasCount {
			count = cmd.Count
		}
		m.lastMemAddr, m.lastMemCount = addr, count
		return m.dumpMemory(addr, count), nil

	case CmdDisasm:
		addr, count := m.lastDisasmAddr, m.lastDisasmCount
		if cmd.HasAddr {
			addr = cmd.Addr
		}
		if cmd.HasCount {
			count = cmd.Count
		}
		lines, next := mos6502.DisassembleRange(m.CPU, addr, count)
		m.lastDisasmAddr, m.lastDisasmCount = next, count
		out := ""
		for _, l := range lines {
			out += l + "\n"
		}
		return out, nil

	case CmdAssemble:
		n, err := m.Asm.AssembleLine(cmd.Text, cmd.Addr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d byte(s) at $%04x", n, cmd.Addr), nil

	case CmdAssembleFile:
		data, err := os.ReadFile(cmd.Text)
		if err != nil {
			return "", err
		}
		n, err := m.Asm.Assemble(0x1000, string(data))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d byte(s) assembled", n), nil

	case CmdRegisters:
		return m.CPU.String(), nil

	case CmdGo:
		m.CPU.SetPC(cmd.Addr)
		m.traceLog = nil
		m.Asm.ClearAssertionFailure()
		m.CPU.RunDebug(^uint64(0) >> 1)
		return m.runOutput(), nil

	case CmdContinue:
		m.traceLog = nil
		m.Asm.ClearAssertionFailure()
		m.CPU.RunDebug(^uint64(0) >> 1)
		return m.runOutput(), nil

	case CmdTrace:
		m.trace = cmd.Text == "on"
		if m.trace {
			m.CPU.SetHook(m.traceHook)
		} else {
			m.CPU.SetHook(nil)
		}
		return fmt.Sprintf("trace %s", cmd.Text), nil

	case CmdDefineSymbol:
		v, err := strconv.ParseUint(cmd.Text, 16, 32)
		if err != nil {
			return "", fmt.Errorf("bad expression %q", cmd.Text)
		}
		m.Asm.Symbols.Define(cmd.Symbol, int(v))
		return fmt.Sprintf("%s = $%x", cmd.Symbol, v), nil
	}

	return "", fmt.Errorf("unhandled command")
}

// runOutput composes the result of a "g" or "c" command: any trace lines
// logged during the run, the register state afterward, and an assertion
// mismatch message if one of the program's embedded "@..." checks failed.
func (m *Monitor) runOutput() string {
	out := ""
	for _, l := range m.traceLog {
		out += l + "\n"
	}
	out += m.CPU.String()
	if err := m.Asm.AssertionFailure(); err != nil {
		out += "\n" + err.Error()
	}
	return out
}

func (m *Monitor) dumpMemory(addr uint16, count int) string {
	out := ""
	for i := 0; i < count; i++ {
		if i%8 == 0 {
			if i > 0 {
				out += "\n"
			}
			out += fmt.Sprintf("%04x:", addr+uint16(i))
		}
		out += fmt.Sprintf(" %02x", m.CPU.Read(addr+uint16(i)))
	}
	return out + "\n"
}
