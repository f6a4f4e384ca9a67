package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bdwalton/m6502/mos6502"
)

// Assembler turns one-line or multi-line 6502 source into bytes written
// through a mos6502.Memory, threading the program counter and resolving
// symbols defined either by a label or by the monitor's "<symbol> =
// <expr>" command.
type Assembler struct {
	Symbols *SymbolTable

	mem     mos6502.Memory
	highest uint16
	wrote   bool

	cpu           *mos6502.CPU
	assertFailure error
}

// New returns an Assembler that writes through mem.
func New(mem mos6502.Memory) *Assembler {
	return &Assembler{Symbols: NewSymbolTable(), mem: mem}
}

// AttachCPU wires c so that "@a=5,x=3,0x2000=ff" assertion lines
// encountered during assembly register a breakpoint on c instead of
// failing to parse. Mirrors the original compiler, which registers its
// assertion breakpoints directly on the Machine it is compiling into.
func (a *Assembler) AttachCPU(c *mos6502.CPU) {
	a.cpu = c
}

// AssertionFailure returns the most recent mismatch reported by an
// embedded assertion's breakpoint, or nil if none has failed since the
// last ClearAssertionFailure.
func (a *Assembler) AssertionFailure() error {
	return a.assertFailure
}

// ClearAssertionFailure resets the assertion-failure state, typically
// called before a host resumes execution with Run or RunDebug.
func (a *Assembler) ClearAssertionFailure() {
	a.assertFailure = nil
}

// UnresolvedSymbolError is returned by AssembleLine when an operand
// references a symbol with no binding yet. Width is the number of bytes
// reserved for the instruction, computed from the addressing mode
// promotion rules with the unresolved operand taken as wide (see
// ParseOperand), so a multi-pass caller can advance its program counter
// while retrying the line in a later pass. A symbol that later resolves
// below $100 can select a zero-page encoding that is shorter than Width.
type UnresolvedSymbolError struct {
	Symbol string
	Width  int
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("undefined symbol %q", e.Symbol)
}

// HighWaterMark returns the highest address written by this assembler, or
// 0 if nothing has been written yet. It backs the dump.dat convention of
// persisting memory from 0x1000 up to the last address touched.
func (a *Assembler) HighWaterMark() uint16 {
	return a.highest
}

func (a *Assembler) recordWrite(addr uint16) {
	if !a.wrote || addr > a.highest {
		a.highest = addr
		a.wrote = true
	}
}

// AssembleLine assembles a single instruction at pc and writes its bytes
// through the Assembler's memory. It returns the number of bytes emitted.
// A label-only or comment-only or blank line emits zero bytes
// successfully. A label is bound to pc in the symbol table as a side
// effect.
func (a *Assembler) AssembleLine(line string, pc uint16) (int, error) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "@") {
		return a.assembleAssertion(trimmed, pc)
	}

	parsed, ok := ParseLine(line)
	if !ok {
		return 0, fmt.Errorf("unparsable line: %q", line)
	}
	if parsed.Label != "" {
		a.Symbols.Define(parsed.Label, int(pc))
	}
	if parsed.Mnemonic == "" {
		return 0, nil
	}

	operand, ok := ParseOperand(parsed.Operand, a.Symbols)
	if !ok {
		return 0, fmt.Errorf("bad operand %q in line: %q", parsed.Operand, line)
	}

	info, mode, err := a.resolveEncoding(parsed.Mnemonic, &operand, pc)
	if err != nil {
		return 0, fmt.Errorf("%v in line: %q", err, line)
	}

	width := mos6502.OperandBytes(mode) + 1
	if operand.Unresolved != "" {
		return 0, &UnresolvedSymbolError{Symbol: operand.Unresolved, Width: width}
	}

	bytes := []uint8{info.Opcode}
	switch mos6502.OperandBytes(mode) {
	case 1:
		bytes = append(bytes, uint8(operand.Value&0xff))
	case 2:
		bytes = append(bytes, uint8(operand.Value&0xff), uint8((operand.Value>>8)&0xff))
	}

	for i, b := range bytes {
		a.mem.Write(pc+uint16(i), b)
		a.recordWrite(pc + uint16(i))
	}

	return len(bytes), nil
}

// assembleAssertion parses an "@..." line and, if a CPU is attached,
// registers its check as a breakpoint at pc. It consumes no bytes, same
// as the original compiler's handling of assertion lines.
func (a *Assembler) assembleAssertion(line string, pc uint16) (int, error) {
	assertion, ok := ParseAssertion(line, pc)
	if !ok {
		return 0, fmt.Errorf("bad assertion: %q", line)
	}
	if a.cpu == nil {
		return 0, fmt.Errorf("assertion %q requires an attached CPU: %w", line, errNoCPU)
	}
	a.cpu.SetBreakpoint(pc, assertion.BreakFunc(&a.assertFailure))
	return 0, nil
}

var errNoCPU = errors.New("no CPU attached")

// resolveEncoding applies the promotion rules the canonical syntax table
// implies: a Zero-page operand is widened to Absolute (or Zero-page,X /
// ,Y widened to Absolute,X / ,Y) when the mnemonic has no Zero-page
// encoding, and an Absolute- or Zero-page-shaped operand on a branch
// mnemonic is converted to its 8-bit relative displacement.
func (a *Assembler) resolveEncoding(mnemonic string, operand *Operand, pc uint16) (mos6502.OpcodeInfo, mos6502.AddrMode, error) {
	mode := operand.Mode

	if mode == mos6502.AddrZeroPageY && !mos6502.HasMode(mnemonic, mode) {
		mode = mos6502.AddrAbsoluteY
	}
	if mode == mos6502.AddrZeroPageX && !mos6502.HasMode(mnemonic, mode) {
		mode = mos6502.AddrAbsoluteX
	}
	if mode == mos6502.AddrZeroPage && !mos6502.HasMode(mnemonic, mode) {
		mode = mos6502.AddrAbsolute
	}

	if (mode == mos6502.AddrAbsolute || mode == mos6502.AddrZeroPage) && mos6502.HasMode(mnemonic, mos6502.AddrRelative) {
		disp := operand.Value - int(pc) - 2
		if operand.Unresolved == "" && (disp < -128 || disp > 127) {
			return mos6502.OpcodeInfo{}, mode, fmt.Errorf("branch target out of range: %d", disp)
		}
		operand.Value = disp & 0xff
		mode = mos6502.AddrRelative
	}

	info, ok := mos6502.FindOpcode(mnemonic, mode)
	if !ok {
		return mos6502.OpcodeInfo{}, mode, fmt.Errorf("no %s addressing mode for %s", modeName(mode), mnemonic)
	}
	return info, mode, nil
}

func modeName(m mos6502.AddrMode) string {
	switch m {
	case mos6502.AddrImplied:
		return "implied"
	case mos6502.AddrAccumulator:
		return "accumulator"
	case mos6502.AddrImmediate:
		return "immediate"
	case mos6502.AddrRelative:
		return "relative"
	case mos6502.AddrZeroPage:
		return "zero-page"
	case mos6502.AddrZeroPageX:
		return "zero-page,x"
	case mos6502.AddrZeroPageY:
		return "zero-page,y"
	case mos6502.AddrIndirectX:
		return "(zp,x)"
	case mos6502.AddrIndirectY:
		return "(zp),y"
	case mos6502.AddrAbsolute:
		return "absolute"
	case mos6502.AddrAbsoluteX:
		return "absolute,x"
	case mos6502.AddrAbsoluteY:
		return "absolute,y"
	case mos6502.AddrIndirect:
		return "indirect"
	}
	return "unknown"
}

// Assemble assembles multi-line source starting at pc, threading the
// program counter across lines. Each line's address is fixed during the
// first pass: a forward reference's tentative byte width is known from
// its addressing mode alone (ParseOperand assumes an unresolved operand
// is wide), independent of the symbol's eventual value, so later lines'
// addresses never shift once assigned. A line left unresolved because it
// names a label defined further down the source is retried — at that
// same fixed address — in further passes, once the intervening label
// lines have bound it; assembly fails once a pass resolves no additional
// line, per the fixpoint the specification describes for multi-pass
// assembly. It returns the total bytes emitted.
func (a *Assembler) Assemble(pc uint16, code string) (int, error) {
	lines := strings.Split(code, "\n")

	type pending struct {
		idx  int
		line string
		pc   uint16
		sym  string
	}

	var remaining []pending
	cursor := pc
	total := 0

	for i, l := range lines {
		linePC := cursor
		n, err := a.AssembleLine(l, linePC)
		if err != nil {
			var unresolved *UnresolvedSymbolError
			if !errors.As(err, &unresolved) {
				return 0, fmt.Errorf("%v (line %d)", err, i+1)
			}
			remaining = append(remaining, pending{idx: i, line: l, pc: linePC, sym: unresolved.Symbol})
			cursor += uint16(unresolved.Width)
			continue
		}
		cursor += uint16(n)
		total += n
	}

	for len(remaining) > 0 {
		var next []pending
		for _, p := range remaining {
			n, err := a.AssembleLine(p.line, p.pc)
			if err != nil {
				var unresolved *UnresolvedSymbolError
				if !errors.As(err, &unresolved) {
					return 0, fmt.Errorf("%v (line %d)", err, p.idx+1)
				}
				p.sym = unresolved.Symbol
				next = append(next, p)
				continue
			}
			total += n
		}
		if len(next) == len(remaining) {
			names := make([]string, 0, len(next))
			for _, p := range next {
				names = append(names, p.sym)
			}
			undefined := a.Symbols.Undefined(names)
			return 0, fmt.Errorf("assembly failed: %d line(s) unresolved, undefined symbols: %v, first: %q", len(next), undefined, next[0].line)
		}
		remaining = next
	}

	return total, nil
}
