package mos6502

import "fmt"

// BreakFunc is consulted by RunDebug when the program counter reaches its
// registered address, before the instruction there executes. Returning
// true halts RunDebug.
type BreakFunc func(c *CPU) bool

// CPU is a MOS 6502 register file, flag engine and dispatch loop bound to
// a Memory implementation. The zero value is not usable; construct with
// New.
type CPU struct {
	acc, x, y, sp uint8
	pc            uint16
	p             uint8

	// mem is the backing store used by LoadMem, independent of the
	// Policy's per-class strategy selection: loading a program image is
	// host-side setup, not an instruction-level access.
	mem Memory

	// fetchMem, readMem and writeMem back PC fetches, data reads and
	// data writes respectively, resolved from the Policy at
	// construction time (defaulting to mem when a slot is nil).
	fetchMem, readMem, writeMem Memory

	cycles       uint64
	targetCycles uint64

	active      *[256]opcodeEntry
	policy      Policy
	breakpoints map[uint16]BreakFunc
}

// New returns a CPU wired to mem with DefaultPolicy: all RAM zero, SP =
// 0xFF, P = 0x30, A = X = Y = 0, PC left at 0 until SetPC is called.
func New(mem Memory) *CPU {
	return NewWithPolicy(mem, DefaultPolicy())
}

// NewWithPolicy returns a CPU wired to mem with an explicit Policy. Any
// of pol.FetchMemory/ReadMemory/WriteMemory left nil falls back to mem.
func NewWithPolicy(mem Memory, pol Policy) *CPU {
	c := &CPU{
		mem:         mem,
		fetchMem:    pol.FetchMemory,
		readMem:     pol.ReadMemory,
		writeMem:    pol.WriteMemory,
		policy:      pol,
		breakpoints: make(map[uint16]BreakFunc),
	}
	if c.fetchMem == nil {
		c.fetchMem = mem
	}
	if c.readMem == nil {
		c.readMem = mem
	}
	if c.writeMem == nil {
		c.writeMem = mem
	}
	c.Reset()
	return c
}

// Reset restores the power-on register state without touching memory.
func (c *CPU) Reset() {
	c.acc, c.x, c.y = 0, 0, 0
	c.sp = 0xff
	c.p = flag5 | FlagB
	c.cycles = 0
	c.active = &jBinary
}

// Read reads a single byte through the CPU's data-read Memory.
func (c *CPU) Read(addr uint16) uint8 { return c.readMem.Read(addr) }

// Write writes a single byte through the CPU's data-write Memory.
func (c *CPU) Write(addr uint16, val uint8) { c.writeMem.Write(addr, val) }

// Read16 reads a little-endian 16-bit value with no page wrapping.
func (c *CPU) Read16(addr uint16) uint16 { return Read16(c.readMem, addr) }

// Write16 writes a little-endian 16-bit value with no page wrapping.
func (c *CPU) Write16(addr uint16, val uint16) { Write16(c.writeMem, addr, val) }

// LoadMem copies bin into memory starting at addr.
func (c *CPU) LoadMem(addr uint16, bin []uint8) {
	for i, b := range bin {
		c.mem.Write(addr+uint16(i), b)
	}
}

// SetPC sets the program counter.
func (c *CPU) SetPC(addr uint16) { c.pc = addr }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// A, X, Y and SP return the corresponding register.
func (c *CPU) A() uint8  { return c.acc }
func (c *CPU) X() uint8  { return c.x }
func (c *CPU) Y() uint8  { return c.y }
func (c *CPU) SP() uint8 { return c.sp }

// SetA, SetX, SetY and SetSP set the corresponding register, for test
// fixtures and the monitor's register-patching commands.
func (c *CPU) SetA(v uint8)  { c.acc = v }
func (c *CPU) SetX(v uint8)  { c.x = v }
func (c *CPU) SetY(v uint8)  { c.y = v }
func (c *CPU) SetSP(v uint8) { c.sp = v }

// Cycles returns the elapsed cycle counter.
func (c *CPU) Cycles() uint64 { return c.cycles }

// StackAddr returns the address of the next free stack slot.
func (c *CPU) StackAddr() uint16 { return 0x0100 | uint16(c.sp) }

// fetch reads the byte at PC using the fetch-access strategy and advances
// PC by one.
func (c *CPU) fetch() uint8 {
	b := c.fetchMem.Read(c.pc)
	c.pc++
	return b
}

func (c *CPU) push(val uint8) {
	c.writeMem.Write(c.StackAddr(), val)
	c.sp--
}

func (c *CPU) pull() uint8 {
	c.sp++
	return c.readMem.Read(c.StackAddr())
}

func (c *CPU) pushAddr(addr uint16) {
	c.push(uint8(addr >> 8))
	c.push(uint8(addr & 0xff))
}

func (c *CPU) pullAddr() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

// SetBreakpoint registers fn to run when an instruction leaves the program
// counter at addr, before the instruction at addr executes, for use with
// RunDebug.
func (c *CPU) SetBreakpoint(addr uint16, fn BreakFunc) {
	c.breakpoints[addr] = fn
}

// ClearBreakpoints removes every registered breakpoint.
func (c *CPU) ClearBreakpoints() {
	c.breakpoints = make(map[uint16]BreakFunc)
}

// SetHook installs fn as the per-opcode policy hook consulted by Run and
// RunDebug, replacing whatever Policy.Hook held at construction. A nil fn
// disables the hook.
func (c *CPU) SetHook(fn OpHook) {
	c.policy.Hook = fn
}

// Step executes exactly one instruction and returns the number of cycles
// it took, including the extra cycle for a taken branch. It does not
// consult the policy hook, stack-wrap termination or breakpoints; Run and
// RunDebug build those behaviors on top of Step.
func (c *CPU) Step() int {
	before := c.cycles
	op := c.fetch()
	entry := c.active[op]
	entry.handler(c, entry.mode)
	c.cycles += uint64(entry.cycles)
	return int(c.cycles - before)
}

// Run advances the cycle counter until it reaches at least n beyond the
// current count, or a termination condition fires: the policy hook
// returning true, or (if ExitOnStackWrap is enabled) the next opcode
// being RTS with SP==0xff. This is the "fast" run variant: it does not
// consult the breakpoint map.
func (c *CPU) Run(n uint64) {
	c.targetCycles = c.cycles + n
	for c.cycles < c.targetCycles {
		if c.policy.Hook != nil && c.policy.Hook(c) {
			return
		}
		if c.policy.ExitOnStackWrap && c.sp == 0xff && c.fetchMem.Read(c.pc) == 0x60 {
			return
		}
		c.Step()
	}
}

// RunDebug is the breakpoint-instrumented run variant: after every
// instruction it consults the breakpoint map for the current PC and
// halts if the registered BreakFunc returns true.
func (c *CPU) RunDebug(n uint64) {
	c.targetCycles = c.cycles + n
	for c.cycles < c.targetCycles {
		if c.policy.Hook != nil && c.policy.Hook(c) {
			return
		}
		if c.policy.ExitOnStackWrap && c.sp == 0xff && c.fetchMem.Read(c.pc) == 0x60 {
			return
		}
		c.Step()
		if fn, ok := c.breakpoints[c.pc]; ok {
			if fn(c) {
				return
			}
		}
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("A=%02x X=%02x Y=%02x SP=%02x PC=%04x P=%02x", c.acc, c.x, c.y, c.sp, c.pc, c.GetP())
}
