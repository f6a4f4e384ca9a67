package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bdwalton/m6502/mos6502"
)

// Assertion is an assertion-style check embedded in assembly source as a
// "@a=5,x=3,0x2000=ff" line: when the program counter reaches Addr, the
// live registers and memory cells are compared against Want and a
// mismatch is reported with a descriptive message.
type Assertion struct {
	Addr uint16
	Want []assertExpect
}

type assertExpect struct {
	reg  string // "a", "x", "y", "sp", "pc", or "" for a memory cell
	addr uint16 // meaningful when reg == ""
	want uint8
}

var assertLineRegexp = regexp.MustCompile(`^@(.+)$`)

// ParseAssertion parses an "@..." line into an Assertion anchored at pc.
// It does not itself register the check with a CPU; BreakFunc does that.
func ParseAssertion(line string, pc uint16) (Assertion, bool) {
	line = strings.TrimSpace(line)
	m := assertLineRegexp.FindStringSubmatch(line)
	if m == nil {
		return Assertion{}, false
	}

	a := Assertion{Addr: pc}
	for _, clause := range strings.Split(m[1], ",") {
		kv := strings.SplitN(strings.TrimSpace(clause), "=", 2)
		if len(kv) != 2 {
			return Assertion{}, false
		}
		key := strings.TrimSpace(kv[0])
		valStr := strings.TrimSpace(kv[1])
		val, err := strconv.ParseUint(strings.TrimPrefix(valStr, "0x"), 16, 16)
		if err != nil {
			return Assertion{}, false
		}

		switch strings.ToLower(key) {
		case "a", "x", "y", "sp", "pc":
			a.Want = append(a.Want, assertExpect{reg: strings.ToLower(key), want: uint8(val)})
		default:
			addr, err := strconv.ParseUint(strings.TrimPrefix(key, "0x"), 16, 16)
			if err != nil {
				return Assertion{}, false
			}
			a.Want = append(a.Want, assertExpect{addr: uint16(addr), want: uint8(val)})
		}
	}
	return a, true
}

// BreakFunc returns a mos6502.BreakFunc that checks this assertion
// against the live CPU and memory. It reports the first mismatch via
// *failure (left nil on success) and always returns false, letting
// execution continue after a check just like the original compiler's
// assertion-style breakpoints.
func (a Assertion) BreakFunc(failure *error) mos6502.BreakFunc {
	return func(c *mos6502.CPU) bool {
		for _, e := range a.Want {
			var got uint8
			var label string
			switch e.reg {
			case "a":
				got, label = c.A(), "a"
			case "x":
				got, label = c.X(), "x"
			case "y":
				got, label = c.Y(), "y"
			case "sp":
				got, label = c.SP(), "sp"
			case "pc":
				got, label = uint8(c.PC()&0xff), "pc"
			default:
				got, label = c.Read(e.addr), fmt.Sprintf("0x%04x", e.addr)
			}
			if got != e.want {
				*failure = fmt.Errorf("assertion at $%04x failed: %s = 0x%02x, want 0x%02x", a.Addr, label, got, e.want)
				return false
			}
		}
		return false
	}
}
