package assembler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bdwalton/m6502/mos6502"
)

// lineRegexp splits a source line into an optional label, an optional
// mnemonic, an optional operand, and a trailing comment. It mirrors the
// original assembler's single flat regex rather than a hand-rolled
// tokenizer, matching the compactness the one-pass design calls for.
var lineRegexp = regexp.MustCompile(`^(\w+:)?\s*((\w+)\s*(\S+)?)?\s*(;.*)?$`)

// operandRegexp recognizes the canonical 6502 operand syntax: an optional
// leading "(", an optional "#", an optional "$", a number or identifier,
// an optional ",x"/",y", an optional closing ")", and an optional
// trailing ",y" (for the "(zp),y" form).
var operandRegexp = regexp.MustCompile(`(?i)^(\()?(#?)(\$?)(\w*)(,[xy])?(\))?(,y)?$`)

// ParsedLine is the result of splitting one assembly-source line.
type ParsedLine struct {
	Label    string
	Mnemonic string
	Operand  string
	Empty    bool
}

// ParseLine splits line into its label, mnemonic and operand fields.
func ParseLine(line string) (ParsedLine, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ParsedLine{Empty: true}, true
	}
	m := lineRegexp.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedLine{}, false
	}
	return ParsedLine{
		Label:    strings.TrimSuffix(m[1], ":"),
		Mnemonic: strings.ToUpper(m[3]),
		Operand:  m[4],
	}, true
}

// Operand is a parsed operand expression: an addressing mode and either
// a resolved numeric value or, if the expression referenced an
// as-yet-undefined symbol, the symbol's name.
type Operand struct {
	Mode       mos6502.AddrMode
	Value      int
	Unresolved string
}

// ParseOperand resolves s against syms and returns its addressing mode
// and value. An empty s yields AddrImplied. A bare identifier not found
// in syms is reported via Unresolved, with Value tentatively 0x100 (a wide
// operand); callers doing multi-pass assembly retry once more symbols are
// defined.
func ParseOperand(s string, syms *SymbolTable) (Operand, bool) {
	if s == "" {
		return Operand{Mode: mos6502.AddrImplied}, true
	}

	m := operandRegexp.FindStringSubmatch(s)
	if m == nil {
		return Operand{}, false
	}
	hasParenOpen, hasImm, hasDollar, ident, idx, hasParenClose, trailingY :=
		m[1] == "(", m[2] == "#", m[3] == "$", m[4], strings.ToLower(m[5]), m[6] == ")", strings.ToLower(m[7]) == ",y"

	if strings.EqualFold(ident, "a") && !hasDollar && !hasImm && idx == "" {
		return Operand{Mode: mos6502.AddrAccumulator}, true
	}

	var val int
	unresolved := ""
	switch {
	case hasDollar:
		v, err := strconv.ParseInt(ident, 16, 32)
		if err != nil {
			return Operand{}, false
		}
		val = int(v)
	case ident != "" && isDigits(ident):
		v, err := strconv.ParseInt(ident, 10, 32)
		if err != nil {
			return Operand{}, false
		}
		val = int(v)
	case ident != "":
		if v, ok := syms.Lookup(ident); ok {
			val = v
		} else {
			unresolved = ident
			val = 0x100 // tentative: assume a wide (Absolute) encoding until resolved
		}
	}

	wide := val >= 256

	var out Operand
	out.Value = val
	out.Unresolved = unresolved

	switch {
	case hasParenOpen && hasParenClose:
		switch {
		case idx == ",x" && (!wide || unresolved != ""):
			out.Mode = mos6502.AddrIndirectX
		case trailingY && (!wide || unresolved != ""):
			out.Mode = mos6502.AddrIndirectY
		case idx == "" && !trailingY:
			out.Mode = mos6502.AddrIndirect
		default:
			return Operand{}, false
		}
	case hasImm:
		out.Mode = mos6502.AddrImmediate
	case idx == ",y":
		if wide {
			out.Mode = mos6502.AddrAbsoluteY
		} else {
			out.Mode = mos6502.AddrZeroPageY
		}
	case idx == ",x":
		if wide {
			out.Mode = mos6502.AddrAbsoluteX
		} else {
			out.Mode = mos6502.AddrZeroPageX
		}
	default:
		if wide {
			out.Mode = mos6502.AddrAbsolute
		} else {
			out.Mode = mos6502.AddrZeroPage
		}
	}

	return out, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
