// Package rule compiles textual cellular-automaton rule strings —
// totalistic and non-totalistic isotropic Life-like notation, Wolfram
// 1-D codes, explicit MAP lookup tables, and Larger-Than-Life's
// R,C,M,S,B,N notation — into the lookup tables the generation engines
// step with, and back into a canonical string form.
package rule

import (
	"fmt"
	"strings"

	"github.com/telepair/ca-core/engine/topology"
)

// MaxRuleLength is the longest rule string (including any topology suffix)
// the compiler accepts.
const MaxRuleLength = 500

// ParseError is returned for any malformed rule string; the caller's
// previous compiled rule (if any) is left untouched.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func errf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Life holds a compiled 2-state Moore (or Hex/von-Neumann) rule: the
// tables QuickLife steps with.
type Life struct {
	NeighborhoodMask int
	Totalistic       bool
	UsingMap         bool
	Wolfram          int // -1 if not a Wolfram rule, else even in [0,254]

	RuleBits   int // bit i = birth on count i (0..8); bit (9+i) = survival on count i
	LetterBits [18]int

	Rule3x3 [512]int8
	Rule0   [65536]uint8
	Rule1   [65536]uint8

	// rule3x3Odd holds the odd-generation 3x3 table during B0 emulation,
	// before it is expanded into Rule1 by convertTo4x4.
	rule3x3Odd [512]int8

	// mapPayload is the normalized MAP base64 payload (trailing unused
	// bits zeroed), captured at decode time so the canonical name renders
	// the rule as entered even after a B0 rewrite of Rule3x3.
	mapPayload string

	AlternateRules bool

	CanonicalName string
}

// TableForParity returns the 3x3 lookup table to use for a generation of
// the given parity (generation number mod 2). Only B0-emulated rules with
// AlternateRules set have a different table for odd generations; all
// other rules ignore parity and always return Rule3x3.
func (l *Life) TableForParity(parity int) *[512]int8 {
	if l.AlternateRules && parity%2 != 0 {
		return &l.rule3x3Odd
	}
	return &l.Rule3x3
}

// Table4x4ForParity returns the 4x4-window lookup table for a generation
// of the given parity: Rule1 only when B0 emulation alternates tables on
// odd generations, Rule0 otherwise.
func (l *Life) Table4x4ForParity(parity int) *[65536]uint8 {
	if l.AlternateRules && parity%2 != 0 {
		return &l.Rule1
	}
	return &l.Rule0
}

// Compiled is the result of compiling a rule string: either a Life rule
// (QuickLife-capable) or a LargerThanLife parameter set, plus the grid
// topology the suffix (if any) describes.
type Compiled struct {
	Life     *Life
	LtL      *LtLParams
	Topology topology.Spec
}

// Compile parses a rule string (optionally followed by a ':'-prefixed
// topology suffix) into its lookup tables / parameter set and a canonical
// rendering. It never mutates any previously compiled state — on error the
// caller's existing Compiled value remains valid to keep using.
func Compile(ruleString string) (*Compiled, error) {
	if len(ruleString) > MaxRuleLength {
		return nil, errf("rule string exceeds %d characters", MaxRuleLength)
	}

	body, suffix := splitTopologySuffix(ruleString)

	topo, err := topology.Parse(suffix)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(strings.ToUpper(body), "MAP"):
		l, err := compileMap(body)
		if err != nil {
			return nil, err
		}
		l.CanonicalName = canonicalName(l) + topology.CanonicalSuffix(topo)
		return &Compiled{Life: l, Topology: topo}, nil

	case isLtLSyntax(body):
		p, err := parseLtL(body)
		if err != nil {
			return nil, err
		}
		switch topo.Kind {
		case topology.Unbounded, topology.Torus, topology.Plane:
		default:
			return nil, errf("only a torus or plane grid is allowed for a LargerThanLife rule")
		}
		if !topo.Bounded() && p.MinB == 0 {
			return nil, errf("B0 is not allowed if universe is unbounded")
		}
		p.CanonicalName = canonicalLtL(p) + topology.CanonicalSuffix(topo)
		return &Compiled{LtL: p, Topology: topo}, nil

	default:
		l, err := compileLife(body)
		if err != nil {
			return nil, err
		}
		l.CanonicalName = canonicalName(l) + topology.CanonicalSuffix(topo)
		return &Compiled{Life: l, Topology: topo}, nil
	}
}

// splitTopologySuffix separates the rule body from an optional
// ':'-introduced topology suffix, being careful not to split on a colon
// that doesn't exist.
func splitTopologySuffix(s string) (body, suffix string) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func isLtLSyntax(body string) bool {
	if len(body) == 0 {
		return false
	}
	switch body[0] {
	case 'R', 'r':
		return strings.Contains(body, ",")
	default:
		return false
	}
}
