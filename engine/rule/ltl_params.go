package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// NeighborShape selects a Larger-Than-Life neighbourhood shape.
type NeighborShape byte

const (
	ShapeMoore      NeighborShape = 'M'
	ShapeVonNeumann NeighborShape = 'N'
	ShapeCircle     NeighborShape = 'C'
)

// LtLParams is a parsed Larger-Than-Life rule: range, state count, the
// birth/survival neighbour-count ranges, and neighbourhood shape.
type LtLParams struct {
	Range      int
	States     int // c; 0 or 2 means a plain 2-state rule
	Middle     bool
	MinS, MaxS int
	MinB, MaxB int
	Shape      NeighborShape

	CanonicalName string
}

// canonicalLtL renders the "R,C,M,S,B,N" named form; the legacy Kellie
// Evans positional form is only ever an input syntax, never emitted.
func canonicalLtL(p *LtLParams) string {
	m := 0
	if p.Middle {
		m = 1
	}
	return fmt.Sprintf("R%d,C%d,M%d,S%d..%d,B%d..%d,N%c",
		p.Range, p.States, m, p.MinS, p.MaxS, p.MinB, p.MaxB, byte(p.Shape))
}

const maxLtLRange = 500

// parseLtL parses the named "R,C,M,S,B,N" form and the legacy Kellie Evans
// positional form "R,minB,maxB,minS,maxS" (range, then birth range, then
// survival range; C defaults to 0, M to true, N to Moore).
func parseLtL(body string) (*LtLParams, error) {
	fields := strings.Split(body, ",")
	if len(fields) == 0 || !hasPrefixFold(fields[0], "R") {
		return nil, errf("LtL rule must start with R<range>")
	}

	if len(fields) == 5 && isLegacyPositional(fields) {
		return parseLegacyLtL(fields)
	}

	p := &LtLParams{States: 0, Middle: true, Shape: ShapeMoore}
	seen := map[byte]bool{}
	for _, f := range fields {
		if f == "" {
			return nil, errf("empty field in LtL rule")
		}
		key := f[0]
		if key >= 'a' && key <= 'z' {
			key -= 32
		}
		if seen[key] {
			return nil, errf("only one %c allowed", key)
		}
		seen[key] = true
		rest := f[1:]

		switch key {
		case 'R':
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 || n > maxLtLRange {
				return nil, errf("range must be in [1,%d]", maxLtLRange)
			}
			p.Range = n
		case 'C':
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 || n > 255 {
				return nil, errf("state count must be in [0,255]")
			}
			p.States = n
		case 'M':
			n, err := strconv.Atoi(rest)
			if err != nil || (n != 0 && n != 1) {
				return nil, errf("M must be 0 or 1")
			}
			p.Middle = n == 1
		case 'S':
			lo, hi, err := parseRange(rest)
			if err != nil {
				return nil, err
			}
			p.MinS, p.MaxS = lo, hi
		case 'B':
			lo, hi, err := parseRange(rest)
			if err != nil {
				return nil, err
			}
			p.MinB, p.MaxB = lo, hi
		case 'N':
			if len(rest) != 1 {
				return nil, errf("neighbourhood letter must be M, N, or C")
			}
			switch rest[0] {
			case 'M', 'm':
				p.Shape = ShapeMoore
			case 'N', 'n':
				p.Shape = ShapeVonNeumann
			case 'C', 'c':
				p.Shape = ShapeCircle
			default:
				return nil, errf("neighbourhood letter must be M, N, or C")
			}
		default:
			return nil, errf("unknown LtL field %q", f)
		}
	}
	if p.Range == 0 {
		return nil, errf("LtL rule must specify R<range>")
	}
	if err := validateLtLCounts(p); err != nil {
		return nil, err
	}
	return p, nil
}

// maxNeighbors returns the neighbourhood size for validating S/B ranges.
// It is a standalone copy of the arithmetic engine/ltl's shape.go
// performs, kept here to avoid engine/rule importing the engine it feeds.
func maxNeighbors(p *LtLParams) int {
	r := p.Range
	switch p.Shape {
	case ShapeVonNeumann:
		return 2*r*(r+1) + 1
	case ShapeCircle:
		r2 := r*r + r
		cnt := 0
		for dy := -r; dy <= r; dy++ {
			w := 0
			for (w+1)*(w+1)+dy*dy <= r2 {
				w++
			}
			cnt += 2*w + 1
		}
		return cnt
	default:
		return (2*r + 1) * (2*r + 1)
	}
}

func validateLtLCounts(p *LtLParams) error {
	if p.MinS > p.MaxS {
		return errf("S minimum must be <= S maximum")
	}
	if p.MinB > p.MaxB {
		return errf("B minimum must be <= B maximum")
	}
	maxn := maxNeighbors(p)
	if p.MinS < 0 || p.MaxS > maxn || p.MinB < 0 || p.MaxB > maxn {
		return errf("S/B values must be from 0 to %d neighbours", maxn)
	}
	return nil
}

// isLegacyPositional reports whether fields look like the Kellie Evans
// positional form: R<n> followed by four bare integers with no field-letter
// prefixes.
func isLegacyPositional(fields []string) bool {
	for _, f := range fields[1:] {
		for _, c := range f {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

func parseLegacyLtL(fields []string) (*LtLParams, error) {
	r, err := strconv.Atoi(fields[0][1:])
	if err != nil || r < 1 || r > maxLtLRange {
		return nil, errf("range must be in [1,%d]", maxLtLRange)
	}
	nums := make([]int, 4)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errf("bad legacy LtL field %q", f)
		}
		nums[i] = n
	}
	p := &LtLParams{
		Range:  r,
		States: 0,
		Middle: true,
		MinB:   nums[0], MaxB: nums[1],
		MinS: nums[2], MaxS: nums[3],
		Shape: ShapeMoore,
	}
	if err := validateLtLCounts(p); err != nil {
		return nil, err
	}
	return p, nil
}

func parseRange(s string) (lo, hi int, err error) {
	parts := strings.SplitN(s, "..", 2)
	lo, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errf("bad range %q", s)
	}
	if len(parts) == 1 {
		return lo, lo, nil
	}
	hi, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errf("bad range %q", s)
	}
	return lo, hi, nil
}
