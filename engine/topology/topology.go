// Package topology parses the grid-topology suffix grammar (":T", ":P",
// ":S", ":K", ":C") and implements the border join/clear pass that makes an
// unbounded generation engine behave as a bounded plane, torus, Klein
// bottle, cross-surface, sphere, or infinite tube.
package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the topology family.
type Kind int

const (
	// Unbounded is the default when no suffix is present: an infinite plane.
	Unbounded Kind = iota
	Plane
	Torus
	Klein
	Cross
	Sphere
)

func (k Kind) String() string {
	switch k {
	case Unbounded:
		return "unbounded"
	case Plane:
		return "plane"
	case Torus:
		return "torus"
	case Klein:
		return "klein"
	case Cross:
		return "cross"
	case Sphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// editLimit is the per-axis editing limit: beyond this, border creation
// reports a fatal rather than silently overflowing.
const editLimit = 1_000_000_000

// maxDim caps a single axis' declared width/height.
const maxDim = 2_000_000_000

// Spec describes a fully-resolved grid topology, including the resolved
// interior bounding box in the engine's own coordinate space.
type Spec struct {
	Kind Kind

	Width, Height int // 0 means infinite (Torus only; a bare ':' makes both axes infinite)

	HTwist, VTwist bool // Klein only
	HShift, VShift int  // Torus (either edge) or Klein (the twisted edge only)

	// Resolved interior bounds: gridleft <= x <= gridright, gridtop <= y <= gridbottom.
	// Zero on both ends of an infinite axis.
	Left, Right, Top, Bottom int
}

// Bounded reports whether the grid has finite extent on both axes.
func (s Spec) Bounded() bool {
	return s.Kind != Unbounded && s.Width > 0 && s.Height > 0
}

// BoundedWidth and BoundedHeight report whether the given axis is finite.
func (s Spec) BoundedWidth() bool  { return s.Kind != Unbounded && s.Width > 0 }
func (s Spec) BoundedHeight() bool { return s.Kind != Unbounded && s.Height > 0 }

// Parse reads a topology suffix, including the leading ':'. An empty string
// yields Unbounded. A bare ":" behaves like ":T0,0": an unbounded torus,
// i.e. a plain infinite plane with no joins performed.
func Parse(suffix string) (Spec, error) {
	if suffix == "" {
		return Spec{Kind: Unbounded}, nil
	}
	if suffix[0] != ':' {
		return Spec{}, fmt.Errorf("topology: suffix must start with ':'")
	}
	body := suffix[1:]
	if body == "" {
		return Spec{Kind: Torus}, nil
	}

	var s Spec
	switch body[0] {
	case 'T', 't':
		s.Kind = Torus
	case 'P', 'p':
		s.Kind = Plane
	case 'S', 's':
		s.Kind = Sphere
	case 'K', 'k':
		s.Kind = Klein
	case 'C', 'c':
		s.Kind = Cross
	default:
		return Spec{}, fmt.Errorf("topology: unknown topology letter %q", body[0:1])
	}
	body = body[1:]

	p := &parser{s: body}
	if err := p.parseDims(&s); err != nil {
		return Spec{}, err
	}
	if err := validate(&s); err != nil {
		return Spec{}, err
	}
	resolveBounds(&s)
	return s, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) rest() string { return p.s[p.pos:] }

func (p *parser) parseDims(s *Spec) error {
	// width [ '*' ] [ ('+'|'-') shift ]  [ ',' height [ '*' ] [ ('+'|'-') shift ] ]
	wd, wtwist, wshift, err := p.parseOneDim()
	if err != nil {
		return err
	}
	s.Width = wd
	if wtwist {
		s.HTwist = true
	}
	if wshift != 0 {
		s.HShift = wshift
	}

	if p.pos < len(p.s) && p.s[p.pos] == ',' {
		p.pos++
		ht, htwist, hshift, err := p.parseOneDim()
		if err != nil {
			return err
		}
		s.Height = ht
		if htwist {
			s.VTwist = true
		}
		if hshift != 0 {
			s.VShift = hshift
		}
	} else {
		s.Height = s.Width
	}

	if p.pos != len(p.s) {
		return fmt.Errorf("topology: unexpected trailing characters %q", p.rest())
	}

	// Klein with neither edge marked twisted: default the vertical edge.
	if s.Kind == Klein && !s.HTwist && !s.VTwist {
		s.VTwist = true
	}
	return nil
}

func (p *parser) parseOneDim() (dim int, twist bool, shift int, err error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false, 0, fmt.Errorf("topology: expected a dimension digit at %q", p.rest())
	}
	dim, err = strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, false, 0, fmt.Errorf("topology: bad dimension: %w", err)
	}
	if dim > maxDim {
		return 0, false, 0, fmt.Errorf("topology: dimension %d exceeds editing limit", dim)
	}

	if p.pos < len(p.s) && p.s[p.pos] == '*' {
		twist = true
		p.pos++
	}
	if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
		sign := 1
		if p.s[p.pos] == '-' {
			sign = -1
		}
		p.pos++
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		if p.pos == start {
			return 0, false, 0, fmt.Errorf("topology: expected a shift amount at %q", p.rest())
		}
		n, err := strconv.Atoi(p.s[start:p.pos])
		if err != nil {
			return 0, false, 0, fmt.Errorf("topology: bad shift: %w", err)
		}
		shift = sign * n
	}
	return dim, twist, shift, nil
}

func validate(s *Spec) error {
	switch s.Kind {
	case Plane:
		if s.Width == 0 || s.Height == 0 {
			return fmt.Errorf("topology: a bounded plane needs a non-zero width and height")
		}
		if s.HTwist || s.VTwist || s.HShift != 0 || s.VShift != 0 {
			return fmt.Errorf("topology: plane can't have a twist or shift")
		}
	case Sphere:
		if s.Width == 0 {
			return fmt.Errorf("topology: sphere needs a non-zero width")
		}
		if s.Height != 0 && s.Height != s.Width {
			return fmt.Errorf("topology: sphere needs a square grid")
		}
		s.Height = s.Width
		if s.HTwist || s.VTwist || s.HShift != 0 || s.VShift != 0 {
			return fmt.Errorf("topology: sphere can't have a twist or shift")
		}
	case Cross:
		if s.Width == 0 || s.Height == 0 {
			return fmt.Errorf("topology: cross-surface needs a non-zero width and height")
		}
		if s.HTwist || s.VTwist || s.HShift != 0 || s.VShift != 0 {
			return fmt.Errorf("topology: cross-surface can't have an explicit twist or shift")
		}
	case Klein:
		if s.Width == 0 || s.Height == 0 {
			return fmt.Errorf("topology: klein bottle needs a non-zero width and height")
		}
		if s.HTwist && s.VTwist {
			return fmt.Errorf("topology: klein bottle can only have one twisted edge")
		}
		if s.HShift != 0 && !s.HTwist {
			return fmt.Errorf("topology: shift must be on the twisted edge")
		}
		if s.VShift != 0 && !s.VTwist {
			return fmt.Errorf("topology: shift must be on the twisted edge")
		}
		if s.HTwist && s.HShift != 0 && s.Width%2 != 0 {
			return fmt.Errorf("topology: shift only allowed on an even-length twisted edge")
		}
		if s.VTwist && s.VShift != 0 && s.Height%2 != 0 {
			return fmt.Errorf("topology: shift only allowed on an even-length twisted edge")
		}
		if s.HShift != 0 && s.VShift != 0 {
			return fmt.Errorf("topology: can't have both horizontal and vertical shifts")
		}
	case Torus:
		if s.HShift != 0 && s.VShift != 0 {
			return fmt.Errorf("topology: can't have both horizontal and vertical shifts")
		}
		if s.Width == 0 && s.HShift != 0 {
			return fmt.Errorf("topology: can't shift an infinite width")
		}
		if s.Height == 0 && s.VShift != 0 {
			return fmt.Errorf("topology: can't shift an infinite height")
		}
	}
	return nil
}

func resolveBounds(s *Spec) {
	if s.Width > 0 {
		s.Left = -(s.Width / 2)
		s.Right = s.Width - 1 + s.Left
	}
	if s.Height > 0 {
		s.Top = -(s.Height / 2)
		s.Bottom = s.Height - 1 + s.Top
	}
	if s.HShift != 0 && s.Width > 0 {
		s.HShift = ((s.HShift % s.Width) + s.Width) % s.Width
	}
	if s.VShift != 0 && s.Height > 0 {
		s.VShift = ((s.VShift % s.Height) + s.Height) % s.Height
	}
}

// CanonicalSuffix reconstructs the canonical topology suffix string, the
// inverse of Parse.
func CanonicalSuffix(s Spec) string {
	if s.Kind == Unbounded {
		return ""
	}
	var b strings.Builder
	b.WriteByte(':')
	switch s.Kind {
	case Plane:
		fmt.Fprintf(&b, "P%d,%d", s.Width, s.Height)
	case Sphere:
		fmt.Fprintf(&b, "S%d", s.Width)
	case Cross:
		fmt.Fprintf(&b, "C%d,%d", s.Width, s.Height)
	case Klein:
		b.WriteByte('K')
		if s.HTwist {
			fmt.Fprintf(&b, "%d", s.Width)
			if s.HShift != 0 {
				fmt.Fprintf(&b, "*+%d", s.HShift)
			} else {
				b.WriteByte('*')
			}
			fmt.Fprintf(&b, ",%d", s.Height)
		} else {
			fmt.Fprintf(&b, "%d,", s.Width)
			fmt.Fprintf(&b, "%d", s.Height)
			if s.VShift != 0 {
				fmt.Fprintf(&b, "*+%d", s.VShift)
			} else {
				b.WriteByte('*')
			}
		}
	case Torus:
		if s.HShift != 0 {
			fmt.Fprintf(&b, "T%d%+d,%d", s.Width, s.HShift, s.Height)
		} else if s.VShift != 0 {
			fmt.Fprintf(&b, "T%d,%d%+d", s.Width, s.Height, s.VShift)
		} else {
			fmt.Fprintf(&b, "T%d,%d", s.Width, s.Height)
		}
	}
	return b.String()
}
