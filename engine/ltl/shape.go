package ltl

import "github.com/telepair/ca-core/engine/rule"

// shape describes a neighbourhood as a per-row half-width: row dy (from -r
// to r) contains the columns [-halfWidth[dy+r], halfWidth[dy+r]]. Moore's
// half-width is constant (r); von Neumann's is a diamond taper (r-|dy|);
// Circle's is the widest w with w^2+dy^2 <= r^2+r. A single half-width
// array lets one row-prefix-sum kernel (see kernel.go) serve all three
// shapes instead of three bespoke loops.
type shape struct {
	r         int
	halfWidth []int // length 2r+1, indexed by dy+r
	size      int   // total window size, including the centre cell
	uniform   bool  // true when every row has the same half-width (Moore)
}

func buildShape(p *rule.LtLParams) shape {
	r := p.Range
	hw := make([]int, 2*r+1)
	size := 0
	switch p.Shape {
	case rule.ShapeMoore:
		for i := range hw {
			hw[i] = r
		}
		size = (2*r + 1) * (2*r + 1)
		return shape{r: r, halfWidth: hw, size: size, uniform: true}
	case rule.ShapeVonNeumann:
		for dy := -r; dy <= r; dy++ {
			w := r - abs(dy)
			hw[dy+r] = w
			size += 2*w + 1
		}
	case rule.ShapeCircle:
		r2 := r*r + r
		for dy := -r; dy <= r; dy++ {
			w := 0
			for (w+1)*(w+1)+dy*dy <= r2 {
				w++
			}
			hw[dy+r] = w
			size += 2*w + 1
		}
	}
	return shape{r: r, halfWidth: hw, size: size}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
