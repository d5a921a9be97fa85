package topology

import "fmt"

// Grid is the minimal surface the border join/clear pass needs from a
// bounded generation engine: read/write access to cells in interior
// coordinates (as resolved onto Spec's Left/Right/Top/Bottom), extended
// into the border strip that surrounds the interior.
//
// BorderWidth reports how many cells deep the border strip is; a 2-state
// Moore engine asks for a width of 1, while LargerThanLife asks for
// range+1 so a full convolution window is available at the edge.
type Grid interface {
	BorderWidth() int
	Get(x, y int) int
	Set(x, y, state int)
}

// CellCursor is implemented by grids with a fast next-live-cell scan; the
// edge joins use it to visit only the live cells of a source row instead
// of probing every column.
type CellCursor interface {
	NextCell(x, y int) (dx int, state int, found bool)
}

// EdgeFinder is implemented by grids that can report the bounding box of
// their live cells. The join pass needs it for an infinite tube, where
// the join along the bounded axis must cover the pattern's extent along
// the unbounded one rather than any fixed rectangle.
type EdgeFinder interface {
	FindEdges() (minX, minY, maxX, maxY int, empty bool)
}

// nextLive returns the first live cell at or after x on row y, not past
// limit, through the grid's own cursor when it has one.
func nextLive(g Grid, x, y, limit int) (nx, state int, ok bool) {
	if c, cok := g.(CellCursor); cok {
		dx, st, found := c.NextCell(x, y)
		if !found || x+dx > limit {
			return 0, 0, false
		}
		return x + dx, st, true
	}
	for ; x <= limit; x++ {
		if st := g.Get(x, y); st != 0 {
			return x, st, true
		}
	}
	return 0, 0, false
}

// CreateBorderCells copies the live cells needed to emulate the given
// topology into the border strip surrounding g's interior, ready for an
// unbounded step. It is a no-op for an unbounded or plane topology. The
// border strip is all-dead on entry (DeleteBorderCells restores that
// after every step), so the row joins only write live cells; the column
// edges and corner cells are copied cell by cell, dead ones included.
func CreateBorderCells(s Spec, g Grid) error {
	switch s.Kind {
	case Unbounded, Plane:
		return nil
	case Torus:
		if !s.BoundedWidth() && !s.BoundedHeight() {
			return nil
		}
		if !s.Bounded() {
			return joinTube(s, g)
		}
		joinTorus(s, g)
	case Klein:
		joinKlein(s, g)
	case Cross:
		joinCross(s, g)
	case Sphere:
		joinSphere(s, g)
	}
	return nil
}

// DeleteBorderCells erases every cell in the border strip, restoring it
// to all-dead so the next CreateBorderCells call starts clean.
func DeleteBorderCells(s Spec, g Grid) error {
	if s.Kind == Unbounded {
		return nil
	}
	if s.Kind == Torus && !s.Bounded() {
		if !s.BoundedWidth() && !s.BoundedHeight() {
			return nil
		}
		return clearTubeBorder(s, g)
	}
	d := g.BorderWidth()
	for x := s.Left - d; x <= s.Right+d; x++ {
		for dy := 1; dy <= d; dy++ {
			g.Set(x, s.Top-dy, 0)
			g.Set(x, s.Bottom+dy, 0)
		}
	}
	for y := s.Top - d; y <= s.Bottom+d; y++ {
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, y, 0)
			g.Set(s.Right+dx, y, 0)
		}
	}
	return nil
}

func wrapX(s Spec, x int) int {
	w := s.Width
	if w == 0 {
		return x
	}
	n := ((x - s.Left) % w)
	if n < 0 {
		n += w
	}
	return n + s.Left
}

func wrapY(s Spec, y int) int {
	h := s.Height
	if h == 0 {
		return y
	}
	n := ((y - s.Top) % h)
	if n < 0 {
		n += h
	}
	return n + s.Top
}

// shiftedCol returns the interior source column for border column x when
// joining the top (atTop=true) or bottom edge of a torus, folding in the
// horizontal shift and the wrap ("top<->bottom with x-shift by hs modulo
// width").
func shiftedCol(s Spec, x int, atTop bool) int {
	if s.HShift == 0 {
		return wrapX(s, x)
	}
	shift := s.HShift
	if !atTop {
		shift = -shift
	}
	return wrapX(s, x-shift)
}

// shiftedRow is the vertical-shift analogue of shiftedCol for left/right joins.
func shiftedRow(s Spec, y int, atLeft bool) int {
	if s.VShift == 0 {
		return wrapY(s, y)
	}
	shift := s.VShift
	if !atLeft {
		shift = -shift
	}
	return wrapY(s, y-shift)
}

func reflectX(s Spec, x int) int { return s.Right - x + s.Left }
func reflectY(s Spec, y int) int { return s.Bottom - y + s.Top }

// joinTorus handles the unshifted and shifted torus: live cells of the
// top and bottom edge rows are copied (with any horizontal shift) to the
// opposite border, the one-cell-wide left/right edges are copied column
// by column (with any vertical shift), and the corner blocks compose the
// two joins.
func joinTorus(s Spec, g Grid) {
	d := g.BorderWidth()

	for dy := 1; dy <= d; dy++ {
		srcB := s.Bottom + 1 - dy // feeds the top border row Top-dy
		srcT := s.Top + dy - 1    // feeds the bottom border row Bottom+dy
		for x, st, ok := nextLive(g, s.Left, srcB, s.Right); ok; x, st, ok = nextLive(g, x+1, srcB, s.Right) {
			g.Set(wrapX(s, x+s.HShift), s.Top-dy, st)
		}
		for x, st, ok := nextLive(g, s.Left, srcT, s.Right); ok; x, st, ok = nextLive(g, x+1, srcT, s.Right) {
			g.Set(wrapX(s, x-s.HShift), s.Bottom+dy, st)
		}
	}

	for y := s.Top; y <= s.Bottom; y++ {
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, wrapY(s, y+s.VShift), g.Get(s.Right+1-dx, y))
			g.Set(s.Right+dx, wrapY(s, y-s.VShift), g.Get(s.Left+dx-1, y))
		}
	}

	for dx := 1; dx <= d; dx++ {
		for dy := 1; dy <= d; dy++ {
			if s.VShift != 0 {
				g.Set(s.Left-dx, s.Top-dy, g.Get(s.Right+1-dx, shiftedRow(s, s.Top-dy, true)))
				g.Set(s.Right+dx, s.Top-dy, g.Get(s.Left+dx-1, shiftedRow(s, s.Top-dy, false)))
				g.Set(s.Left-dx, s.Bottom+dy, g.Get(s.Right+1-dx, shiftedRow(s, s.Bottom+dy, true)))
				g.Set(s.Right+dx, s.Bottom+dy, g.Get(s.Left+dx-1, shiftedRow(s, s.Bottom+dy, false)))
			} else {
				g.Set(s.Left-dx, s.Top-dy, g.Get(shiftedCol(s, s.Left-dx, true), s.Bottom+1-dy))
				g.Set(s.Right+dx, s.Top-dy, g.Get(shiftedCol(s, s.Right+dx, true), s.Bottom+1-dy))
				g.Set(s.Left-dx, s.Bottom+dy, g.Get(shiftedCol(s, s.Left-dx, false), s.Top+dy-1))
				g.Set(s.Right+dx, s.Bottom+dy, g.Get(shiftedCol(s, s.Right+dx, false), s.Top+dy-1))
			}
		}
	}
}

// joinTube joins only the bounded axis of an infinite tube (":T0,ht" or
// ":Twd,0"), covering the live pattern's extent along the unbounded axis.
// Failing the edit limit here is what stops a pattern that has drifted
// beyond the engine's coordinate range from being joined at a garbage
// position.
func joinTube(s Spec, g Grid) error {
	d := g.BorderWidth()
	minX, minY, maxX, maxY := s.Left, s.Top, s.Right, s.Bottom
	if ef, ok := g.(EdgeFinder); ok {
		var empty bool
		minX, minY, maxX, maxY, empty = ef.FindEdges()
		if empty {
			return nil
		}
	}
	if minX < -editLimit || maxX > editLimit || minY < -editLimit || maxY > editLimit {
		return fmt.Errorf("topology: pattern is beyond the editing limit")
	}

	if s.BoundedHeight() {
		for dy := 1; dy <= d; dy++ {
			srcB := s.Bottom + 1 - dy
			srcT := s.Top + dy - 1
			for x, st, ok := nextLive(g, minX, srcB, maxX); ok; x, st, ok = nextLive(g, x+1, srcB, maxX) {
				g.Set(x, s.Top-dy, st)
			}
			for x, st, ok := nextLive(g, minX, srcT, maxX); ok; x, st, ok = nextLive(g, x+1, srcT, maxX) {
				g.Set(x, s.Bottom+dy, st)
			}
		}
		return nil
	}
	for y := minY; y <= maxY; y++ {
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, y, g.Get(s.Right+1-dx, y))
			g.Set(s.Right+dx, y, g.Get(s.Left+dx-1, y))
		}
	}
	return nil
}

// clearTubeBorder clears the bounded-axis border strip of an infinite
// tube across the pattern's extent (grown by one join's worth of slack,
// since a step can move the pattern before the clear runs).
func clearTubeBorder(s Spec, g Grid) error {
	d := g.BorderWidth()
	minX, minY, maxX, maxY := s.Left, s.Top, s.Right, s.Bottom
	if ef, ok := g.(EdgeFinder); ok {
		var empty bool
		minX, minY, maxX, maxY, empty = ef.FindEdges()
		if empty {
			return nil
		}
	}
	slack := 2 * (d + 1)
	if s.BoundedHeight() {
		for x := minX - d - slack; x <= maxX+d+slack; x++ {
			for dy := 1; dy <= d; dy++ {
				g.Set(x, s.Top-dy, 0)
				g.Set(x, s.Bottom+dy, 0)
			}
		}
		return nil
	}
	for y := minY - d - slack; y <= maxY+d+slack; y++ {
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, y, 0)
			g.Set(s.Right+dx, y, 0)
		}
	}
	return nil
}

// joinKlein handles a Klein bottle: the twisted edge pair joins top to
// bottom (or left to right) with a reflection along the edge and an
// optional shift by one on an even-length edge; the other pair joins
// directly like an ordinary torus. The corner blocks compose the straight
// join with the twisted one, exactly the diagonal adjacency the surface
// implies.
func joinKlein(s Spec, g Grid) {
	d := g.BorderWidth()

	if s.HTwist {
		destX := func(sx int) int {
			if s.HShift != 0 {
				return reflectX(s, wrapX(s, sx+1))
			}
			return reflectX(s, sx)
		}
		for dy := 1; dy <= d; dy++ {
			srcB := s.Bottom + 1 - dy
			srcT := s.Top + dy - 1
			for x, st, ok := nextLive(g, s.Left, srcB, s.Right); ok; x, st, ok = nextLive(g, x+1, srcB, s.Right) {
				g.Set(destX(x), s.Top-dy, st)
			}
			for x, st, ok := nextLive(g, s.Left, srcT, s.Right); ok; x, st, ok = nextLive(g, x+1, srcT, s.Right) {
				g.Set(destX(x), s.Bottom+dy, st)
			}
		}
		for y := s.Top; y <= s.Bottom; y++ {
			for dx := 1; dx <= d; dx++ {
				g.Set(s.Left-dx, y, g.Get(s.Right+1-dx, y))
				g.Set(s.Right+dx, y, g.Get(s.Left+dx-1, y))
			}
		}
		srcX := func(cx int) int {
			rx := reflectX(s, wrapX(s, cx))
			if s.HShift != 0 {
				rx = wrapX(s, rx-1)
			}
			return rx
		}
		for dx := 1; dx <= d; dx++ {
			for dy := 1; dy <= d; dy++ {
				g.Set(s.Left-dx, s.Top-dy, g.Get(srcX(s.Left-dx), s.Bottom+1-dy))
				g.Set(s.Right+dx, s.Top-dy, g.Get(srcX(s.Right+dx), s.Bottom+1-dy))
				g.Set(s.Left-dx, s.Bottom+dy, g.Get(srcX(s.Left-dx), s.Top+dy-1))
				g.Set(s.Right+dx, s.Bottom+dy, g.Get(srcX(s.Right+dx), s.Top+dy-1))
			}
		}
		return
	}

	srcY := func(cy int) int {
		ry := reflectY(s, wrapY(s, cy))
		if s.VShift != 0 {
			ry = wrapY(s, ry-1)
		}
		return ry
	}
	for y := s.Top; y <= s.Bottom; y++ {
		ry := srcY(y)
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, y, g.Get(s.Right+1-dx, ry))
			g.Set(s.Right+dx, y, g.Get(s.Left+dx-1, ry))
		}
	}
	for dy := 1; dy <= d; dy++ {
		srcB := s.Bottom + 1 - dy
		srcT := s.Top + dy - 1
		for x, st, ok := nextLive(g, s.Left, srcB, s.Right); ok; x, st, ok = nextLive(g, x+1, srcB, s.Right) {
			g.Set(x, s.Top-dy, st)
		}
		for x, st, ok := nextLive(g, s.Left, srcT, s.Right); ok; x, st, ok = nextLive(g, x+1, srcT, s.Right) {
			g.Set(x, s.Bottom+dy, st)
		}
	}
	for dx := 1; dx <= d; dx++ {
		for dy := 1; dy <= d; dy++ {
			g.Set(s.Left-dx, s.Top-dy, g.Get(s.Right+1-dx, srcY(s.Top-dy)))
			g.Set(s.Right+dx, s.Top-dy, g.Get(s.Left+dx-1, srcY(s.Top-dy)))
			g.Set(s.Left-dx, s.Bottom+dy, g.Get(s.Right+1-dx, srcY(s.Bottom+dy)))
			g.Set(s.Right+dx, s.Bottom+dy, g.Get(s.Left+dx-1, srcY(s.Bottom+dy)))
		}
	}
}

// joinCross handles the cross-surface: both edge pairs join to their
// opposite edge with a reflection, and the corner border cells copy the
// same-side interior corners (a corner of a cross-surface is adjacent to
// itself).
func joinCross(s Spec, g Grid) {
	d := g.BorderWidth()
	for dy := 1; dy <= d; dy++ {
		srcB := s.Bottom + 1 - dy
		srcT := s.Top + dy - 1
		for x, st, ok := nextLive(g, s.Left, srcB, s.Right); ok; x, st, ok = nextLive(g, x+1, srcB, s.Right) {
			g.Set(reflectX(s, x), s.Top-dy, st)
		}
		for x, st, ok := nextLive(g, s.Left, srcT, s.Right); ok; x, st, ok = nextLive(g, x+1, srcT, s.Right) {
			g.Set(reflectX(s, x), s.Bottom+dy, st)
		}
	}
	for y := s.Top; y <= s.Bottom; y++ {
		ry := reflectY(s, y)
		for dx := 1; dx <= d; dx++ {
			g.Set(s.Left-dx, y, g.Get(s.Right+1-dx, ry))
			g.Set(s.Right+dx, y, g.Get(s.Left+dx-1, ry))
		}
	}
	for dx := 1; dx <= d; dx++ {
		for dy := 1; dy <= d; dy++ {
			g.Set(s.Left-dx, s.Top-dy, g.Get(s.Left+dx-1, s.Top+dy-1))
			g.Set(s.Right+dx, s.Top-dy, g.Get(s.Right+1-dx, s.Top+dy-1))
			g.Set(s.Left-dx, s.Bottom+dy, g.Get(s.Left+dx-1, s.Bottom+1-dy))
			g.Set(s.Right+dx, s.Bottom+dy, g.Get(s.Right+1-dx, s.Bottom+1-dy))
		}
	}
}

// joinSphere handles the sphere topology (square grid only): the top edge
// joins to the left edge and the right edge joins to the bottom edge, a
// rotational identification rather than a reflection, with each corner
// border cell copying its own interior corner.
func joinSphere(s Spec, g Grid) {
	d := g.BorderWidth()

	for k := 1; k <= d; k++ {
		// Top edge rows feed the left border; bottom edge rows feed the
		// right border. Both run along x, so the live-cell cursor applies.
		srcTop := s.Top + k - 1
		for x, st, ok := nextLive(g, s.Left, srcTop, s.Right); ok; x, st, ok = nextLive(g, x+1, srcTop, s.Right) {
			g.Set(s.Left-k, s.Top+(x-s.Left), st)
		}
		srcBot := s.Bottom + 1 - k
		for x, st, ok := nextLive(g, s.Left, srcBot, s.Right); ok; x, st, ok = nextLive(g, x+1, srcBot, s.Right) {
			g.Set(s.Right+k, s.Top+(x-s.Left), st)
		}

		// The one-cell-wide left and right edge columns feed the top and
		// bottom borders.
		for i := 0; i < s.Width; i++ {
			g.Set(s.Left+i, s.Top-k, g.Get(s.Left+k-1, s.Top+i))
			g.Set(s.Left+i, s.Bottom+k, g.Get(s.Right+1-k, s.Top+i))
		}
	}

	for dx := 1; dx <= d; dx++ {
		for dy := 1; dy <= d; dy++ {
			g.Set(s.Left-dx, s.Top-dy, g.Get(s.Left+dx-1, s.Top+dy-1))
			g.Set(s.Right+dx, s.Top-dy, g.Get(s.Right+1-dx, s.Top+dy-1))
			g.Set(s.Left-dx, s.Bottom+dy, g.Get(s.Left+dx-1, s.Bottom+1-dy))
			g.Set(s.Right+dx, s.Bottom+dy, g.Get(s.Right+1-dx, s.Bottom+1-dy))
		}
	}
}
