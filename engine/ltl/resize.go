package ltl

import "fmt"

// growStep is the number of cells an unbounded grid grows by on an edge
// that has run out of cushion (twice the maximum supported range).
const growStep = 1000

// shrinkSlack is how much spare cushion (beyond the minimum) must exist on
// a side before that side is shrunk back down, so growth and shrink don't
// oscillate every generation as a pattern jitters near the threshold.
const shrinkSlack = 2 * growStep

// resizeTo reallocates curr/next to a new outer rectangle anchored at
// (originX, originY), copying over whatever of the old content still
// falls inside the new bounds.
func (a *Automaton) resizeTo(originX, originY, outerW, outerH int) error {
	if int64(outerW)*int64(outerH) > int64(a.cfg.MaxCells) {
		return fmt.Errorf("ltl: grid of %dx%d cells exceeds MaxCells=%d", outerW, outerH, a.cfg.MaxCells)
	}
	curr := make([]uint8, outerW*outerH)
	next := make([]uint8, outerW*outerH)

	dx := a.originX - originX
	dy := a.originY - originY
	for y := 0; y < a.outerH; y++ {
		ny := y + dy
		if ny < 0 || ny >= outerH {
			continue
		}
		srcRow := y * a.outerW
		dstRow := ny * outerW
		for x := 0; x < a.outerW; x++ {
			nx := x + dx
			if nx < 0 || nx >= outerW {
				continue
			}
			curr[dstRow+nx] = a.curr[srcRow+x]
		}
	}

	a.curr = curr
	a.next = next
	a.originX = originX
	a.originY = originY
	a.outerW = outerW
	a.outerH = outerH
	return nil
}

// ensureCovers grows the unbounded grid, if necessary, so that (x, y) plus
// one full cushion around it lies within the allocated rectangle — used
// by SetCell, which may plant a cell anywhere before Step has a chance to
// grow the grid on its own.
func (a *Automaton) ensureCovers(x, y int) error {
	left := a.originX + a.cushion
	top := a.originY + a.cushion
	right := a.originX + a.outerW - a.cushion - 1
	bottom := a.originY + a.outerH - a.cushion - 1
	if x >= left && x <= right && y >= top && y <= bottom {
		return nil
	}

	originX, originY := a.originX, a.originY
	outerW, outerH := a.outerW, a.outerH
	if x < left {
		grow := left - x + growStep
		originX -= grow
		outerW += grow
	}
	if x > right {
		grow := x - right + growStep
		outerW += grow
	}
	if y < top {
		grow := top - y + growStep
		originY -= grow
		outerH += grow
	}
	if y > bottom {
		grow := y - bottom + growStep
		outerH += grow
	}
	return a.resizeTo(originX, originY, outerW, outerH)
}

// maybeGrow is called at the start of every Step on an unbounded grid. It
// grows any edge whose cushion has been eaten into by the live bounding
// box coming within range of it (so the next generation's neighbourhood
// lookups stay in bounds), and shrinks edges that have accumulated far
// more spare cushion than the minimum, so a pattern that has drifted or
// shrunk doesn't carry an ever-larger allocation with it. It is a no-op
// when there are no live cells.
func (a *Automaton) maybeGrow() error {
	if !a.haveLive {
		return nil
	}

	left := a.originX + a.cushion
	top := a.originY + a.cushion
	right := a.originX + a.outerW - a.cushion - 1
	bottom := a.originY + a.outerH - a.cushion - 1

	// Step's interior loop (see automaton.go) only ever updates cells in
	// [left,right]x[top,bottom], so a live cell can reach an edge exactly
	// but never cross it on its own; the <= here is what actually catches
	// a pattern that has worked its way out to the edge, since a strict <
	// would never fire and the grid would stay stuck at its initial size.
	growLeft, growRight, growTop, growBottom := 0, 0, 0, 0
	if a.minX <= left {
		growLeft = left - a.minX + growStep
	}
	if a.maxX >= right {
		growRight = a.maxX - right + growStep
	}
	if a.minY <= top {
		growTop = top - a.minY + growStep
	}
	if a.maxY >= bottom {
		growBottom = a.maxY - bottom + growStep
	}
	if growLeft > 0 || growRight > 0 || growTop > 0 || growBottom > 0 {
		return a.resizeTo(
			a.originX-growLeft,
			a.originY-growTop,
			a.outerW+growLeft+growRight,
			a.outerH+growTop+growBottom,
		)
	}

	shrinkLeft, shrinkRight, shrinkTop, shrinkBottom := 0, 0, 0, 0
	if spare := a.minX - left; spare > shrinkSlack {
		shrinkLeft = spare - growStep
	}
	if spare := right - a.maxX; spare > shrinkSlack {
		shrinkRight = spare - growStep
	}
	if spare := a.minY - top; spare > shrinkSlack {
		shrinkTop = spare - growStep
	}
	if spare := bottom - a.maxY; spare > shrinkSlack {
		shrinkBottom = spare - growStep
	}
	if shrinkLeft > 0 || shrinkRight > 0 || shrinkTop > 0 || shrinkBottom > 0 {
		newW := a.outerW - shrinkLeft - shrinkRight
		newH := a.outerH - shrinkTop - shrinkBottom
		if newW > 2*a.cushion+1 && newH > 2*a.cushion+1 {
			return a.resizeTo(a.originX+shrinkLeft, a.originY+shrinkTop, newW, newH)
		}
	}
	return nil
}
