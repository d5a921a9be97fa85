package ltl

import (
	"fmt"
	"log/slog"

	"github.com/telepair/ca-core/engine/rule"
	"github.com/telepair/ca-core/engine/topology"
)

// Poller lets a long-running Step report progress and be asked to bail
// out early, mirroring quicklife.Poller.
type Poller interface {
	Poll() bool
}

// Automaton is the Larger-Than-Life generation engine: a bounded or
// unbounded grid of multi-state cells, advanced one generation at a time
// against a compiled rule.LtLParams.
type Automaton struct {
	params    rule.LtLParams
	spec      topology.Spec
	cfg       Config
	sh        shape
	maxStates int

	bounded bool
	border  int // thickness of the fixed topology-join border (bounded grids only)
	cushion int // minimum live-cell distance from an unbounded grid's edge

	outerW, outerH   int
	originX, originY int // world coordinate of outer grid cell (0,0)
	curr, next       []uint8

	population int64
	minX, minY int
	maxX, maxY int
	haveLive   bool

	generation int64
}

// New creates an Automaton governed by params, realised over spec's
// topology (bounded or unbounded).
func New(params rule.LtLParams, spec topology.Spec, cfg Config) *Automaton {
	cfg.Init()
	a := &Automaton{
		params:    params,
		spec:      spec,
		cfg:       cfg,
		sh:        buildShape(&params),
		maxStates: maxCellStates(params.States),
		bounded:   spec.Bounded(),
		border:    borderWidth(params.Range),
		cushion:   params.Range,
	}
	if a.bounded {
		a.outerW = spec.Width + 2*a.border
		a.outerH = spec.Height + 2*a.border
		a.originX = spec.Left - a.border
		a.originY = spec.Top - a.border
	} else {
		a.outerW = cfg.DefaultSize
		a.outerH = cfg.DefaultSize
		a.originX = -a.outerW / 2
		a.originY = -a.outerH / 2
	}
	a.curr = make([]uint8, a.outerW*a.outerH)
	a.next = make([]uint8, a.outerW*a.outerH)
	slog.Debug("ltl.New", "range", params.Range, "shape", string(params.Shape),
		"bounded", a.bounded, "outerW", a.outerW, "outerH", a.outerH)
	return a
}

// borderWidth is the Grid data model's "max(range+1, 2) cells on each
// side".
func borderWidth(r int) int {
	if r+1 > 2 {
		return r + 1
	}
	return 2
}

// BorderWidth implements topology.Grid.
func (a *Automaton) BorderWidth() int { return a.border }

func (a *Automaton) index(x, y int) (int, bool) {
	cx := x - a.originX
	cy := y - a.originY
	if cx < 0 || cx >= a.outerW || cy < 0 || cy >= a.outerH {
		return 0, false
	}
	return cy*a.outerW + cx, true
}

// Get implements topology.Grid: reads without growing or error reporting,
// used only by the border join/clear pass.
func (a *Automaton) Get(x, y int) int {
	idx, ok := a.index(x, y)
	if !ok {
		return 0
	}
	return int(a.curr[idx])
}

// Set implements topology.Grid: writes the border strip directly, with no
// population/bounding-box bookkeeping (those track interior cells only).
func (a *Automaton) Set(x, y, state int) {
	idx, ok := a.index(x, y)
	if !ok {
		return
	}
	a.curr[idx] = uint8(state)
}

// GetCell returns the cell state at (x, y), or 0 outside any bounded
// grid / outside the currently allocated unbounded extent.
func (a *Automaton) GetCell(x, y int) int { return a.Get(x, y) }

// SetCell sets (x, y) to state, growing an unbounded grid as needed.
// It fails for a bounded grid when the coordinate lies outside the grid,
// and when state is out of [0, NumCellStates).
func (a *Automaton) SetCell(x, y, state int) error {
	if state < 0 || state >= a.maxStates {
		return fmt.Errorf("ltl: state %d out of range [0,%d)", state, a.maxStates)
	}
	if a.bounded {
		left, top, right, bottom := a.interiorBounds()
		if x < left || x > right || y < top || y > bottom {
			return fmt.Errorf("ltl: (%d,%d) is outside the bounded grid", x, y)
		}
	}
	if !a.bounded {
		if err := a.ensureCovers(x, y); err != nil {
			return err
		}
	}
	idx, ok := a.index(x, y)
	if !ok {
		return fmt.Errorf("ltl: (%d,%d) is outside the bounded grid", x, y)
	}
	old := a.curr[idx]
	a.curr[idx] = uint8(state)
	a.updateBookkeeping(x, y, old, uint8(state))
	return nil
}

func (a *Automaton) updateBookkeeping(x, y int, old, newv uint8) {
	if old == 0 && newv != 0 {
		a.population++
	} else if old != 0 && newv == 0 {
		a.population--
	}
	if newv != 0 {
		if !a.haveLive {
			a.minX, a.maxX, a.minY, a.maxY = x, x, y, y
			a.haveLive = true
		} else {
			if x < a.minX {
				a.minX = x
			}
			if x > a.maxX {
				a.maxX = x
			}
			if y < a.minY {
				a.minY = y
			}
			if y > a.maxY {
				a.maxY = y
			}
		}
	}
	if a.population == 0 {
		a.haveLive = false
	}
}

// NextCell returns the x-distance to the next non-zero cell at or after x
// on row y, within the currently allocated grid, or found=false if none.
func (a *Automaton) NextCell(x, y int) (dx int, state int, found bool) {
	limit := a.originX + a.outerW
	for xi := x; xi < limit; xi++ {
		if v := a.GetCell(xi, y); v != 0 {
			return xi - x, v, true
		}
	}
	return -1, 0, false
}

// FindEdges reports the bounding box of live cells; empty is true when
// the automaton has no live cells.
func (a *Automaton) FindEdges() (minX, minY, maxX, maxY int, empty bool) {
	if !a.haveLive {
		return 0, 0, 0, 0, true
	}
	return a.minX, a.minY, a.maxX, a.maxY, false
}

// Population returns the number of live (non-zero-state) cells.
func (a *Automaton) Population() int64 { return a.population }

// Generation returns the number of Step calls applied so far.
func (a *Automaton) Generation() int64 { return a.generation }

// NumCellStates returns the number of distinct cell states this rule
// supports (2 for a plain birth/survival rule, more when history decay is
// active).
func (a *Automaton) NumCellStates() int { return a.maxStates }

// HyperCapable reports whether this engine can represent patterns at
// hashed-quadtree scale; LargerThanLife never can.
func (a *Automaton) HyperCapable() bool { return false }

// CanonicalRule returns the canonical rule string, including any
// topology suffix.
func (a *Automaton) CanonicalRule() string { return a.params.CanonicalName }

// recountPopulation recomputes Population from scratch over the interior
// rectangle, using packed popcounts rather than a byte-at-a-time scan.
// Nothing in the package calls it; the population is otherwise kept by
// the incremental counter in updateBookkeeping.
func (a *Automaton) recountPopulation() {
	left, top, right, bottom := a.interiorBounds()
	a.population = packedPopulation(a.curr, a.outerW, left-a.originX, top-a.originY, right-a.originX, bottom-a.originY)
}

// interiorBounds returns the rectangle of cells a Step actually updates.
// A bounded grid's interior is the fixed spec rectangle (border cells hold
// the topology join and are never stepped directly). An unbounded grid has
// no separate border: the whole allocated array is live, and the interior
// is just inset by cushion (=range) from each edge so every cell's
// neighbourhood stays in bounds.
func (a *Automaton) interiorBounds() (left, top, right, bottom int) {
	if a.bounded {
		return a.spec.Left, a.spec.Top, a.spec.Right, a.spec.Bottom
	}
	return a.originX + a.cushion, a.originY + a.cushion, a.originX + a.outerW - a.cushion - 1, a.originY + a.outerH - a.cushion - 1
}

// Step advances the automaton by one generation, computing each interior
// cell's next state from its current neighbour count via the fast or
// cumulative-sum kernel (see kernel.go) and the birth/survive/decay
// transition (see transition.go). It returns true if poll reported an
// interruption, in which case the generation already in progress is
// still fully applied: interruption stops further steps, never a
// half-applied one.
func (a *Automaton) Step(poll Poller) bool {
	interrupted := poll != nil && poll.Poll()

	if !a.bounded {
		if err := a.maybeGrow(); err != nil {
			slog.Warn("ltl.Step: grid resize failed", "error", err)
			return true
		}
	}

	wleft, wtop, wright, wbottom := a.interiorBounds()
	left, top := wleft-a.originX, wtop-a.originY
	right, bottom := wright-a.originX, wbottom-a.originY
	counts := neighborCounts(a.curr, a.outerW, a.outerH, left, top, right, bottom, a.sh)

	a.population = 0
	a.haveLive = false
	minS, maxS, minB, maxB := a.params.MinS, a.params.MaxS, a.params.MinB, a.params.MaxB
	for ly := top; ly <= bottom; ly++ {
		row := ly * a.outerW
		y := ly + a.originY
		for lx := left; lx <= right; lx++ {
			idx := row + lx
			x := lx + a.originX
			old := a.curr[idx]
			centreAlive := old == 1
			n := counts[idx]
			if centreAlive && !a.params.Middle {
				n--
			}
			ns := nextState(old, n, minS, maxS, minB, maxB, a.maxStates)
			a.next[idx] = ns
			if ns != 0 {
				a.population++
				if !a.haveLive {
					a.minX, a.maxX, a.minY, a.maxY = x, x, y, y
					a.haveLive = true
				} else {
					if x < a.minX {
						a.minX = x
					}
					if x > a.maxX {
						a.maxX = x
					}
					if y < a.minY {
						a.minY = y
					}
					if y > a.maxY {
						a.maxY = y
					}
				}
			}
		}
	}

	a.curr, a.next = a.next, a.curr
	a.generation++
	return interrupted
}
