// Package automaton unifies the QuickLife (2-state Moore) and
// LargerThanLife engines behind one capability interface, so a single CLI
// command or UI viewer can drive either without caring which compiled the
// active rule string.
package automaton

// Poller lets a long-running Step report progress and be asked to bail out
// early; both engine.Poller types satisfy this shape structurally.
type Poller interface {
	Poll() bool
}

// Automaton is the capability surface both engines expose: compile a
// rule, advance a generation, read and write cells, and report enough
// about the current state to drive a viewer.
type Automaton interface {
	// SetRule recompiles the governing rule string. On error the automaton
	// is left untouched. On success a Life-family engine keeps its cells,
	// while the LargerThanLife adapter is rebuilt with an empty grid.
	SetRule(ruleString string) error

	// Step advances by one generation. It returns true if poll reported an
	// interruption; the in-progress generation is still fully applied.
	Step(poll Poller) (interrupted bool)

	GetCell(x, y int) int
	SetCell(x, y, state int) error

	// NextCell returns the x-offset (>= 0) to the next live cell at or
	// after x on row y, or found=false if none exists within the
	// currently allocated extent.
	NextCell(x, y int) (dx int, state int, found bool)

	// FindEdges reports the bounding box of live cells; empty is true
	// when there are none.
	FindEdges() (minX, minY, maxX, maxY int, empty bool)

	Population() int64

	// MaxStates reports the number of distinct cell states this rule
	// supports: always 2 for a Life-family rule, possibly more for an
	// LtL rule with history decay (its "C" parameter).
	MaxStates() int

	// HyperCapable reports whether this engine can represent patterns at
	// hashed-quadtree scale (QuickLife can; LargerThanLife cannot).
	HyperCapable() bool

	// CanonicalRule returns the canonical rule string, including any
	// topology suffix.
	CanonicalRule() string
}
