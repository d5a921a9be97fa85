package automaton

import (
	"fmt"

	"github.com/telepair/ca-core/engine/quicklife"
	"github.com/telepair/ca-core/engine/rule"
	"github.com/telepair/ca-core/engine/topology"
)

// lifeAutomaton adapts quicklife.Universe's int64-addressed, always-
// unbounded tree to the Automaton interface. QuickLife's hashed-quadtree
// representation has no fixed extent to join a border around, so a
// bounded topology suffix on a Life-family rule is accepted for its
// canonical name only — Step always runs unbounded.
type lifeAutomaton struct {
	u    *quicklife.Universe
	l    *rule.Life
	topo topology.Spec
}

func newLifeAutomaton(l *rule.Life, topo topology.Spec) *lifeAutomaton {
	return &lifeAutomaton{u: quicklife.NewUniverse(l), l: l, topo: topo}
}

func (a *lifeAutomaton) SetRule(ruleString string) error {
	c, err := rule.Compile(ruleString)
	if err != nil {
		return err
	}
	if c.Life == nil {
		return fmt.Errorf("automaton: %q is not a Life-family rule", ruleString)
	}
	a.l = c.Life
	a.topo = c.Topology
	a.u.SetRule(c.Life)
	return nil
}

func (a *lifeAutomaton) Step(poll Poller) bool {
	return a.u.Step(poll)
}

func (a *lifeAutomaton) GetCell(x, y int) int { return a.u.GetCell(int64(x), int64(y)) }

func (a *lifeAutomaton) SetCell(x, y, state int) error {
	if state != 0 && state != 1 {
		return fmt.Errorf("automaton: life cell state must be 0 or 1, got %d", state)
	}
	a.u.SetCell(int64(x), int64(y), state)
	return nil
}

func (a *lifeAutomaton) NextCell(x, y int) (dx int, state int, found bool) {
	d := a.u.NextCell(int64(x), int64(y))
	if d < 0 {
		return -1, 0, false
	}
	return int(d), 1, true
}

func (a *lifeAutomaton) FindEdges() (minX, minY, maxX, maxY int, empty bool) {
	x0, y0, x1, y1, ok := a.u.Bounds()
	if !ok {
		return 0, 0, 0, 0, true
	}
	return int(x0), int(y0), int(x1), int(y1), false
}

func (a *lifeAutomaton) Population() int64 { return a.u.Population() }

func (a *lifeAutomaton) MaxStates() int { return 2 }

func (a *lifeAutomaton) HyperCapable() bool { return true }

func (a *lifeAutomaton) CanonicalRule() string { return a.l.CanonicalName }

// TileDensity reports the live-cell fraction of the origin tile (the
// TileSize x TileSize block of cells anchored at (0,0)), letting a viewer
// show a density readout without walking the whole tree.
func (a *lifeAutomaton) TileDensity() float64 {
	const cellsPerTile = quicklife.TileSize * quicklife.TileSize
	return float64(a.u.TilePopulation(0, 0)) / cellsPerTile
}
