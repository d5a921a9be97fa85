package automaton

import (
	"fmt"

	"github.com/telepair/ca-core/engine/ltl"
	"github.com/telepair/ca-core/engine/rule"
	"github.com/telepair/ca-core/engine/topology"
)

// ltlAutomaton adapts *ltl.Automaton to the Automaton interface. Unlike
// QuickLife's tree, LargerThanLife's grid dimensions are derived from the
// rule's range and topology, so SetRule rebuilds the engine outright on a
// successful compile rather than mutating one in place. A failed SetRule
// leaves the prior engine untouched; a successful one always starts from
// an empty grid, whether or not the grid shape changed.
type ltlAutomaton struct {
	engine *ltl.Automaton
	cfg    ltl.Config
	topo   topology.Spec
}

func newLtLAutomaton(params rule.LtLParams, topo topology.Spec, cfg ltl.Config) *ltlAutomaton {
	return &ltlAutomaton{engine: ltl.New(params, topo, cfg), cfg: cfg, topo: topo}
}

func (a *ltlAutomaton) SetRule(ruleString string) error {
	c, err := rule.Compile(ruleString)
	if err != nil {
		return err
	}
	if c.LtL == nil {
		return fmt.Errorf("automaton: %q is not a LargerThanLife rule", ruleString)
	}
	a.engine = ltl.New(*c.LtL, c.Topology, a.cfg)
	a.topo = c.Topology
	return nil
}

// Step wraps the engine's per-generation update with the topology's
// border join/clear pass, a no-op for an unbounded grid. A half-bounded
// tube runs as plain unbounded: the engine only allocates a fixed border
// when both axes are bounded, so there is no strip to join into.
func (a *ltlAutomaton) Step(poll Poller) bool {
	if a.topo.Bounded() {
		_ = topology.CreateBorderCells(a.topo, a.engine)
	}
	interrupted := a.engine.Step(poll)
	if a.topo.Bounded() {
		_ = topology.DeleteBorderCells(a.topo, a.engine)
	}
	return interrupted
}

func (a *ltlAutomaton) GetCell(x, y int) int { return a.engine.GetCell(x, y) }

func (a *ltlAutomaton) SetCell(x, y, state int) error { return a.engine.SetCell(x, y, state) }

func (a *ltlAutomaton) NextCell(x, y int) (dx int, state int, found bool) {
	return a.engine.NextCell(x, y)
}

func (a *ltlAutomaton) FindEdges() (minX, minY, maxX, maxY int, empty bool) {
	return a.engine.FindEdges()
}

func (a *ltlAutomaton) Population() int64 { return a.engine.Population() }

func (a *ltlAutomaton) MaxStates() int { return a.engine.NumCellStates() }

func (a *ltlAutomaton) HyperCapable() bool { return a.engine.HyperCapable() }

func (a *ltlAutomaton) CanonicalRule() string { return a.engine.CanonicalRule() }

// BorderWidth, Get, and Set let the topology package's border join/clear
// pass treat a bounded LtL automaton as a topology.Grid directly.
func (a *ltlAutomaton) BorderWidth() int { return a.engine.BorderWidth() }
func (a *ltlAutomaton) Get(x, y int) int { return a.engine.Get(x, y) }
func (a *ltlAutomaton) Set(x, y, s int)  { a.engine.Set(x, y, s) }
