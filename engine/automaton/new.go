package automaton

import (
	"fmt"

	"github.com/telepair/ca-core/engine/rule"
)

// New compiles ruleString and returns the Automaton that implements it:
// quicklife for a 2-state Moore rule, ltl for a Larger-Than-Life one.
func New(ruleString string, cfg Config) (Automaton, error) {
	cfg.Init()
	c, err := rule.Compile(ruleString)
	if err != nil {
		return nil, err
	}
	switch {
	case c.Life != nil:
		return newLifeAutomaton(c.Life, c.Topology), nil
	case c.LtL != nil:
		return newLtLAutomaton(*c.LtL, c.Topology, cfg.LtL), nil
	default:
		return nil, fmt.Errorf("automaton: rule %q compiled to neither a Life nor LtL ruleset", ruleString)
	}
}
