// Package cellularautomaton renders a 1-D Wolfram rule as a scrolling
// history of rows, each one a generation of the real QuickLife engine
// running the rule's 2-D reinterpretation (see engine/rule's
// compileWolfram): a live cell, once born, never dies, so the pattern
// only ever grows downward one row per generation — exactly the
// triangular history picture a classic 1-D Wolfram viewer draws.
package cellularautomaton

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/telepair/ca-core/engine/automaton"
	"github.com/telepair/ca-core/pkg/ui"
)

var _ ui.StepEngine = (*CellularAutomaton)(nil)

// CellularAutomaton drives a QuickLife automaton seeded with one live
// cell on row 0, appending one rendered row per Step.
type CellularAutomaton struct {
	rule       WolframRule
	rows       int
	cols       int
	generation int
	eng        automaton.Automaton
	screen     *ui.Screen
	buf        []rune
}

// New creates a cellular automaton viewer for the given Wolfram code.
func New(ruleCode, rows, cols int) *CellularAutomaton {
	slog.Debug("NewCellularAutomaton", "rule", ruleCode, "rows", rows, "cols", cols)
	cfg := Config{Rule: ruleCode}
	cfg.Init()
	ca := &CellularAutomaton{
		rule: cfg.GetRule(),
		rows: rows,
		cols: cols,
	}
	ca.initial()
	return ca
}

// View returns the view of the cellular automaton.
func (ca *CellularAutomaton) View() string { return ca.screen.View() }

// Step advances the automaton by one generation and renders the new row.
func (ca *CellularAutomaton) Step() (int, bool) {
	ca.eng.Step(nil)
	ca.generation++
	ca.render()
	return ca.generation, true
}

// Header returns the header text for the UI.
func (ca *CellularAutomaton) Header(lang ui.Language) string {
	if lang == ui.Chinese {
		return HeaderCN
	}
	return HeaderEN
}

// Status returns the status text for the UI.
func (ca *CellularAutomaton) Status(lang ui.Language) []ui.Status {
	if lang == ui.Chinese {
		return []ui.Status{
			{Label: "规则", Value: ca.rule.RuleString()},
			{Label: "代数", Value: fmt.Sprintf("%d", ca.generation)},
		}
	}
	return []ui.Status{
		{Label: "Rule", Value: ca.rule.RuleString()},
		{Label: "Generation", Value: fmt.Sprintf("%d", ca.generation)},
	}
}

// HandleKeys returns the available keyboard controls.
func (ca *CellularAutomaton) HandleKeys(lang ui.Language) []ui.Control {
	if lang == ui.Chinese {
		return []ui.Control{{Keys: []string{"T"}, Label: "规则"}}
	}
	return []ui.Control{{Keys: []string{"T"}, Label: "Rule"}}
}

// Handle handles a key press.
func (ca *CellularAutomaton) Handle(key string) (bool, error) {
	slog.Debug("CellularAutomaton Handle", "key", key)
	if strings.ToLower(key) != "t" {
		slog.Debug("CellularAutomaton Handle", "key", key, "warning", "key not handled")
		return false, nil
	}
	idx := 0
	for i, r := range Rules {
		if r.Code == ca.rule.Code {
			idx = i
			break
		}
	}
	next := Rules[(idx+1)%len(Rules)]
	cfg := Config{Rule: next.Code}
	cfg.Init()
	ca.rule = cfg.GetRule()
	slog.Debug("CellularAutomaton Handle", "key", key, "rule", ca.rule.RuleString())
	ca.initial()
	return true, nil
}

// Reset resets the cellular automaton to its initial state.
func (ca *CellularAutomaton) Reset(rows, cols int) error {
	slog.Debug("CellularAutomaton Reset", "rows", rows, "cols", cols)
	ca.rows = rows
	ca.cols = cols
	ca.initial()
	return nil
}

// IsFinished returns whether the cellular automaton has finished execution.
func (ca *CellularAutomaton) IsFinished() bool { return false }

// Stop stops the cellular automaton execution.
func (ca *CellularAutomaton) Stop() {}

func (ca *CellularAutomaton) initial() {
	if ca.screen == nil {
		ca.screen = ui.NewScreen(ca.rows, ca.cols)
	} else {
		ca.screen.SetSize(ca.cols, ca.rows)
		ca.screen.Reset()
	}
	ca.screen.SetCharColor(ca.rule.ActiveChar, ca.rule.ActiveColor)
	ca.screen.SetCharColor(ca.rule.DeadChar, ca.rule.DeadColor)
	ca.screen.Reset()

	ca.buf = make([]rune, ca.cols)
	ca.generation = 0

	eng, err := automaton.New(ca.rule.RuleString(), automaton.Config{})
	if err != nil {
		slog.Warn("CellularAutomaton initial: SetRule failed", "rule", ca.rule.RuleString(), "error", err)
	}
	ca.eng = eng
	if err := ca.eng.SetCell(ca.cols/2, 0, 1); err != nil {
		slog.Warn("CellularAutomaton initial: seeding cell failed", "error", err)
	}
	ca.render()
}

func (ca *CellularAutomaton) render() {
	for x := range ca.cols {
		if ca.eng.GetCell(x, ca.generation) != 0 {
			ca.buf[x] = ca.rule.ActiveChar
		} else {
			ca.buf[x] = ca.rule.DeadChar
		}
	}
	ca.screen.Append(ca.buf)
}
