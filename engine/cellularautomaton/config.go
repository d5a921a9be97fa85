package cellularautomaton

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderCN is the Chinese header text for the cellular automaton viewer.
	HeaderCN = "🚀 元胞自动机 🚀"
	// HeaderEN is the English header text for the cellular automaton viewer.
	HeaderEN = "🚀 Cellular Automaton 🚀"

	// DefaultAliveColor is the default alive cell color.
	DefaultAliveColor = lipgloss.Color("#FFFFFF")
	// DefaultDeadColor is the default dead cell color.
	DefaultDeadColor = lipgloss.Color("#000000")
	// DefaultAliveChar is the default alive cell character.
	DefaultAliveChar = '█'
	// DefaultDeadChar is the default dead cell character.
	DefaultDeadChar = ' '

	// Rules is the cycle of Wolfram codes the 't' key steps through,
	// rendered as a rule.Compile "W<n>" string against the QuickLife
	// engine rather than a hand-rolled 1-D lookup table.
	Rules = []WolframRule{
		{Code: 30},
		{Code: 90, ActiveColor: lipgloss.Color("#00FF00"), DeadColor: lipgloss.Color("#FF0000")},
		{Code: 110},
		{Code: 150},
		{Code: 184, ActiveChar: '🚗'},
	}

	defaultRows = 20
	defaultCols = 40
)

// WolframRule names a Wolfram code plus the display styling for its live
// and dead cells.
type WolframRule struct {
	Code        int
	ActiveChar  rune
	DeadChar    rune
	ActiveColor lipgloss.Color
	DeadColor   lipgloss.Color
}

// RuleString returns the rule.Compile string for this Wolfram code.
func (r WolframRule) RuleString() string {
	return "W" + itoa(r.Code)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := [4]byte{}
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Config represents the configuration for the cellular automaton viewer.
type Config struct {
	Rule       int
	AliveChar  string
	DeadChar   string
	AliveColor string
	DeadColor  string

	rule WolframRule
}

// Init initializes the configuration with default values. Any even code in
// [0,254] is accepted, not just the curated Rules cycle: a match against
// Rules supplies that rule's custom styling, otherwise the code runs with
// the plain default glyphs and colors.
func (c *Config) Init() {
	c.rule = WolframRule{Code: c.Rule}
	for _, r := range Rules {
		if r.Code == c.Rule {
			c.rule = r
			break
		}
	}
	if c.rule.ActiveChar == 0 {
		c.rule.ActiveChar = DefaultAliveChar
	}
	if c.rule.DeadChar == 0 {
		c.rule.DeadChar = DefaultDeadChar
	}
	if c.rule.ActiveColor == "" {
		c.rule.ActiveColor = DefaultAliveColor
	}
	if c.rule.DeadColor == "" {
		c.rule.DeadColor = DefaultDeadColor
	}
	if c.AliveColor != "" {
		c.rule.ActiveColor = lipgloss.Color(c.AliveColor)
	}
	if c.DeadColor != "" {
		c.rule.DeadColor = lipgloss.Color(c.DeadColor)
	}
	if len(c.AliveChar) > 0 {
		c.rule.ActiveChar = rune(c.AliveChar[0])
	}
	if len(c.DeadChar) > 0 {
		c.rule.DeadChar = rune(c.DeadChar[0])
	}
}

// GetRule returns the configured Wolfram rule.
func (c *Config) GetRule() WolframRule { return c.rule }
