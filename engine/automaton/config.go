package automaton

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/telepair/ca-core/engine/ltl"
	"github.com/telepair/ca-core/pkg/ui"
)

// Config holds the tunables common to both engines: a plain struct with
// an Init method rather than a generic config framework.
type Config struct {
	LtL        ltl.Config `yaml:"ltl"`
	Appearance Appearance `yaml:"appearance"`
}

// Appearance holds the viewer's live/dead glyphs and colors
// (alive-char/dead-char/alive-color/dead-color), shared by both engine
// kinds since View draws both the same way.
type Appearance struct {
	AliveChar  rune   `yaml:"-"`
	DeadChar   rune   `yaml:"-"`
	AliveColor string `yaml:"alive_color,omitempty"`
	DeadColor  string `yaml:"dead_color,omitempty"`
}

// Init fills unset fields with their defaults.
func (c *Config) Init() {
	c.LtL.Init()
	if c.Appearance.AliveChar == 0 {
		c.Appearance.AliveChar = ui.DefaultAliveChar
	}
	if c.Appearance.DeadChar == 0 {
		c.Appearance.DeadChar = ui.DefaultDeadChar
	}
	if c.Appearance.AliveColor == "" {
		c.Appearance.AliveColor = ui.DefaultAliveColor
	}
	if c.Appearance.DeadColor == "" {
		c.Appearance.DeadColor = ui.DefaultDeadColor
	}
}

// Scenario is a YAML-loadable description of a run: the rule string
// (topology suffix included), the viewing window size, and the refresh
// interval the UI should poll at.
type Scenario struct {
	Rule          string `yaml:"rule"`
	RefreshMillis int    `yaml:"refresh_ms,omitempty"`
	GridWidth     int    `yaml:"grid_width,omitempty"`
	GridHeight    int    `yaml:"grid_height,omitempty"`
}

// RefreshDuration converts RefreshMillis to a time.Duration, for callers
// that otherwise take their refresh rate as a flag-parsed Duration.
func (s *Scenario) RefreshDuration() time.Duration {
	return time.Duration(s.RefreshMillis) * time.Millisecond
}

// LoadConfigFile decodes a YAML scenario file, so the CLI can be driven
// from a file instead of only flags.
func LoadConfigFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("automaton: reading scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("automaton: parsing scenario file: %w", err)
	}
	if s.Rule == "" {
		return nil, fmt.Errorf("automaton: scenario file %s has no rule", path)
	}
	return &s, nil
}
