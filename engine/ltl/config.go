// Package ltl implements the Larger-Than-Life generation engine: a
// multi-state rule parameterized by a radius, birth/survival neighbour-count
// ranges, an optional history ("C") parameter, and a Moore/von-Neumann/Circle
// neighbourhood shape, advanced on both bounded and unbounded grids with a
// cumulative-sum acceleration for large radii.
package ltl

// Config holds the tunables that aren't part of the rule string itself:
// a plain struct with an Init method that fills in defaults rather than
// a generic config framework.
type Config struct {
	// DefaultSize is the starting width/height of an unbounded grid before
	// any cell forces it to grow.
	DefaultSize int
	// MaxCells caps the total number of cells an unbounded grid may grow
	// to (outerWd*outerHt).
	MaxCells int
}

const (
	defaultGridSize = 400
	defaultMaxCells = 100_000_000
)

// Init fills unset fields with their defaults.
func (c *Config) Init() {
	if c.DefaultSize <= 0 {
		c.DefaultSize = defaultGridSize
	}
	if c.MaxCells <= 0 {
		c.MaxCells = defaultMaxCells
	}
}
