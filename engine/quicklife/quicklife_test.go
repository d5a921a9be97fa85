package quicklife

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepair/ca-core/engine/rule"
)

func compileLife(t *testing.T, s string) *rule.Life {
	t.Helper()
	c, err := rule.Compile(s)
	require.NoError(t, err)
	require.NotNil(t, c.Life)
	return c.Life
}

func TestEmptySentinelNoAlloc(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	assert.Equal(t, 0, u.GetCell(12345, -6789))
	assert.Equal(t, u.a.emptyAt(0), u.root)
}

func TestBlinkerOscillates(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	// vertical blinker at (0,-1),(0,0),(0,1)
	u.SetCell(0, -1, 1)
	u.SetCell(0, 0, 1)
	u.SetCell(0, 1, 1)
	assert.EqualValues(t, 3, u.Population())

	u.Step(nil)
	// should now be horizontal: (-1,0),(0,0),(1,0)
	assert.Equal(t, 1, u.GetCell(-1, 0))
	assert.Equal(t, 1, u.GetCell(0, 0))
	assert.Equal(t, 1, u.GetCell(1, 0))
	assert.Equal(t, 0, u.GetCell(0, -1))
	assert.Equal(t, 0, u.GetCell(0, 1))
	assert.EqualValues(t, 3, u.Population())

	u.Step(nil)
	assert.Equal(t, 1, u.GetCell(0, -1))
	assert.Equal(t, 1, u.GetCell(0, 0))
	assert.Equal(t, 1, u.GetCell(0, 1))
}

func TestGliderTranslates(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	// standard glider
	cells := [][2]int64{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	for _, c := range cells {
		u.SetCell(c[0], c[1], 1)
	}
	assert.EqualValues(t, 5, u.Population())

	for i := 0; i < 4; i++ {
		u.Step(nil)
	}
	assert.EqualValues(t, 5, u.Population())
	// after 4 generations the glider has moved by (1,1)
	translated := [][2]int64{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}
	for _, c := range translated {
		assert.Equal(t, 1, u.GetCell(c[0], c[1]), "expected live cell at %v", c)
	}
}

type alwaysInterrupt struct{}

func (alwaysInterrupt) Poll() bool { return true }

// TestStepAppliesFullGenerationEvenWhenInterrupted checks the
// single-generation-atomic guarantee: a poller that reports interruption
// up front still gets a fully computed and applied generation back, only
// flagged as interrupted for the caller to stop further stepping.
func TestStepAppliesFullGenerationEvenWhenInterrupted(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(0, -1, 1)
	u.SetCell(0, 0, 1)
	u.SetCell(0, 1, 1)

	interrupted := u.Step(alwaysInterrupt{})
	assert.True(t, interrupted)
	assert.Equal(t, 1, u.GetCell(-1, 0))
	assert.Equal(t, 1, u.GetCell(0, 0))
	assert.Equal(t, 1, u.GetCell(1, 0))
	assert.EqualValues(t, 3, u.Population())
	assert.EqualValues(t, 1, u.Generation())
}

func TestUprootAtLargeCoordinates(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(100000000, -200000000, 1)
	assert.Equal(t, 1, u.GetCell(100000000, -200000000))
	assert.EqualValues(t, 1, u.Population())
	assert.Greater(t, u.level, 0)

	u.SetCell(100000000, -200000000, 0)
	assert.Equal(t, 0, u.GetCell(100000000, -200000000))
	assert.EqualValues(t, 0, u.Population())
}

func TestFindEdgesBoundingBox(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	minX, minY, maxX, maxY, ok := u.Bounds()
	assert.False(t, ok)
	_ = minX
	_ = minY
	_ = maxX
	_ = maxY

	u.SetCell(-5, 10, 1)
	u.SetCell(7, -3, 1)
	minX, minY, maxX, maxY, ok = u.Bounds()
	require.True(t, ok)
	assert.EqualValues(t, -5, minX)
	assert.EqualValues(t, -3, minY)
	assert.EqualValues(t, 7, maxX)
	assert.EqualValues(t, 10, maxY)
}

func TestNextCellScansRow(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(50, 0, 1)
	got := u.NextCell(0, 0)
	assert.EqualValues(t, 50, got)
}

func TestTilePopulationUsesPopCount(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(0, 0, 1)
	u.SetCell(1, 0, 1)
	u.SetCell(2, 1, 1)
	assert.Equal(t, 3, u.TilePopulation(0, 0))
	assert.Equal(t, 0, u.TilePopulation(5, 5))
}

// TestToggleBackLeavesNoPendingChanges sets a cell and writes its old
// value back: the universe must end with zero live cells and no change
// bits anywhere, root flags included.
func TestToggleBackLeavesNoPendingChanges(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(3, 4, 1)
	assert.True(t, u.PendingChanges())

	u.SetCell(3, 4, 0)
	assert.EqualValues(t, 0, u.Population())
	assert.False(t, u.PendingChanges())
	assert.EqualValues(t, 0, u.RootFlags())
}

// TestStillLifeSettles steps a block: the first step recomputes the
// edited region, finds nothing changed, and clears every change bit, so
// the following steps have no work scheduled.
func TestStillLifeSettles(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	for _, c := range [][2]int64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		u.SetCell(c[0], c[1], 1)
	}
	assert.True(t, u.PendingChanges())

	u.Step(nil)
	assert.EqualValues(t, 4, u.Population())
	assert.False(t, u.PendingChanges(), "a settled block should leave no change bits")

	u.Step(nil)
	assert.EqualValues(t, 4, u.Population())
	for _, c := range [][2]int64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, 1, u.GetCell(c[0], c[1]))
	}
}

// TestChangeBitsTrackDeltas checks the flags/change-row invariant across
// a step: a blinker keeps oscillating, so change bits must remain set
// after every step, and the dirty flags must cover the dirty tile.
func TestChangeBitsTrackDeltas(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	u.SetCell(0, -1, 1)
	u.SetCell(0, 0, 1)
	u.SetCell(0, 1, 1)

	for i := 0; i < 4; i++ {
		u.Step(nil)
		assert.True(t, u.PendingChanges(), "an oscillator never settles (step %d)", i)
	}
	assert.EqualValues(t, 3, u.Population())
}

// TestRecycleSweepReclaimsDeadTiles runs a pattern that dies out and
// steps past the recycle period: the tree must collapse back to the
// empty sentinel with everything returned to the free lists.
func TestRecycleSweepReclaimsDeadTiles(t *testing.T) {
	u := NewUniverse(compileLife(t, "B3/S23"))
	// two isolated cells: both die on the first step
	u.SetCell(0, 0, 1)
	u.SetCell(10, 10, 1)

	for i := 0; i < recyclePeriod+1; i++ {
		u.Step(nil)
	}
	assert.EqualValues(t, 0, u.Population())
	assert.False(t, u.PendingChanges())
	assert.Equal(t, u.a.emptyAt(u.level), u.root)
}

func TestB0EmulationSingleCellWindow(t *testing.T) {
	l := compileLife(t, "B0123478/S01234678")
	u := NewUniverse(l)
	u.SetCell(0, 0, 1)
	assert.EqualValues(t, 1, u.Population())
	// a single step should not panic or diverge in the active window;
	// background B0 fill outside the active tile region is not modelled.
	u.Step(nil)
}
