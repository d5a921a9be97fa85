package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conwayLtL is Conway's Life in LtL notation (centre excluded from its
// own neighbour count), used to drive the border join/clear pass with a
// rule whose behaviour is easy to predict by hand.
const conwayLtL = "R1,C0,M0,S2..3,B3..3,NM"

// TestLtLTorusBlinkerWrapsAcrossEdge places a vertical blinker on the
// right edge of a 5x5 torus; after one step its horizontal phase must
// wrap around to the left column.
func TestLtLTorusBlinkerWrapsAcrossEdge(t *testing.T) {
	a, err := New(conwayLtL+":T5,5", Config{})
	require.NoError(t, err)

	// columns span [-2, 2]; the blinker sits in the rightmost column
	require.NoError(t, a.SetCell(2, -1, 1))
	require.NoError(t, a.SetCell(2, 0, 1))
	require.NoError(t, a.SetCell(2, 1, 1))

	a.Step(nil)

	assert.Equal(t, 1, a.GetCell(1, 0))
	assert.Equal(t, 1, a.GetCell(2, 0))
	assert.Equal(t, 1, a.GetCell(-2, 0), "live cell should wrap to the left column")
	assert.Equal(t, 0, a.GetCell(2, -1))
	assert.Equal(t, 0, a.GetCell(2, 1))
	assert.EqualValues(t, 3, a.Population())
}

// TestLtLPlaneBlinkerDoesNotWrap runs the same pattern on a bounded
// plane, where the edge must behave as a dead wall instead.
func TestLtLPlaneBlinkerDoesNotWrap(t *testing.T) {
	a, err := New(conwayLtL+":P5,5", Config{})
	require.NoError(t, err)

	require.NoError(t, a.SetCell(2, -1, 1))
	require.NoError(t, a.SetCell(2, 0, 1))
	require.NoError(t, a.SetCell(2, 1, 1))

	a.Step(nil)

	assert.Equal(t, 1, a.GetCell(1, 0))
	assert.Equal(t, 1, a.GetCell(2, 0))
	assert.Equal(t, 0, a.GetCell(-2, 0))
	assert.EqualValues(t, 2, a.Population())
}

// TestLtLBorderClearAfterStep checks the §4.B pairing: after a joined
// step the border strip outside the interior is all dead again.
func TestLtLBorderClearAfterStep(t *testing.T) {
	a, err := New(conwayLtL+":T5,5", Config{})
	require.NoError(t, err)
	require.NoError(t, a.SetCell(2, -1, 1))
	require.NoError(t, a.SetCell(2, 0, 1))
	require.NoError(t, a.SetCell(2, 1, 1))

	a.Step(nil)

	lt, ok := a.(*ltlAutomaton)
	require.True(t, ok)
	d := lt.BorderWidth()
	for x := -2 - d; x <= 2+d; x++ {
		for dy := 1; dy <= d; dy++ {
			assert.Equal(t, 0, lt.Get(x, -2-dy), "top border at %d", x)
			assert.Equal(t, 0, lt.Get(x, 2+dy), "bottom border at %d", x)
		}
	}
	for y := -2 - d; y <= 2+d; y++ {
		for dx := 1; dx <= d; dx++ {
			assert.Equal(t, 0, lt.Get(-2-dx, y), "left border at %d", y)
			assert.Equal(t, 0, lt.Get(2+dx, y), "right border at %d", y)
		}
	}
}
