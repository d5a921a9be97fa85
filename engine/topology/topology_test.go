package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnbounded(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Unbounded, s.Kind)
	assert.False(t, s.Bounded())
}

func TestParseBareColon(t *testing.T) {
	s, err := Parse(":")
	require.NoError(t, err)
	assert.Equal(t, Torus, s.Kind)
	assert.Equal(t, 0, s.Width)
	assert.Equal(t, 0, s.Height)
}

func TestParsePlane(t *testing.T) {
	s, err := Parse(":P5,5")
	require.NoError(t, err)
	assert.Equal(t, Plane, s.Kind)
	assert.Equal(t, 5, s.Width)
	assert.Equal(t, 5, s.Height)
	assert.True(t, s.Bounded())
	assert.Equal(t, -2, s.Left)
	assert.Equal(t, 2, s.Right)
}

func TestParseSquareHeightDefault(t *testing.T) {
	s, err := Parse(":T10")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 10, s.Height)
}

func TestParseTorusShift(t *testing.T) {
	s, err := Parse(":T4+1,3")
	require.NoError(t, err)
	assert.Equal(t, Torus, s.Kind)
	assert.Equal(t, 1, s.HShift)
	assert.Equal(t, 0, s.VShift)
}

func TestParseTorusBothShiftsRejected(t *testing.T) {
	_, err := Parse(":T4+1,3+1")
	assert.Error(t, err)
}

func TestParseInfiniteTube(t *testing.T) {
	s, err := Parse(":T0,20")
	require.NoError(t, err)
	assert.False(t, s.BoundedWidth())
	assert.True(t, s.BoundedHeight())
}

func TestParseKleinDefaultsVerticalTwist(t *testing.T) {
	s, err := Parse(":K10,20")
	require.NoError(t, err)
	assert.True(t, s.VTwist)
	assert.False(t, s.HTwist)
}

func TestParseKleinExplicitHorizontalTwist(t *testing.T) {
	s, err := Parse(":K4*+1,3")
	require.NoError(t, err)
	assert.True(t, s.HTwist)
	assert.Equal(t, 1, s.HShift)
}

func TestParseKleinShiftOnUntwistedEdgeRejected(t *testing.T) {
	_, err := Parse(":K4,3+1")
	assert.Error(t, err)
}

func TestParseKleinOddLengthTwistedShiftRejected(t *testing.T) {
	_, err := Parse(":K5*+1,3")
	assert.Error(t, err)
}

func TestParseSphereRequiresSquare(t *testing.T) {
	_, err := Parse(":S4,5")
	assert.Error(t, err)

	s, err := Parse(":S10")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 10, s.Height)
}

func TestParsePlaneRejectsTwist(t *testing.T) {
	_, err := Parse(":P5*,5")
	assert.Error(t, err)
}

func TestCanonicalSuffixRoundTrip(t *testing.T) {
	cases := []string{
		":P5,5",
		":T4,3",
		":T4+1,3",
		":S10",
		":C4,3",
	}
	for _, suffix := range cases {
		t.Run(suffix, func(t *testing.T) {
			s, err := Parse(suffix)
			require.NoError(t, err)
			got := CanonicalSuffix(s)
			assert.Equal(t, suffix, got)

			// Canonicalisation is idempotent.
			s2, err := Parse(got)
			require.NoError(t, err)
			assert.Equal(t, CanonicalSuffix(s2), got)
		})
	}
}

func TestParseDimensionEditLimit(t *testing.T) {
	_, err := Parse(":P3000000000,5")
	assert.Error(t, err)
}
