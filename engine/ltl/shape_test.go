package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telepair/ca-core/engine/rule"
)

func TestBuildShapeMoore(t *testing.T) {
	sh := buildShape(&rule.LtLParams{Range: 2, Shape: rule.ShapeMoore})
	assert.True(t, sh.uniform)
	assert.Equal(t, 25, sh.size) // (2*2+1)^2
	for _, w := range sh.halfWidth {
		assert.Equal(t, 2, w)
	}
}

func TestBuildShapeVonNeumann(t *testing.T) {
	sh := buildShape(&rule.LtLParams{Range: 2, Shape: rule.ShapeVonNeumann})
	assert.False(t, sh.uniform)
	// diamond taper: half-widths 0,1,2,1,0 for dy = -2..2
	assert.Equal(t, []int{0, 1, 2, 1, 0}, sh.halfWidth)
	assert.Equal(t, 1+3+5+3+1, sh.size)
}

func TestBuildShapeCircle(t *testing.T) {
	sh := buildShape(&rule.LtLParams{Range: 3, Shape: rule.ShapeCircle})
	assert.False(t, sh.uniform)
	assert.Len(t, sh.halfWidth, 7)
	// the centre row's half-width can't exceed the Moore half-width
	assert.LessOrEqual(t, sh.halfWidth[3], 3)
	assert.Greater(t, sh.size, 0)
}
