package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memGrid is a flat map-backed Grid used only to exercise the join/clear
// algorithms in isolation from any generation engine.
type memGrid struct {
	border int
	cells  map[[2]int]int
}

func newMemGrid(border int) *memGrid {
	return &memGrid{border: border, cells: make(map[[2]int]int)}
}

func (g *memGrid) BorderWidth() int        { return g.border }
func (g *memGrid) Get(x, y int) int        { return g.cells[[2]int{x, y}] }
func (g *memGrid) Set(x, y, state int) {
	if state == 0 {
		delete(g.cells, [2]int{x, y})
		return
	}
	g.cells[[2]int{x, y}] = state
}

// FindEdges implements EdgeFinder by scanning the live cells, so the
// infinite-tube join can locate the pattern.
func (g *memGrid) FindEdges() (minX, minY, maxX, maxY int, empty bool) {
	if len(g.cells) == 0 {
		return 0, 0, 0, 0, true
	}
	first := true
	for c := range g.cells {
		if first {
			minX, maxX, minY, maxY = c[0], c[0], c[1], c[1]
			first = false
			continue
		}
		if c[0] < minX {
			minX = c[0]
		}
		if c[0] > maxX {
			maxX = c[0]
		}
		if c[1] < minY {
			minY = c[1]
		}
		if c[1] > maxY {
			maxY = c[1]
		}
	}
	return minX, minY, maxX, maxY, false
}

func TestJoinTubeBoundedAxisOnly(t *testing.T) {
	s, err := Parse(":T0,3")
	require.NoError(t, err)
	g := newMemGrid(1)
	g.Set(7, s.Top, 1) // far from the origin along the unbounded axis

	require.NoError(t, CreateBorderCells(s, g))
	assert.Equal(t, 1, g.Get(7, s.Bottom+1), "top edge wraps to bottom border")
	assert.Equal(t, 0, g.Get(7, s.Top-1))

	require.NoError(t, DeleteBorderCells(s, g))
	assert.Equal(t, 0, g.Get(7, s.Bottom+1))
	assert.Equal(t, 1, g.Get(7, s.Top), "interior cell untouched by the clear")
}

func TestCreateBorderCellsPlaneNoop(t *testing.T) {
	s, err := Parse(":P5,5")
	require.NoError(t, err)
	g := newMemGrid(1)
	g.Set(s.Left, s.Top, 1)
	require.NoError(t, CreateBorderCells(s, g))
	assert.Equal(t, 0, g.Get(s.Left-1, s.Top))
}

func TestBorderRoundTripAllZeroBeforeAndAfter(t *testing.T) {
	s, err := Parse(":T5,5")
	require.NoError(t, err)
	g := newMemGrid(1)
	// A pattern entirely within the interior.
	g.Set(s.Left+1, s.Top+1, 1)
	g.Set(s.Left+2, s.Top+1, 1)

	// Border strip is all-zero before any join.
	for x := s.Left - 1; x <= s.Right+1; x++ {
		assert.Equal(t, 0, g.Get(x, s.Top-1))
		assert.Equal(t, 0, g.Get(x, s.Bottom+1))
	}

	require.NoError(t, CreateBorderCells(s, g))
	require.NoError(t, DeleteBorderCells(s, g))

	for x := s.Left - 1; x <= s.Right+1; x++ {
		assert.Equal(t, 0, g.Get(x, s.Top-1))
		assert.Equal(t, 0, g.Get(x, s.Bottom+1))
	}
	for y := s.Top - 1; y <= s.Bottom+1; y++ {
		assert.Equal(t, 0, g.Get(s.Left-1, y))
		assert.Equal(t, 0, g.Get(s.Right+1, y))
	}
}

func TestJoinTorusWraps(t *testing.T) {
	s, err := Parse(":T5,5")
	require.NoError(t, err)
	g := newMemGrid(1)
	g.Set(s.Left, s.Top, 1) // top-left interior corner

	require.NoError(t, CreateBorderCells(s, g))

	// Bottom border directly below the top-left corner mirrors it.
	assert.Equal(t, 1, g.Get(s.Left, s.Bottom+1))
	// Right border directly right of the top-left corner mirrors it.
	assert.Equal(t, 1, g.Get(s.Right+1, s.Top))
}

// fillLetters seeds a width x height interior with distinct states
// 1, 2, 3, ... row-major, so each border cell's source is identifiable.
func fillLetters(s Spec, g *memGrid) {
	state := 1
	for y := s.Top; y <= s.Bottom; y++ {
		for x := s.Left; x <= s.Right; x++ {
			g.Set(x, y, state)
			state++
		}
	}
}

// The expected border contents below are worked out by hand from each
// topology's edge identification, with A=1, B=2, ... row-major.
func TestJoinCrossSurfaceDiagram(t *testing.T) {
	s, err := Parse(":C4,3")
	require.NoError(t, err)
	g := newMemGrid(1)
	fillLetters(s, g) // A..D / E..H / I..L

	require.NoError(t, CreateBorderCells(s, g))

	// a l k j i d
	// l A B C D i
	// h E F G H e
	// d I J K L a
	// i d c b a l
	top := []int{1, 12, 11, 10, 9, 4}
	bottom := []int{9, 4, 3, 2, 1, 12}
	for i, want := range top {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Top-1), "top border col %d", i)
	}
	for i, want := range bottom {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Bottom+1), "bottom border col %d", i)
	}
	assert.Equal(t, 12, g.Get(s.Left-1, s.Top))   // l beside A
	assert.Equal(t, 9, g.Get(s.Right+1, s.Top))   // i beside D
	assert.Equal(t, 8, g.Get(s.Left-1, s.Top+1))  // h beside E
	assert.Equal(t, 5, g.Get(s.Right+1, s.Top+1)) // e beside H
}

func TestJoinKleinHorizontalTwistDiagram(t *testing.T) {
	s, err := Parse(":K4*,3")
	require.NoError(t, err)
	g := newMemGrid(1)
	fillLetters(s, g)

	require.NoError(t, CreateBorderCells(s, g))

	// i l k j i l
	// d A B C D a
	// h E F G H e
	// l I J K L i
	// a d c b a d
	top := []int{9, 12, 11, 10, 9, 12}
	bottom := []int{1, 4, 3, 2, 1, 4}
	for i, want := range top {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Top-1), "top border col %d", i)
	}
	for i, want := range bottom {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Bottom+1), "bottom border col %d", i)
	}
	assert.Equal(t, 4, g.Get(s.Left-1, s.Top))  // d beside A
	assert.Equal(t, 1, g.Get(s.Right+1, s.Top)) // a beside D
}

func TestJoinKleinVerticalTwistDiagram(t *testing.T) {
	s, err := Parse(":K4,3*")
	require.NoError(t, err)
	g := newMemGrid(1)
	fillLetters(s, g)

	require.NoError(t, CreateBorderCells(s, g))

	// d i j k l a
	// l A B C D i
	// h E F G H e
	// d I J K L a
	// l a b c d i
	top := []int{4, 9, 10, 11, 12, 1}
	bottom := []int{12, 1, 2, 3, 4, 9}
	for i, want := range top {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Top-1), "top border col %d", i)
	}
	for i, want := range bottom {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Bottom+1), "bottom border col %d", i)
	}
	assert.Equal(t, 12, g.Get(s.Left-1, s.Top))    // l beside A
	assert.Equal(t, 9, g.Get(s.Right+1, s.Top))    // i beside D
	assert.Equal(t, 4, g.Get(s.Left-1, s.Bottom))  // d beside I
	assert.Equal(t, 1, g.Get(s.Right+1, s.Bottom)) // a beside L
}

func TestJoinShiftedTorusDiagram(t *testing.T) {
	s, err := Parse(":T4+1,3")
	require.NoError(t, err)
	g := newMemGrid(1)
	fillLetters(s, g)

	require.NoError(t, CreateBorderCells(s, g))

	// k l i j k l
	// d A B C D a
	// h E F G H e
	// l I J K L i
	// a b c d a b
	top := []int{11, 12, 9, 10, 11, 12}
	bottom := []int{1, 2, 3, 4, 1, 2}
	for i, want := range top {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Top-1), "top border col %d", i)
	}
	for i, want := range bottom {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Bottom+1), "bottom border col %d", i)
	}
	assert.Equal(t, 4, g.Get(s.Left-1, s.Top))  // d beside A
	assert.Equal(t, 1, g.Get(s.Right+1, s.Top)) // a beside D
}

func TestJoinSphereDiagram(t *testing.T) {
	s, err := Parse(":S3")
	require.NoError(t, err)
	g := newMemGrid(1)
	fillLetters(s, g) // A..C / D..F / G..I

	require.NoError(t, CreateBorderCells(s, g))

	// a a d g c
	// a A B C g
	// b D E F h
	// c G H I i
	// g c f i i
	top := []int{1, 1, 4, 7, 3}
	bottom := []int{7, 3, 6, 9, 9}
	for i, want := range top {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Top-1), "top border col %d", i)
	}
	for i, want := range bottom {
		assert.Equal(t, want, g.Get(s.Left-1+i, s.Bottom+1), "bottom border col %d", i)
	}
	left := []int{1, 2, 3}
	right := []int{7, 8, 9}
	for i := range left {
		assert.Equal(t, left[i], g.Get(s.Left-1, s.Top+i), "left border row %d", i)
		assert.Equal(t, right[i], g.Get(s.Right+1, s.Top+i), "right border row %d", i)
	}
}

func TestJoinKleinHorizontalTwistReflects(t *testing.T) {
	s, err := Parse(":K5*,5")
	require.NoError(t, err)
	g := newMemGrid(1)
	g.Set(s.Left, s.Top, 1) // top-left interior corner

	require.NoError(t, CreateBorderCells(s, g))

	// The twisted top/bottom join reflects the x coordinate.
	reflected := s.Right - s.Left + s.Left
	assert.Equal(t, 1, g.Get(reflected, s.Bottom+1))
}
