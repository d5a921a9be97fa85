package ltl

import "github.com/ajroetker/go-highway/hwy"

// fastKernelMaxRange is the largest radius at which the direct convolution
// is used; above it a cumulative-sum table pays for its setup cost.
const fastKernelMaxRange = 2

// neighborCounts computes, for every interior cell of the outer grid, the
// number of live cells within sh's window, INCLUDING the centre cell when
// it is alive — callers subtract the centre back out when the rule's M
// flag excludes it (see Automaton.Step). Two strategies are used
// depending on range; both are expressed through shape's single per-row
// half-width rather than one bespoke loop per neighbourhood.
func neighborCounts(curr []uint8, outerW, outerH, left, top, right, bottom int, sh shape) []int {
	counts := make([]int, outerW*outerH)
	if sh.r <= fastKernelMaxRange {
		fastNeighborCounts(curr, outerW, left, top, right, bottom, sh, counts)
	} else if sh.uniform {
		mooreSATCounts(curr, outerW, outerH, left, top, right, bottom, sh, counts)
	} else {
		rowPrefixCounts(curr, outerW, outerH, left, top, right, bottom, sh, counts)
	}
	return counts
}

// fastNeighborCounts directly convolves the shape over each interior
// cell; at small radii the window is too small for a table to pay off.
func fastNeighborCounts(curr []uint8, outerW, left, top, right, bottom int, sh shape, counts []int) {
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			n := 0
			for dy := -sh.r; dy <= sh.r; dy++ {
				hw := sh.halfWidth[dy+sh.r]
				base := (y + dy) * outerW
				for dx := -hw; dx <= hw; dx++ {
					if curr[base+x+dx] == 1 {
						n++
					}
				}
			}
			counts[y*outerW+x] = n
		}
	}
}

// rowPrefixCounts builds one cumulative row-sum per outer-grid row, then
// answers each cell's windowed count with 2*r+1 O(1) row-range queries,
// one per half-width row (von Neumann's triangular taper, Circle's
// lattice-point taper).
func rowPrefixCounts(curr []uint8, outerW, outerH, left, top, right, bottom int, sh shape, counts []int) {
	prefix := make([]int, outerH*(outerW+1))
	for y := 0; y < outerH; y++ {
		base := y * (outerW + 1)
		row := y * outerW
		sum := 0
		prefix[base] = 0
		for x := 0; x < outerW; x++ {
			if curr[row+x] == 1 {
				sum++
			}
			prefix[base+x+1] = sum
		}
	}
	rowSum := func(y, x0, x1 int) int {
		base := y * (outerW + 1)
		return prefix[base+x1+1] - prefix[base+x0]
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			n := 0
			for dy := -sh.r; dy <= sh.r; dy++ {
				hw := sh.halfWidth[dy+sh.r]
				n += rowSum(y+dy, x-hw, x+hw)
			}
			counts[y*outerW+x] = n
		}
	}
}

// mooreSATCounts builds a true 2-D summed-area table and answers each
// cell's (2r+1)x(2r+1) window with four lookups — the dominant case
// (Moore neighbourhood) gets full cumulative-sum acceleration rather
// than the row-by-row generalization.
func mooreSATCounts(curr []uint8, outerW, outerH, left, top, right, bottom int, sh shape, counts []int) {
	stride := outerW + 1
	sat := make([]int, (outerH+1)*stride)
	for y := 0; y < outerH; y++ {
		rowBase := (y + 1) * stride
		prevBase := y * stride
		row := y * outerW
		rowSum := 0
		for x := 0; x < outerW; x++ {
			if curr[row+x] == 1 {
				rowSum++
			}
			sat[rowBase+x+1] = sat[prevBase+x+1] + rowSum
		}
	}
	window := func(y0, x0, y1, x1 int) int {
		return sat[(y1+1)*stride+x1+1] - sat[y0*stride+x1+1] - sat[(y1+1)*stride+x0] + sat[y0*stride+x0]
	}
	r := sh.r
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			counts[y*outerW+x] = window(y-r, x-r, y+r, x+r)
		}
	}
}

// packedPopulation recounts the live (non-zero-state) cells of the interior
// rectangle using bulk popcounts over 32-cell-wide packed rows, the same
// "pack then popcount" idiom quicklife.TilePopulation uses, rather than a
// scalar byte-at-a-time scan.
func packedPopulation(curr []uint8, outerW, left, top, right, bottom int) int64 {
	width := right - left + 1
	if width <= 0 {
		return 0
	}
	words := (width + 31) / 32
	row := make([]uint32, words)
	var total int64
	for y := top; y <= bottom; y++ {
		for i := range row {
			row[i] = 0
		}
		base := y*outerW + left
		for i := 0; i < width; i++ {
			if curr[base+i] != 0 {
				row[i/32] |= 1 << uint(31-i%32)
			}
		}
		lanes := hwy.MaxLanes[uint32]()
		for i := 0; i < len(row); i += lanes {
			counts := hwy.PopCount(hwy.Load(row[i:]))
			for _, c := range counts.Data() {
				total += int64(c)
			}
		}
	}
	return total
}
