package quicklife

import "github.com/ajroetker/go-highway/hwy"

// Population returns the number of live cells, summing the per-node
// population caches and lazily recounting only the nodes whose cache for
// the current parity was invalidated by an edit or a step.
func (u *Universe) Population() int64 {
	return u.popOf(u.level, u.root, u.parity())
}

func (u *Universe) popOf(level int, n *Node, p int) int64 {
	if n == u.a.emptyAt(level) {
		return 0
	}
	if n.pop[p] != popNeedsRecount {
		return n.pop[p]
	}
	var total int64
	if level == 0 {
		total = countTile(n, rowOffset(p))
	} else {
		for _, c := range n.Children {
			total += u.popOf(level-1, c, p)
		}
	}
	n.pop[p] = total
	return total
}

// countTile popcounts one parity copy of a tile's 32 row words as packed
// vectors rather than bit-by-bit.
func countTile(n *Node, off int) int64 {
	rows := make([]uint32, 0, 32)
	for _, br := range n.Bricks {
		if br == emptyBrick {
			rows = append(rows, 0, 0, 0, 0, 0, 0, 0, 0)
			continue
		}
		rows = append(rows, br.Rows[off:off+8]...)
	}
	var total int64
	lanes := hwy.MaxLanes[uint32]()
	for i := 0; i < len(rows); i += lanes {
		counts := hwy.PopCount(hwy.Load(rows[i:]))
		for _, c := range counts.Data() {
			total += int64(c)
		}
	}
	return total
}

// TilePopulation returns the number of live cells in the 32x32 tile at
// tile-coordinate (tx, ty), or 0 if that tile is the empty sentinel,
// going through the same per-parity cache Population uses.
func (u *Universe) TilePopulation(tx, ty int64) int {
	tile := u.tileAt(tx, ty)
	return int(u.popOf(0, tile, u.parity()))
}
