package quicklife

// Poller lets a long-running Step report progress and be asked to bail
// out early, mirroring the host viewer's cooperative-cancellation hook.
type Poller interface {
	Poll() bool // returns true if the caller should abort
}

// recyclePeriod is how many generations elapse between sweeps that return
// fully dead, change-free tiles and supertiles to the free lists.
const recyclePeriod = 64

type tileCoord struct{ tx, ty int64 }

// rev4 reverses the low 4 bits of its index, used to reorder a window
// nibble (leftmost column in the high bit) into the 4x4 table's row-major
// layout (leftmost column in the low bit).
var rev4 = [16]uint8{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}

// tileResult is one scheduled tile's recomputation: the full next-parity
// content, the per-brick change rows (next vs. current), and the guard
// rows that scheduled it.
type tileResult struct {
	tc         tileCoord
	next       [32]uint32
	changes    [4]uint16
	guardAbove uint16
	guardBelow uint16
	changed    bool
	real       bool // tile already exists in the tree
}

// Step advances the universe by one generation.
//
// Scheduling is driven entirely by the change rows: the flags-guided tree
// walk finds every dirty tile, each dirty tile nominates itself and the
// Moore-adjacent tiles its edge slices touch, and per tile only the
// column slices within one cell of a change are recomputed. Regions with
// no outstanding change bits are never visited, so a universe of still
// lifes steps in constant time.
//
// Each recomputed slice is looked up through the rule's 4x4-window table
// (8 output cells per table hit), reading the current parity copy and
// writing the other; the generation counter's parity flip then makes the
// written copy current. Slices that were not recomputed already hold
// identical data in both copies, which is exactly why skipping them is
// sound: an unchanged neighbourhood implies an unchanged next state.
//
// A single generation is always computed and applied in full: poll is
// checked once up front, and a true result only tells the caller to stop
// requesting further steps.
func (u *Universe) Step(poll Poller) bool {
	if u.rule == nil {
		return false
	}
	interrupted := poll != nil && poll.Poll()

	p := u.parity()
	table := u.rule.Table4x4ForParity(p)

	dirty := map[tileCoord]bool{}
	collectDirty(u.level, u.root, u.a, u.originTX, u.originTY, dirty)

	candidates := map[tileCoord]bool{}
	for tc := range dirty {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				candidates[tileCoord{tc.tx + dx, tc.ty + dy}] = true
			}
		}
	}

	var results []tileResult
	for tc := range candidates {
		sl, above, below := u.sliceMask(tc)
		if sl == 0 {
			continue
		}
		results = append(results, u.computeTile(tc, sl, above, below, table, p))
	}

	for i := range results {
		if results[i].changed {
			u.ensureCovers(results[i].tc.tx*tileSize, results[i].tc.ty*tileSize)
		}
	}
	for i := range results {
		res := &results[i]
		if !res.changed && !res.real {
			continue
		}
		rtx := res.tc.tx - u.originTX
		rty := res.tc.ty - u.originTY
		w, h := extentOf(u.level)
		if rtx < 0 || rtx >= w || rty < 0 || rty >= h {
			continue // unchanged tile outside the extent: nothing stored
		}
		u.root = u.applyResult(u.level, u.root, rtx, rty, res, p)
	}

	u.generation++
	if u.generation%recyclePeriod == 0 {
		u.recycle()
	}
	return interrupted
}

// collectDirty walks only flagged subtrees, gathering the coordinates of
// every tile with outstanding change rows.
func collectDirty(level int, n *Node, a *arena, originTX, originTY int64, out map[tileCoord]bool) {
	if n == a.emptyAt(level) {
		return
	}
	if level == 0 {
		if n.changeMask() != 0 {
			out[tileCoord{originTX, originTY}] = true
		}
		return
	}
	cw, ch := extentOf(level - 1)
	for i, c := range n.Children {
		if n.Flags&(1<<uint(i)) == 0 {
			continue
		}
		var childOriginTX, childOriginTY int64
		if level%2 == 1 {
			childOriginTX = originTX + int64(i)*cw
			childOriginTY = originTY
		} else {
			childOriginTX = originTX
			childOriginTY = originTY + int64(i)*ch
		}
		collectDirty(level-1, c, a, childOriginTX, childOriginTY, out)
	}
}

// tileAt descends to the level-0 node covering tile coordinate (tx, ty),
// returning the level-0 empty sentinel when the coordinate is outside the
// root's extent or covered by a sentinel.
func (u *Universe) tileAt(tx, ty int64) *Node {
	rtx := tx - u.originTX
	rty := ty - u.originTY
	w, h := extentOf(u.level)
	if rtx < 0 || rtx >= w || rty < 0 || rty >= h {
		return u.a.emptyAt(0)
	}
	n := u.root
	level := u.level
	for level > 0 {
		if n == u.a.emptyAt(level) {
			return u.a.emptyAt(0)
		}
		var idx int
		idx, rtx, rty = childOf(level, rtx, rty)
		n = n.Children[idx]
		level--
	}
	return n
}

// expandSlices widens a change mask by one slice on each side, since a
// changed column can affect its immediate neighbours' next state.
func expandSlices(m uint16) uint16 {
	return m | m<<1 | m>>1
}

// sliceMask computes which column slices of the tile at tc must be
// recomputed this step: its own change rows and the vertically adjacent
// guard rows, widened by one slice, plus an edge slice for each
// horizontally or diagonally adjacent change that touches the shared
// column. A zero mask means the tile needs no work. The guard rows are
// returned so the apply pass can record them in C[0]/C[5].
func (u *Universe) sliceMask(tc tileCoord) (sl, above, below uint16) {
	self := u.tileAt(tc.tx, tc.ty)
	aboveTile := u.tileAt(tc.tx, tc.ty-1)
	belowTile := u.tileAt(tc.tx, tc.ty+1)
	above = aboveTile.C[4]
	below = belowTile.C[1]

	sl = expandSlices(self.changeMask() | above | below)

	left := u.tileAt(tc.tx-1, tc.ty)
	aboveLeft := u.tileAt(tc.tx-1, tc.ty-1)
	belowLeft := u.tileAt(tc.tx-1, tc.ty+1)
	if (left.changeMask()|aboveLeft.C[4]|belowLeft.C[1])&0x8000 != 0 {
		sl |= 0x0001
	}

	right := u.tileAt(tc.tx+1, tc.ty)
	aboveRight := u.tileAt(tc.tx+1, tc.ty-1)
	belowRight := u.tileAt(tc.tx+1, tc.ty+1)
	if (right.changeMask()|aboveRight.C[4]|belowRight.C[1])&0x0001 != 0 {
		sl |= 0x8000
	}
	return sl, above, below
}

// tileRow reads one 32-cell row word of a tile's parity copy.
func tileRow(n *Node, row, off int) uint32 {
	if n.Bricks[row/8] == emptyBrick {
		return 0
	}
	return n.Bricks[row/8].Rows[off+row%8]
}

// computeTile recomputes the scheduled column slices of one tile from the
// current parity copy, producing the tile's full next-parity content and
// the change rows that drive the following step's scheduling.
func (u *Universe) computeTile(tc tileCoord, sl, guardAbove, guardBelow uint16, table *[65536]uint8, p int) tileResult {
	off := rowOffset(p)
	self := u.tileAt(tc.tx, tc.ty)
	aboveT := u.tileAt(tc.tx, tc.ty-1)
	belowT := u.tileAt(tc.tx, tc.ty+1)
	leftT := u.tileAt(tc.tx-1, tc.ty)
	rightT := u.tileAt(tc.tx+1, tc.ty)
	aboveLeft := u.tileAt(tc.tx-1, tc.ty-1)
	aboveRight := u.tileAt(tc.tx+1, tc.ty-1)
	belowLeft := u.tileAt(tc.tx-1, tc.ty+1)
	belowRight := u.tileAt(tc.tx+1, tc.ty+1)

	// wins[y+1] holds row y of the 34-cell-wide window: column c of the
	// tile maps to bit 32-c, with the horizontal neighbours' edge columns
	// at bits 33 and 0.
	var wins [34]uint64
	win := func(centre, l, r *Node, row int) uint64 {
		base := uint64(tileRow(centre, row, off)) << 1
		base |= uint64(tileRow(l, row, off)&1) << 33
		base |= uint64(tileRow(r, row, off) >> 31)
		return base
	}
	wins[0] = win(aboveT, aboveLeft, aboveRight, 31)
	for y := 0; y < 32; y++ {
		wins[y+1] = win(self, leftT, rightT, y)
	}
	wins[33] = win(belowT, belowLeft, belowRight, 0)

	res := tileResult{
		tc:         tc,
		guardAbove: guardAbove,
		guardBelow: guardBelow,
		real:       self != u.a.emptyAt(0),
	}
	var cur [32]uint32
	for y := 0; y < 32; y++ {
		cur[y] = tileRow(self, y, off)
	}
	res.next = cur

	for j := 0; j < 16; j++ {
		if sl&(1<<uint(j)) == 0 {
			continue
		}
		shift := uint(30 - 2*j)
		keep := ^(uint32(0xC0000000) >> uint(2*j))
		for r := 0; r < 16; r++ {
			n0 := (wins[2*r] >> shift) & 0xF
			n1 := (wins[2*r+1] >> shift) & 0xF
			n2 := (wins[2*r+2] >> shift) & 0xF
			n3 := (wins[2*r+3] >> shift) & 0xF
			idx := int(rev4[n0]) | int(rev4[n1])<<4 | int(rev4[n2])<<8 | int(rev4[n3])<<12
			out := table[idx]
			top := (uint32(out>>6&1)<<1 | uint32(out>>4&1)) << shift
			bot := (uint32(out>>2&1)<<1 | uint32(out&1)) << shift
			res.next[2*r] = res.next[2*r]&keep | top
			res.next[2*r+1] = res.next[2*r+1]&keep | bot
		}
	}

	for b := 0; b < 4; b++ {
		var or uint32
		for r := 0; r < 8; r++ {
			or |= res.next[b*8+r] ^ cur[b*8+r]
		}
		if or == 0 {
			continue
		}
		for j := 0; j < 16; j++ {
			if or&(uint32(0xC0000000)>>uint(2*j)) != 0 {
				res.changes[b] |= 1 << uint(j)
			}
		}
		res.changed = true
	}
	return res
}

// applyResult writes a recomputed tile's next-parity content into the
// tree, allocating along the path when the tile is newly live, refreshing
// change and guard rows, invalidating the next parity's population
// caches, and keeping each ancestor's dirty flags exact on the way back
// up.
func (u *Universe) applyResult(level int, n *Node, tx, ty int64, res *tileResult, p int) *Node {
	a := u.a
	if n == a.emptyAt(level) {
		n = a.cloneFromSentinel(level)
	}
	n.pop[1-p] = popNeedsRecount

	if level == 0 {
		off := rowOffset(1 - p)
		for b := 0; b < 4; b++ {
			var any uint32
			for r := 0; r < 8; r++ {
				any |= res.next[b*8+r]
			}
			if n.Bricks[b] == emptyBrick {
				if any == 0 {
					n.C[1+b] = res.changes[b]
					continue
				}
				n.Bricks[b] = a.allocBrick()
			}
			for r := 0; r < 8; r++ {
				n.Bricks[b].Rows[off+r] = res.next[b*8+r]
			}
			n.C[1+b] = res.changes[b]
		}
		n.C[0] = res.guardAbove
		n.C[5] = res.guardBelow
		return n
	}

	idx, ctx, cty := childOf(level, tx, ty)
	child := u.applyResult(level-1, n.Children[idx], ctx, cty, res, p)
	n.Children[idx] = child
	if nodeDirty(child, a) {
		n.Flags |= 1 << uint(idx)
	} else {
		n.Flags &^= 1 << uint(idx)
	}
	return n
}

// recycle is the periodic deletion sweep: any tile that is dead in both
// parity copies with no outstanding change rows collapses back to the
// empty sentinel (its bricks and its own cell returned to the free
// lists), and any supertile left with only empty children and clear
// dirty flags collapses likewise.
func (u *Universe) recycle() {
	u.root = u.recycleNode(u.level, u.root)
}

func (u *Universe) recycleNode(level int, n *Node) *Node {
	a := u.a
	if n == a.emptyAt(level) {
		return n
	}
	if level == 0 {
		for i, b := range n.Bricks {
			if b != emptyBrick && b.isEmpty() {
				a.freeBrick(b)
				n.Bricks[i] = emptyBrick
			}
		}
		if allBricksEmpty(n) && n.changeMask() == 0 {
			a.freeNode(0, n)
			return a.emptyAt(0)
		}
		return n
	}
	anyLive := false
	for i, c := range n.Children {
		nc := u.recycleNode(level-1, c)
		n.Children[i] = nc
		if nc == a.emptyAt(level-1) {
			n.Flags &^= 1 << uint(i)
		} else {
			anyLive = true
		}
	}
	if !anyLive && n.Flags == 0 {
		a.freeNode(level, n)
		return a.emptyAt(level)
	}
	return n
}
