package quicklife

import "github.com/telepair/ca-core/engine/rule"

// TileSize is the edge length, in cells, of a level-0 node — the unit
// TilePopulation reports density over.
const TileSize = 32

const tileSize = TileSize

// Universe is QuickLife's unbounded-plane generation engine: a tree of
// Node rooted at root, addressed in tile-coordinate space, plus the rule
// tables that drive Step.
type Universe struct {
	rule *rule.Life
	a    *arena

	root     *Node
	level    int
	originTX int64 // tile-coordinate of root's (0,0) child slot
	originTY int64

	generation int64
}

// NewUniverse creates an empty QuickLife universe governed by l.
func NewUniverse(l *rule.Life) *Universe {
	a := newArena()
	return &Universe{
		rule:  l,
		a:     a,
		root:  a.emptyAt(0),
		level: 0,
	}
}

// SetRule replaces the governing rule table. Existing cell state is left
// untouched; the next Step uses the new tables.
func (u *Universe) SetRule(l *rule.Life) { u.rule = l }

// parity returns the generation parity selecting the current brick copy.
func (u *Universe) parity() int { return int(u.generation & 1) }

// rowOffset converts a parity to its brick row offset.
func rowOffset(parity int) int { return parity * 8 }

func pow8(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= 8
	}
	return r
}

// extentOf returns the width and height, in tiles, of a node at level.
func extentOf(level int) (w, h int64) {
	halfUp := (level + 1) / 2
	halfDown := level / 2
	return pow8(halfUp), pow8(halfDown)
}

func floorDivMod(a, b int64) (q, r int64) {
	q = a / b
	r = a % b
	if r < 0 {
		q--
		r += b
	}
	return
}

// Generation returns the number of Step calls applied so far.
func (u *Universe) Generation() int64 { return u.generation }

// PendingChanges reports whether any change rows are outstanding anywhere
// in the tree — i.e. whether the next Step has work scheduled. A universe
// whose edits have been undone (or that has settled into still lifes
// after a step) reports false.
func (u *Universe) PendingChanges() bool {
	return nodeDirty(u.root, u.a)
}

// RootFlags exposes the root supertile's dirty bits (0 when the root is
// still a bare tile).
func (u *Universe) RootFlags() uint32 {
	if u.root.isTile() {
		return 0
	}
	return u.root.Flags
}

// GetCell returns 0 or 1 for the cell at (x, y).
func (u *Universe) GetCell(x, y int64) int {
	tx, _ := floorDivMod(x, tileSize)
	ty, _ := floorDivMod(y, tileSize)
	cellX := int(((x % tileSize) + tileSize) % tileSize)
	cellY := int(((y % tileSize) + tileSize) % tileSize)

	rtx := tx - u.originTX
	rty := ty - u.originTY
	w, h := extentOf(u.level)
	if rtx < 0 || rtx >= w || rty < 0 || rty >= h {
		return 0
	}
	return getCellAt(u.level, u.root, u.a, rtx, rty, cellX, cellY, rowOffset(u.parity()))
}

func getCellAt(level int, n *Node, a *arena, tx, ty int64, cx, cy, off int) int {
	if n == a.emptyAt(level) {
		return 0
	}
	if level == 0 {
		brickIdx := cy / 8
		row := cy % 8
		return n.Bricks[brickIdx].get(cx, row, off)
	}
	idx, ctx, cty := childOf(level, tx, ty)
	return getCellAt(level-1, n.Children[idx], a, ctx, cty, cx, cy, off)
}

// childOf computes which of a level's 8 children covers relative
// tile-coordinate (tx, ty), and the coordinate relative to that child.
func childOf(level int, tx, ty int64) (idx int, ctx, cty int64) {
	cw, ch := extentOf(level - 1)
	if level%2 == 1 {
		// horizontal split: children vary in x, share full height
		i := tx / cw
		return int(i), tx % cw, ty
	}
	i := ty / ch
	return int(i), tx, ty % ch
}

// SetCell sets the cell at (x, y) to state (0 or 1), uprooting the tree
// as needed to bring (x, y) into the root's extent. The affected column
// slice's change bit is recomputed exactly (the two parity copies are
// compared), so writing a cell and then writing its old value back leaves
// no pending change bits behind.
func (u *Universe) SetCell(x, y int64, state int) {
	old := u.GetCell(x, y)
	if old == state {
		return
	}
	if state != 0 {
		u.ensureCovers(x, y)
	}

	tx, _ := floorDivMod(x, tileSize)
	ty, _ := floorDivMod(y, tileSize)
	rtx := tx - u.originTX
	rty := ty - u.originTY
	w, h := extentOf(u.level)
	if rtx < 0 || rtx >= w || rty < 0 || rty >= h {
		return // clearing a cell outside the root: already 0, nothing to do
	}
	cellX := int(((x % tileSize) + tileSize) % tileSize)
	cellY := int(((y % tileSize) + tileSize) % tileSize)

	u.root = u.setCellAt(u.level, u.root, rtx, rty, cellX, cellY, state)
}

func (u *Universe) setCellAt(level int, n *Node, tx, ty int64, cx, cy, state int) *Node {
	a := u.a
	p := u.parity()
	if n == a.emptyAt(level) {
		if state == 0 {
			return n
		}
		n = a.cloneFromSentinel(level)
	}
	n.pop[p] = popNeedsRecount

	if level == 0 {
		brickIdx := cy / 8
		row := cy % 8
		if n.Bricks[brickIdx] == emptyBrick {
			if state == 0 {
				return n
			}
			n.Bricks[brickIdx] = a.allocBrick()
		}
		br := n.Bricks[brickIdx]
		br.set(cx, row, rowOffset(p), state)

		// Recompute the slice's change bit from the two parity copies.
		slice := cx / 2
		mask := uint32(0xC0000000) >> uint(2*slice)
		diff := false
		for r := 0; r < 8; r++ {
			if (br.Rows[r]^br.Rows[8+r])&mask != 0 {
				diff = true
				break
			}
		}
		if diff {
			n.C[1+brickIdx] |= 1 << uint(slice)
		} else {
			n.C[1+brickIdx] &^= 1 << uint(slice)
		}

		if state == 0 && br.isEmpty() {
			a.freeBrick(br)
			n.Bricks[brickIdx] = emptyBrick
		}
		if state == 0 && allBricksEmpty(n) && n.changeMask() == 0 {
			a.freeNode(0, n)
			return a.emptyAt(0)
		}
		return n
	}

	idx, ctx, cty := childOf(level, tx, ty)
	child := u.setCellAt(level-1, n.Children[idx], ctx, cty, cx, cy, state)
	n.Children[idx] = child
	if nodeDirty(child, a) {
		n.Flags |= 1 << uint(idx)
	} else {
		n.Flags &^= 1 << uint(idx)
	}
	if state == 0 && allChildrenEmpty(n, a) && n.Flags == 0 {
		a.freeNode(level, n)
		return a.emptyAt(level)
	}
	return n
}

func allBricksEmpty(n *Node) bool {
	for _, b := range n.Bricks {
		if b != emptyBrick && !b.isEmpty() {
			return false
		}
	}
	return true
}

func allChildrenEmpty(n *Node, a *arena) bool {
	e := a.emptyAt(n.Level - 1)
	for _, c := range n.Children {
		if c != e {
			return false
		}
	}
	return true
}

// ensureCovers grows the tree, via repeated uprooting, until (x, y)'s
// tile falls within the root's extent.
func (u *Universe) ensureCovers(x, y int64) {
	tx, _ := floorDivMod(x, tileSize)
	ty, _ := floorDivMod(y, tileSize)
	for {
		rtx := tx - u.originTX
		rty := ty - u.originTY
		w, h := extentOf(u.level)
		if rtx >= 0 && rtx < w && rty >= 0 && rty < h {
			return
		}
		u.uproot()
	}
}

// uproot grows the universe by one level, placing the current root at
// child slot 4 of the new root.
func (u *Universe) uproot() {
	newLevel := u.level + 1
	newNode := u.a.cloneFromSentinel(newLevel)
	childW, childH := extentOf(u.level)

	newNode.Children[4] = u.root
	if nodeDirty(u.root, u.a) {
		newNode.Flags |= 1 << 4
	}
	newNode.pop = [2]int64{popNeedsRecount, popNeedsRecount}
	if newLevel%2 == 1 {
		u.originTX -= 4 * childW
	} else {
		u.originTY -= 4 * childH
	}
	u.root = newNode
	u.level = newLevel
}

// NextCell returns the x-offset (>= 0) to the next live cell at or after
// x on row y within the currently allocated extent, or -1 if none.
func (u *Universe) NextCell(x, y int64) int64 {
	w, _ := extentOf(u.level)
	maxX := u.originTX*tileSize + w*tileSize
	for xi := x; xi < maxX; xi++ {
		if u.GetCell(xi, y) != 0 {
			return xi - x
		}
	}
	return -1
}

// Bounds reports the bounding box of live cells. ok is false when the
// universe is empty.
func (u *Universe) Bounds() (minX, minY, maxX, maxY int64, ok bool) {
	if u.Population() == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = int64(1)<<62, int64(1)<<62
	maxX, maxY = -(int64(1) << 62), -(int64(1) << 62)
	scanNode(u.level, u.root, u.a, u.originTX, u.originTY, rowOffset(u.parity()), &minX, &minY, &maxX, &maxY)
	return minX, minY, maxX, maxY, true
}

func scanNode(level int, n *Node, a *arena, originTX, originTY int64, off int, minX, minY, maxX, maxY *int64) {
	if n == a.emptyAt(level) {
		return
	}
	if level == 0 {
		baseX := originTX * tileSize
		baseY := originTY * tileSize
		for bi, br := range n.Bricks {
			if br == emptyBrick {
				continue
			}
			for row := 0; row < 8; row++ {
				w := br.Rows[off+row]
				if w == 0 {
					continue
				}
				y := baseY + int64(bi*8+row)
				for col := 0; col < 32; col++ {
					if w&(1<<uint(31-col)) == 0 {
						continue
					}
					x := baseX + int64(col)
					if x < *minX {
						*minX = x
					}
					if x > *maxX {
						*maxX = x
					}
					if y < *minY {
						*minY = y
					}
					if y > *maxY {
						*maxY = y
					}
				}
			}
		}
		return
	}
	cw, ch := extentOf(level - 1)
	for i, c := range n.Children {
		if c == a.emptyAt(level-1) {
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
		scanNode(level-1, c, a, childOriginTX, childOriginTY, off, minX, minY, maxX, maxY)
	}
}
