package rule

// applyB0Emulation detects a rule that births from an entirely dead
// neighbourhood (B0) and rewrites Rule3x3 so QuickLife's finite lookup
// tables can still represent it: an infinite background of live cells
// would otherwise never fit the table.
func applyB0Emulation(l *Life) error {
	if l.Rule3x3[0] == 0 {
		return nil
	}
	if l.Rule3x3[MooreMask] != 0 {
		// Birth from empty AND survival of a full neighbourhood: a single
		// table suffices, inverted and reversed.
		var out [512]int8
		for i := 0; i < 512; i++ {
			if l.Rule3x3[MooreMask-i] == 0 {
				out[i] = 1
			}
		}
		l.Rule3x3 = out
		return nil
	}

	l.AlternateRules = true
	// Odd-generation table: reverse the index.
	var odd [512]int8
	for i := 0; i < 512; i++ {
		odd[i] = l.Rule3x3[MooreMask-i]
	}
	l.rule3x3Odd = odd

	// Even-generation table: invert in place.
	var even [512]int8
	for i := 0; i < 512; i++ {
		if l.Rule3x3[i] == 0 {
			even[i] = 1
		}
	}
	l.Rule3x3 = even
	return nil
}

// convertTo4x4 builds Rule0 (and Rule1 when AlternateRules is set) from
// Rule3x3: for every 16-bit 4x4 cell window, the four 3x3 sub-windows
// centred on each cell of the inner 2x2 are looked up in Rule3x3 and
// packed into bits {6,4,2,0} of the result (odd bits stay zero).
//
// The 4x4 window w is laid out row-major, bit 0 = top-left .. bit 15 =
// bottom-right, matching Rule3x3's row-major 3x3 layout at each offset.
func convertTo4x4(l *Life) {
	build := func(table *[512]int8) *[65536]uint8 {
		var out [65536]uint8
		for w := 0; w < 65536; w++ {
			out[w] = packWindow(w, table)
		}
		return &out
	}
	r0 := build(&l.Rule3x3)
	l.Rule0 = *r0
	if l.AlternateRules {
		r1 := build(&l.rule3x3Odd)
		l.Rule1 = *r1
	}
}

// packWindow extracts the four overlapping 3x3 windows of a 4x4 bit
// pattern w (row-major, bit0=top-left..bit15=bottom-right) and looks each
// up in table, packing results into bits {6,4,2,0}.
func packWindow(w int, table *[512]int8) uint8 {
	get := func(row, col int) int {
		idx := row*4 + col
		return (w >> uint(idx)) & 1
	}
	sub3x3 := func(topRow, leftCol int) int {
		idx := 0
		bitPos := 0
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if get(topRow+r, leftCol+c) != 0 {
					idx |= 1 << uint(bitPos)
				}
				bitPos++
			}
		}
		return idx
	}

	topLeft := table[sub3x3(0, 0)]
	topRight := table[sub3x3(0, 1)]
	botLeft := table[sub3x3(1, 0)]
	botRight := table[sub3x3(1, 1)]

	// Packed at bits {6,4,2,0} (odd bits always zero) so the resulting byte
	// values are exactly {0,1,4,5,16,17,20,21,64,65,68,69,80,81,84,85}.
	var out uint8
	if topLeft != 0 {
		out |= 1 << 6
	}
	if topRight != 0 {
		out |= 1 << 4
	}
	if botLeft != 0 {
		out |= 1 << 2
	}
	if botRight != 0 {
		out |= 1 << 0
	}
	return out
}
