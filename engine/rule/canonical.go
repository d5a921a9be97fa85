package rule

import (
	"strconv"
	"strings"
)

// canonicalName renders a compiled Life rule back into its canonical
// string form (without any topology suffix, which the caller appends).
func canonicalName(l *Life) string {
	if l.Wolfram >= 0 {
		return "W" + strconv.Itoa(l.Wolfram)
	}
	if l.UsingMap {
		return "MAP" + l.mapPayload
	}

	var b strings.Builder
	b.WriteByte('B')
	addDigits(&b, l, 0)
	b.WriteByte('/')
	b.WriteByte('S')
	addDigits(&b, l, survivalOffset)

	switch l.NeighborhoodMask {
	case HexMask:
		b.WriteByte('H')
	case VonNeumannMask:
		b.WriteByte('V')
	}
	return b.String()
}

func addDigits(b *strings.Builder, l *Life, offset int) {
	for count := 0; count <= 8; count++ {
		if l.RuleBits&(1<<(offset+count)) == 0 {
			continue
		}
		b.WriteByte(byte('0' + count))
		addLetters(b, l, offset, count)
	}
}

// addLetters emits the non-totalistic letter run for one count, choosing
// whichever of "positive set" or "negated complement" is shorter, with a
// tie broken toward the positive set. One exception: exactly 7 of 13
// letters set (the count-4 row) is never inverted.
func addLetters(b *strings.Builder, l *Life, offset, count int) {
	row, _, ok := letterRow(count)
	if !ok {
		return
	}
	mask := l.LetterBits[offset+count]
	if mask == 0 {
		return
	}
	letters := letterNames[row]
	full := (1 << len(letters)) - 1
	setBits := popcountMasked(mask, full)

	negate := setBits*2 > len(letters)
	if len(letters) == 13 && setBits == 7 {
		negate = false
	}

	emitMask := mask
	if negate {
		emitMask = (^mask) & full
		b.WriteByte('-')
	}
	for _, idx := range canonicalOrder(row) {
		if emitMask&(1<<idx) != 0 {
			b.WriteByte(letters[idx])
		}
	}
}

