package rule

// Isotropic non-totalistic letter data, grounded on the Moore-neighbourhood
// isotropy classes used by Conway-style rule notation. Row index is
// min(count, 8-count)-1 for a live-neighbour count in [1,7]; count 0 and 8
// have exactly one configuration each and take no letters.
//
// letterNames[row] lists the letters in the same order as
// neighborhoodReps[row]; canonicalOrder(row) sorts that list alphabetically
// on demand rather than carrying a second hardcoded table.
var letterNames = [4]string{
	"ce",
	"ceaikn",
	"ceaiknjqry",
	"ceaiknjqrytwz",
}

// neighborhoodReps[row][i] is the canonical 8-bit-ring representative (see
// bits3x3.go for the bit layout) for letterNames[row][i], using the low
// live-neighbour-count member of the class (count = row+1).
var neighborhoodReps = [4][]int{
	{1, 2},
	{5, 10, 3, 40, 33, 68},
	{69, 42, 11, 7, 98, 13, 14, 70, 41, 97},
	{325, 170, 15, 45, 99, 71, 106, 102, 43, 101, 105, 78, 108},
}

// letterRow returns the table row and whether the count needs the
// high-count reflection (xor with NeighborMask before applying symmetries).
func letterRow(count int) (row int, reflect bool, ok bool) {
	if count < 1 || count > 7 {
		return 0, false, false
	}
	n := count
	if n > 4 {
		n = 8 - n
		reflect = true
	}
	return n - 1, reflect, true
}

// canonicalOrder returns letter indices into letterNames[row], sorted
// alphabetically by letter — the order rule strings emit letters in.
func canonicalOrder(row int) []int {
	letters := letterNames[row]
	order := make([]int, len(letters))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && letters[order[j-1]] > letters[order[j]]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	return order
}

// survivalOffset is added to a neighbour count to index the survival half
// of an 18-entry letter_bits array (birth occupies indices 0..8).
const survivalOffset = 9
