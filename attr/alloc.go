package attr

// Container backing stores are allocated in whole pages. A resize
// reallocates only when the page count required by the new element count
// exceeds the page count implied by the current one; shrinking keeps the
// existing storage. Newly exposed tail slots are zero.
const (
	pageBytes  = 4096
	listStride = 64  // nominal bytes per list slot
	pairStride = 128 // nominal bytes per dict slot
)

func pagesFor(n, stride int) int {
	return (n*stride + pageBytes - 1) / pageBytes
}

// Capacity returns the element capacity of a container's backing store,
// zero for everything else. It exists so tests can observe page-boundary
// growth directly.
func (v *Value) Capacity() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindDict:
		return len(v.pairs)
	default:
		return 0
	}
}

// reallocList resizes the list to n elements under the page policy.
// Callers guarantee kind == KindList.
func (v *Value) reallocList(n int) {
	req := pagesFor(n, listStride)
	cur := pagesFor(v.size, listStride)
	if req > cur {
		grown := make([]Value, req*pageBytes/listStride)
		copy(grown, v.list[:v.size])
		v.list = grown
	}
	v.size = n
}

// reallocPairs resizes the dict to n pairs under the page policy.
// Callers guarantee kind == KindDict.
func (v *Value) reallocPairs(n int) {
	req := pagesFor(n, pairStride)
	cur := pagesFor(v.size, pairStride)
	if req > cur {
		grown := make([]Pair, req*pageBytes/pairStride)
		copy(grown, v.pairs[:v.size])
		v.pairs = grown
	}
	v.size = n
}
