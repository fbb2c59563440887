package array

import (
	"sort"
)

// rangeSorter adapts an Array range to sort.Interface. The multiplier flips
// direction without a second comparator.
type rangeSorter struct {
	a          Array
	start      int
	length     int
	multiplier int
}

func (s rangeSorter) Len() int { return s.length }

func (s rangeSorter) Less(i, j int) bool {
	return s.a.Compare(s.start+i, s.start+j)*s.multiplier < 0
}

func (s rangeSorter) Swap(i, j int) {
	s.a.Swap(s.start+i, s.start+j)
}

// SortRange sorts [start, end) of the array in place through its Compare and
// Swap operations. Backends use it as the shared Sort implementation.
func SortRange(a Array, start, end, multiplier int) {
	CheckRange(start, end, a.Length())
	if multiplier >= 0 {
		multiplier = 1
	} else {
		multiplier = -1
	}
	sort.Sort(rangeSorter{a: a, start: start, length: end - start, multiplier: multiplier})
}

// Search runs the standard binary search over [start, end) using a
// three-way comparison of the probed slot against the target. It returns the
// matching index, or the negative insertion point -(low+1) when absent. The
// range must be sorted ascending.
func Search(start, end int, compare func(index int) int) int {
	low, high := start, end-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		c := compare(mid)
		switch {
		case c < 0:
			low = mid + 1
		case c > 0:
			high = mid - 1
		default:
			return mid
		}
	}
	return -(low + 1)
}
