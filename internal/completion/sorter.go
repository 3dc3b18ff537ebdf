package completion

import (
	"cmp"
	"slices"
	"strings"
)

// Sorter imposes the final order of a completion result.
type Sorter interface {
	Sort(items []Candidate)
}

// SorterFunc adapts a function to [Sorter].
type SorterFunc func(items []Candidate)

// Sort implements [Sorter].
func (f SorterFunc) Sort(items []Candidate) {
	f(items)
}

// DefaultSorter orders candidates by kind priority, then by case-insensitive
// label. Candidates comparing equal keep their relative order.
var DefaultSorter Sorter = SorterFunc(func(items []Candidate) {
	slices.SortStableFunc(items, func(a, b Candidate) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label))
	})
})
