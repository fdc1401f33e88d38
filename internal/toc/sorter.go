package toc

import (
	"cmp"
	"slices"
)

// Sort returns a copy of entries ordered by effective column position, then by
// each entry's own sorting value. Equal keys keep their input order.
func Sort(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	slices.SortStableFunc(sorted, compareEntries)
	return sorted
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.EffectiveColumnPosition(), b.EffectiveColumnPosition()); c != 0 {
		return c
	}
	return cmp.Compare(a.Sorting(), b.Sorting())
}
