package toc_test

import (
	"slices"
	"testing"

	"sectiontoc/internal/toc"
)

func entryAt(id, colPos, sorting int, path toc.Path) toc.Entry {
	return toc.MapEntry(element(id, "E", colPos, sorting), toc.FirstLevel+len(path), path, false)
}

func ids(entries []toc.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID()
	}
	return out
}

func TestSort(t *testing.T) {
	inMain := toc.Path{{ID: 10, ColumnPosition: 0, Sorting: 900}}
	inSide := toc.Path{{ID: 20, ColumnPosition: 1, Sorting: 100}}

	tests := []struct {
		name string
		in   []toc.Entry
		want []int
	}{
		{
			name: "own sorting within a column",
			in:   []toc.Entry{entryAt(1, 0, 512, nil), entryAt(2, 0, 256, nil)},
			want: []int{2, 1},
		},
		{
			name: "column position first",
			in:   []toc.Entry{entryAt(3, 2, 256, nil), entryAt(1, 0, 512, nil), entryAt(2, 1, 768, nil)},
			want: []int{1, 2, 3},
		},
		{
			// Nested entries take the ancestor's column but keep their own sorting.
			name: "nested entries use ancestor column",
			in: []toc.Entry{
				entryAt(1, 1, 50, nil),
				entryAt(2, 200, 10, inSide),
				entryAt(3, 201, 20, inMain),
				entryAt(4, 0, 30, nil),
			},
			want: []int{3, 4, 2, 1},
		},
		{
			name: "stable for equal keys",
			in:   []toc.Entry{entryAt(1, 0, 100, nil), entryAt(2, 0, 100, nil), entryAt(3, 0, 100, nil)},
			want: []int{1, 2, 3},
		},
		{
			name: "empty",
			in:   nil,
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ids(tt.in)
			got := ids(toc.Sort(tt.in))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
			if !slices.Equal(ids(tt.in), before) {
				t.Errorf("Sort() modified its input: %v, was %v", ids(tt.in), before)
			}
		})
	}
}

func TestEntry_EffectiveColumnPositionUsesNearestAncestor(t *testing.T) {
	path := toc.Path{
		{ID: 10, ColumnPosition: 5},
		{ID: 11, ColumnPosition: 0},
	}
	e := entryAt(1, 200, 1, path)
	if got := e.EffectiveColumnPosition(); got != 0 {
		t.Errorf("EffectiveColumnPosition() = %d, want 0", got)
	}
	if !e.IsNested() {
		t.Error("IsNested() = false, want true")
	}
	if top := entryAt(2, 3, 1, nil); top.EffectiveColumnPosition() != 3 || top.IsNested() {
		t.Errorf("top-level entry: column %d nested %v, want 3 false", top.EffectiveColumnPosition(), top.IsNested())
	}
}
