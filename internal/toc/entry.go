package toc

// PathSegment records an ancestor container at the time of descent.
type PathSegment struct {
	ID             int    `json:"id"`
	Type           string `json:"type"`
	ColumnPosition int    `json:"col_pos"`
	Sorting        int    `json:"sorting"`
}

// SegmentFor captures the identity of a container row.
func SegmentFor(row Row) PathSegment {
	return PathSegment{
		ID:             row.ID(),
		Type:           row.Type(),
		ColumnPosition: row.ColumnPosition(),
		Sorting:        row.Sorting(),
	}
}

// Path lists ancestor containers from the outermost to the immediate parent.
type Path []PathSegment

// With returns a new path extended by seg. The receiver is never modified.
func (p Path) With(seg PathSegment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Contains reports whether a container with id is on the path.
func (p Path) Contains(id int) bool {
	for _, seg := range p {
		if seg.ID == id {
			return true
		}
	}
	return false
}

// Parent returns the immediate parent segment, if any.
func (p Path) Parent() (PathSegment, bool) {
	if len(p) == 0 {
		return PathSegment{}, false
	}
	return p[len(p)-1], true
}

// Entry is one line of the table of contents.
type Entry struct {
	Row    Row    `json:"data"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
	Depth  int    `json:"level"`
	Path   Path   `json:"path"`
}

// ID returns the id of the source element.
func (e Entry) ID() int { return e.Row.ID() }

// Sorting returns the element's own display order.
func (e Entry) Sorting() int { return e.Row.Sorting() }

// IsNested reports whether the entry sits inside a container.
func (e Entry) IsNested() bool { return len(e.Path) > 0 }

// EffectiveColumnPosition is the column position the entry is placed in on the page:
// its own for top-level entries, the nearest ancestor's for nested ones.
func (e Entry) EffectiveColumnPosition() int {
	if parent, ok := e.Path.Parent(); ok {
		return parent.ColumnPosition
	}
	return e.Row.ColumnPosition()
}
