package toc

import (
	"regexp"
	"strconv"
	"strings"
)

// anchorPattern is the whitelist for user-supplied anchors. Anchors end up in
// href attributes, so anything else falls back to the generated anchor.
var anchorPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// MapEntry converts a row at the given position in the tree into an Entry.
func MapEntry(row Row, depth int, path Path, useAnchorOverride bool) Entry {
	id := row.ID()
	anchor := DefaultAnchor(id)
	if useAnchorOverride {
		if override := strings.TrimSpace(row.Anchor()); override != "" {
			anchor = SanitizeAnchor(override, id)
		}
	}

	p := make(Path, len(path))
	copy(p, path)

	return Entry{
		Row:    row,
		Title:  strings.TrimSpace(row.Title()),
		Anchor: anchor,
		Depth:  depth,
		Path:   p,
	}
}

// DefaultAnchor returns the generated anchor for element id: "#c<id>".
func DefaultAnchor(id int) string {
	return "#c" + strconv.Itoa(id)
}

// SanitizeAnchor returns "#"+value when value only holds letters, digits,
// underscores and hyphens, otherwise the default anchor for id.
func SanitizeAnchor(value string, id int) string {
	if anchorPattern.MatchString(value) {
		return "#" + value
	}
	return DefaultAnchor(id)
}
