package toc

import (
	"strconv"
	"strings"
)

// Field names of a content element row.
const (
	FieldID             = "id"
	FieldParentID       = "parent_id"
	FieldPageID         = "page_id"
	FieldType           = "type"
	FieldTitle          = "title"
	FieldHeaderLayout   = "header_layout"
	FieldSectionIndex   = "section_index"
	FieldColumnPosition = "col_pos"
	FieldSorting        = "sorting"
	FieldAnchor         = "anchor"
)

// HiddenHeaderLayout is the header_layout value marking a header as not rendered.
const HiddenHeaderLayout = 100

// Row is one content element as fetched from the row source.
// Rows are read-only snapshots; columns not listed above pass through untouched.
type Row map[string]any

// ID returns the element id.
func (r Row) ID() int { return asInt(r[FieldID]) }

// ParentID returns the id of the enclosing container, 0 for top-level elements.
func (r Row) ParentID() int { return asInt(r[FieldParentID]) }

// PageID returns the id of the page the element belongs to.
func (r Row) PageID() int { return asInt(r[FieldPageID]) }

// Type returns the element type tag.
func (r Row) Type() string { return asString(r[FieldType]) }

// Title returns the raw, untrimmed title.
func (r Row) Title() string { return asString(r[FieldTitle]) }

// HeaderLayout returns the header layout value.
func (r Row) HeaderLayout() int { return asInt(r[FieldHeaderLayout]) }

// HasHiddenHeader reports whether the header layout marks the header as hidden.
func (r Row) HasHiddenHeader() bool { return r.HeaderLayout() == HiddenHeaderLayout }

// SectionIndexed reports whether the element is flagged for the section index.
func (r Row) SectionIndexed() bool { return asBool(r[FieldSectionIndex]) }

// ColumnPosition returns the column position (colPos) of the element.
func (r Row) ColumnPosition() int { return asInt(r[FieldColumnPosition]) }

// Sorting returns the display order among siblings.
func (r Row) Sorting() int { return asInt(r[FieldSorting]) }

// Anchor returns the raw, untrimmed anchor override.
func (r Row) Anchor() string { return asString(r[FieldAnchor]) }

// asInt converts loosely typed column values to int.
// Anything that is not numeric yields 0.
func asInt(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	default:
		return 0
	}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// asString converts scalar column values to string. Non-scalars yield "".
func asString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return ""
	}
}

// asBool interprets the usual truthy spellings ("1", "true", "on", "yes") and non-zero numbers.
func asBool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	case nil:
		return false
	default:
		return asInt(v) != 0
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
