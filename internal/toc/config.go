package toc

import (
	"slices"
	"strings"
)

// Mode selects which elements qualify as TOC candidates.
type Mode string

const (
	// ModeSectionIndexOnly keeps titled elements flagged for the section index.
	ModeSectionIndexOnly Mode = "sectionIndexOnly"
	// ModeVisibleHeaders keeps titled elements whose header is not hidden.
	ModeVisibleHeaders Mode = "visibleHeaders"
	// ModeAll keeps every titled element.
	ModeAll Mode = "all"
)

// ParseMode returns the mode named by s. Unknown or empty values map to ModeVisibleHeaders.
func ParseMode(s string) Mode {
	switch Mode(strings.TrimSpace(s)) {
	case ModeSectionIndexOnly:
		return ModeSectionIndexOnly
	case ModeAll:
		return ModeAll
	default:
		return ModeVisibleHeaders
	}
}

// ColumnSet is a set of column positions. A nil set means "not configured".
type ColumnSet map[int]struct{}

// NewColumnSet returns a configured (non-nil) set holding cols.
func NewColumnSet(cols ...int) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether col is in the set.
func (s ColumnSet) Contains(col int) bool {
	_, ok := s[col]
	return ok
}

// Values returns the members in ascending order.
func (s ColumnSet) Values() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Configuration drives a single build. It is treated as a value: the
// before-build hook may swap it, nothing else changes it.
type Configuration struct {
	Mode Mode
	// AllowedColumns restricts top-level elements to these column positions (nil = all).
	AllowedColumns ColumnSet
	// ExcludedColumns drops top-level elements in these column positions (nil = none).
	// Exclusion wins over AllowedColumns.
	ExcludedColumns ColumnSet
	// MaxDepth caps nesting; values <= 0 mean unlimited.
	MaxDepth int
	// ExcludeID is an element id to omit together with its subtree (0 = none).
	ExcludeID int
	// UseAnchorOverride enables the per-element anchor field.
	UseAnchorOverride bool
}

// DefaultConfiguration returns visibleHeaders mode without filters or depth limit.
func DefaultConfiguration() Configuration {
	return Configuration{Mode: ModeVisibleHeaders}
}

// ColumnAllowed reports whether a top-level element at col passes the column filters.
func (c Configuration) ColumnAllowed(col int) bool {
	if c.ExcludedColumns != nil && c.ExcludedColumns.Contains(col) {
		return false
	}
	if c.AllowedColumns != nil {
		return c.AllowedColumns.Contains(col)
	}
	return true
}

// depthLimited reports whether descent has to stop at depth.
func (c Configuration) depthLimited(depth int) bool {
	return c.MaxDepth > 0 && depth >= c.MaxDepth
}

// ConfigurationFromMap builds a Configuration from loosely typed settings.
// Recognised keys: mode, allowedColPos, excludedColPos, maxDepth, excludeUid, useHeaderLink.
func ConfigurationFromMap(m map[string]any) Configuration {
	cfg := DefaultConfiguration()
	if v, ok := m["mode"]; ok {
		cfg.Mode = ParseMode(asString(v))
	}
	cfg.AllowedColumns = columnSetFrom(m["allowedColPos"])
	cfg.ExcludedColumns = columnSetFrom(m["excludedColPos"])
	cfg.MaxDepth = asInt(m["maxDepth"])
	cfg.ExcludeID = asInt(m["excludeUid"])
	cfg.UseAnchorOverride = asBool(m["useHeaderLink"])
	return cfg
}

func columnSetFrom(v any) ColumnSet {
	switch v := v.(type) {
	case ColumnSet:
		return v
	case []int:
		return NewColumnSet(v...)
	case []any:
		s := make(ColumnSet, len(v))
		for _, item := range v {
			s[asInt(item)] = struct{}{}
		}
		return s
	case []string:
		s := make(ColumnSet, len(v))
		for _, item := range v {
			s[parseInt(item)] = struct{}{}
		}
		return s
	default:
		return nil
	}
}
