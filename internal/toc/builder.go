package toc

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_row_source.go -package=mocks sectiontoc/internal/toc RowSource
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_container_classifier.go -package=mocks sectiontoc/internal/toc ContainerClassifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sectiontoc/internal/contextutil"
)

// FirstLevel is the depth of top-level entries. Level 1 belongs to the page title.
const FirstLevel = 2

// RowSource fetches content element rows. Both methods apply visibility
// restrictions, drop non-positive ids and return an empty slice for empty input.
type RowSource interface {
	// FindTopLevel returns elements outside any container, ordered by page and sorting.
	FindTopLevel(ctx context.Context, pageIDs []int) ([]Row, error)
	// FindAllDescendantsForPages returns every element nested, directly or
	// transitively, in a container on the given pages, ordered by parent,
	// column position and sorting.
	FindAllDescendantsForPages(ctx context.Context, pageIDs []int) ([]Row, error)
}

// ContainerClassifier reports whether a type tag denotes a container element.
type ContainerClassifier interface {
	IsContainer(typeTag string) bool
}

// Builder builds tables of contents. It keeps no per-build state and is safe
// for concurrent use.
type Builder struct {
	source     RowSource
	classifier ContainerClassifier
	logger     *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used when the build context carries none.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder.
func NewBuilder(source RowSource, classifier ContainerClassifier, opts ...BuilderOption) *Builder {
	b := &Builder{
		source:     source,
		classifier: classifier,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildState is scoped to one Build call.
type buildState struct {
	ctx      context.Context
	logger   *slog.Logger
	cfg      Configuration
	hooks    *Hooks
	children map[int][]Row
}

// BuildForPage builds the table of contents of a single page.
func (b *Builder) BuildForPage(ctx context.Context, pageID int, cfg Configuration, hooks *Hooks) ([]Entry, error) {
	return b.Build(ctx, []int{pageID}, cfg, hooks)
}

// Build returns the flat, unsorted list of entries for pageIDs.
// The only error source is the row source; malformed rows produce fewer entries.
func (b *Builder) Build(ctx context.Context, pageIDs []int, cfg Configuration, hooks *Hooks) ([]Entry, error) {
	logger := contextutil.LoggerFromContextOr(ctx, b.logger)

	if len(pageIDs) == 0 {
		return []Entry{}, nil
	}

	before := &BeforeBuildEvent{
		PageIDs: append([]int(nil), pageIDs...),
		Config:  cfg,
	}
	hooks.dispatchBeforeBuild(before)
	cfg = before.Config
	pageIDs = positiveIDs(before.PageIDs)

	if len(pageIDs) == 0 {
		logger.DebugContext(ctx, "no valid page ids, skipping fetch")
		return []Entry{}, nil
	}

	topLevel, err := b.source.FindTopLevel(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top-level elements: %w", err)
	}
	descendants, err := b.source.FindAllDescendantsForPages(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch container children: %w", err)
	}
	logger.DebugContext(ctx, "fetched content elements",
		"page_ids", pageIDs,
		"top_level", len(topLevel),
		"descendants", len(descendants),
	)

	st := &buildState{
		ctx:      ctx,
		logger:   logger,
		cfg:      cfg,
		hooks:    hooks,
		children: groupByParent(descendants),
	}

	entries := make([]Entry, 0, len(topLevel))
	for _, row := range topLevel {
		if st.excluded(row) {
			continue
		}
		if !cfg.ColumnAllowed(row.ColumnPosition()) {
			continue
		}
		entries = b.collect(st, row, FirstLevel, Path{}, entries)
	}

	after := &AfterBuildEvent{
		PageIDs: pageIDs,
		Config:  cfg,
		Entries: entries,
	}
	hooks.dispatchAfterBuild(after)
	if after.Entries == nil {
		return []Entry{}, nil
	}
	return after.Entries, nil
}

// collect appends the entry for row, if any, followed by the entries of its
// container children in child order.
func (b *Builder) collect(st *buildState, row Row, depth int, path Path, out []Entry) []Entry {
	if IsCandidate(row, st.cfg.Mode) {
		ev := &ItemFilterEvent{
			entry: MapEntry(row, depth, path, st.cfg.UseAnchorOverride),
			row:   row,
		}
		st.hooks.dispatchFilterItem(ev)
		if !ev.Skipped() {
			out = append(out, ev.Entry())
		}
	}

	if !b.classifier.IsContainer(row.Type()) {
		return out
	}
	if st.cfg.depthLimited(depth) {
		return out
	}

	// Children inherit the container's column visibility; their own col_pos is
	// an internal slot number and is not filtered.
	childPath := path.With(SegmentFor(row))
	for _, child := range st.children[row.ID()] {
		if st.excluded(child) {
			continue
		}
		if childPath.Contains(child.ID()) {
			st.logger.WarnContext(st.ctx, "container cycle detected, not descending",
				"container_id", row.ID(),
				"child_id", child.ID(),
			)
			continue
		}
		out = b.collect(st, child, depth+1, childPath, out)
	}
	return out
}

func (st *buildState) excluded(row Row) bool {
	return st.cfg.ExcludeID != 0 && row.ID() == st.cfg.ExcludeID
}

// IsCandidate reports whether row qualifies for the TOC under mode.
// Unknown modes behave like ModeVisibleHeaders.
func IsCandidate(row Row, mode Mode) bool {
	if strings.TrimSpace(row.Title()) == "" {
		return false
	}
	switch mode {
	case ModeSectionIndexOnly:
		return row.SectionIndexed()
	case ModeAll:
		return true
	default:
		return !row.HasHiddenHeader()
	}
}

// groupByParent maps container ids to their children, preserving fetch order.
func groupByParent(rows []Row) map[int][]Row {
	children := make(map[int][]Row)
	for _, row := range rows {
		parent := row.ParentID()
		if parent <= 0 {
			continue
		}
		children[parent] = append(children[parent], row)
	}
	return children
}

func positiveIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
