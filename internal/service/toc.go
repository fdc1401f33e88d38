package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_toc_builder.go -package=mocks sectiontoc/internal/service TocBuilder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_lookup.go -package=mocks sectiontoc/internal/service PageLookup
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_toc_service.go -package=mocks sectiontoc/internal/service TocService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"sectiontoc/internal/contextutil"
	"sectiontoc/internal/storage"
	"sectiontoc/internal/toc"
)

// CurrentPageKeyword in a page list stands for the page being rendered.
const CurrentPageKeyword = "this"

// TocBuilder builds the unsorted entry list.
// This interface is defined from the service layer's perspective (consumer-first).
type TocBuilder interface {
	Build(ctx context.Context, pageIDs []int, cfg toc.Configuration, hooks *toc.Hooks) ([]toc.Entry, error)
}

// PageLookup resolves page ids.
type PageLookup interface {
	GetByID(ctx context.Context, id int) (storage.Page, error)
}

// Defaults are the configured fallbacks for request settings. Empty strings
// fall through to the built-in defaults.
type Defaults struct {
	Mode              string
	IncludeColPos     string
	ExcludeColPos     string
	MaxDepth          string
	UseAnchorOverride bool
}

// TocRequest carries raw, unparsed settings. Empty fields take the configured default.
type TocRequest struct {
	// Pages is a comma-separated page list; "this" or empty means CurrentPageID.
	Pages            string
	CurrentPageID    int
	CurrentElementID int // excluded from the result together with its subtree

	Mode          string
	IncludeColPos string // comma-separated, "*" for all
	ExcludeColPos string
	MaxDepth      string
	// UseAnchorOverride is nil when the request does not set it.
	UseAnchorOverride *bool
}

// TocResponse is a built and sorted table of contents.
type TocResponse struct {
	PageIDs []int
	Config  toc.Configuration
	Entries []toc.Entry
}

// TocService provides table of contents functionality.
type TocService interface {
	// BuildToc resolves the request settings, builds and sorts the entries.
	BuildToc(ctx context.Context, req TocRequest) (TocResponse, error)
	// PageToc builds the table of contents of one existing page.
	PageToc(ctx context.Context, pageID int, req TocRequest) (TocResponse, error)
}

// tocService implements TocService.
type tocService struct {
	builder  TocBuilder
	pages    PageLookup
	defaults Defaults
	hooks    *toc.Hooks
	logger   *slog.Logger
}

// Option configures the TocService.
type Option func(*tocService)

// WithHooks installs extension hooks run on every build.
func WithHooks(hooks *toc.Hooks) Option {
	return func(s *tocService) {
		s.hooks = hooks
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(s *tocService) {
		s.logger = logger
	}
}

// NewTocService creates a new TocService. pages may be nil, in which case
// PageToc does not check that the page exists.
func NewTocService(builder TocBuilder, pages PageLookup, defaults Defaults, opts ...Option) TocService {
	s := &tocService{
		builder:  builder,
		pages:    pages,
		defaults: defaults,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildToc builds a table of contents.
func (s *tocService) BuildToc(ctx context.Context, req TocRequest) (TocResponse, error) {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	cfg, err := s.resolveConfiguration(req)
	if err != nil {
		logger.WarnContext(ctx, "invalid table of contents settings", "error", err)
		return TocResponse{}, err
	}

	pageIDs, ok := ResolvePageIDs(req.Pages, req.CurrentPageID)
	if !ok {
		logger.WarnContext(ctx, "no valid pages for table of contents",
			"pages", req.Pages, "current_page_id", req.CurrentPageID)
	}

	logger.DebugContext(ctx, "building table of contents",
		"page_ids", pageIDs,
		"mode", cfg.Mode,
		"include_col_pos", cfg.AllowedColumns.Values(),
		"exclude_col_pos", cfg.ExcludedColumns.Values(),
		"max_depth", cfg.MaxDepth,
		"exclude_id", cfg.ExcludeID,
		"use_anchor_override", cfg.UseAnchorOverride,
	)

	entries, err := s.builder.Build(ctx, pageIDs, cfg, s.hooks)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build table of contents", "error", err)
		return TocResponse{}, ExternalError(err, "failed to build table of contents")
	}

	entries = toc.Sort(entries)
	if len(entries) == 0 {
		logger.InfoContext(ctx, "table of contents is empty", "page_ids", pageIDs, "mode", cfg.Mode)
	} else {
		logger.DebugContext(ctx, "table of contents built", "page_ids", pageIDs, "entries", len(entries))
	}

	return TocResponse{PageIDs: pageIDs, Config: cfg, Entries: entries}, nil
}

// PageToc builds the table of contents of pageID.
func (s *tocService) PageToc(ctx context.Context, pageID int, req TocRequest) (TocResponse, error) {
	if pageID <= 0 {
		return TocResponse{}, &ValidationError{Field: "pageID", Message: "must be a positive integer"}
	}

	if s.pages != nil {
		if _, err := s.pages.GetByID(ctx, pageID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return TocResponse{}, fmt.Errorf("page %d: %w", pageID, ErrNotFound)
			}
			return TocResponse{}, ExternalError(err, "failed to look up page")
		}
	}

	req.Pages = CurrentPageKeyword
	req.CurrentPageID = pageID
	return s.BuildToc(ctx, req)
}

// resolveConfiguration applies request > configured default > built-in default per field.
func (s *tocService) resolveConfiguration(req TocRequest) (toc.Configuration, error) {
	cfg := toc.DefaultConfiguration()
	cfg.Mode = toc.ParseMode(firstNonEmpty(req.Mode, s.defaults.Mode))
	cfg.AllowedColumns = ParseColumnFilter(firstNonEmpty(req.IncludeColPos, s.defaults.IncludeColPos))
	cfg.ExcludedColumns = ParseColumnFilter(firstNonEmpty(req.ExcludeColPos, s.defaults.ExcludeColPos))

	maxDepth, err := ParseMaxDepth(firstNonEmpty(req.MaxDepth, s.defaults.MaxDepth))
	if err != nil {
		return toc.Configuration{}, err
	}
	cfg.MaxDepth = maxDepth

	cfg.UseAnchorOverride = s.defaults.UseAnchorOverride
	if req.UseAnchorOverride != nil {
		cfg.UseAnchorOverride = *req.UseAnchorOverride
	}

	if req.CurrentElementID > 0 {
		cfg.ExcludeID = req.CurrentElementID
	}
	return cfg, nil
}

// ParseColumnFilter parses a comma-separated column position list.
// Empty input or "*" means no filter (nil). Blank items are dropped; every
// other item counts by its leading integer, so "abc" is column 0 and "3px" is 3.
func ParseColumnFilter(s string) toc.ColumnSet {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return nil
	}

	var cols []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		cols = append(cols, leadingInt(item))
	}
	if len(cols) == 0 {
		return nil
	}
	return toc.NewColumnSet(cols...)
}

// leadingInt returns the integer an item starts with, or 0 if it starts with none.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParseMaxDepth parses a depth limit. Empty means unlimited (0); negative
// values are clamped to unlimited.
func ParseMaxDepth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "maxDepth", Message: "must be an integer"}
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// ResolvePageIDs turns a page list into ids. "this" and an empty list stand
// for current. When nothing valid remains it returns [0], which builds an
// empty table of contents, and ok is false.
func ResolvePageIDs(pages string, current int) (ids []int, ok bool) {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		pages = CurrentPageKeyword
	}

	seen := map[int]struct{}{}
	for _, item := range strings.Split(pages, ",") {
		item = strings.TrimSpace(item)
		id := current
		if !strings.EqualFold(item, CurrentPageKeyword) {
			n, err := strconv.Atoi(item)
			if err != nil {
				continue
			}
			id = n
		}
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return []int{0}, false
	}
	return ids, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
