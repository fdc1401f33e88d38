package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sectiontoc/internal/contextutil"
	"sectiontoc/internal/registry"
	"sectiontoc/internal/storage"
)

// PageStore persists pages.
type PageStore interface {
	GetByPath(ctx context.Context, relPath string) (storage.Page, error)
	GetOrCreateByPath(ctx context.Context, relPath string) (storage.Page, error)
	UpdateMeta(ctx context.Context, id int, title, hash string) error
	DeleteByPath(ctx context.Context, relPath string) error
	ListAll(ctx context.Context) ([]storage.Page, error)
}

// ElementStore persists the content elements of a page.
type ElementStore interface {
	ReplacePage(ctx context.Context, pageID int, elements []storage.ContentElement) ([]int, error)
}

// Registrar records container types so imported pages nest in the TOC.
type Registrar interface {
	Register(def registry.ContainerDefinition)
}

// Stats summarises an ImportAll run.
type Stats struct {
	Files     int `json:"files"`
	Imported  int `json:"imported"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
	Failed    int `json:"failed"`
}

// Importer loads markdown documents into page and content element storage.
type Importer struct {
	pages       PageStore
	elements    ElementStore
	parser      *Parser
	concurrency int
	logger      *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithConcurrency bounds the number of files parsed in parallel.
func WithConcurrency(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithContainerType sets the element type of headings with nested headings.
func WithContainerType(containerType string) Option {
	return func(i *Importer) {
		i.parser = NewParser(containerType)
	}
}

// New creates an Importer. When registrar is non-nil the container type is registered with it.
func New(pages PageStore, elements ElementStore, registrar Registrar, opts ...Option) *Importer {
	i := &Importer{
		pages:       pages,
		elements:    elements,
		parser:      NewParser(DefaultContainerType),
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if registrar != nil {
		registrar.Register(ContainerDefinition(i.parser.ContainerType()))
	}
	return i
}

// ContainerDefinition describes the container type the importer writes.
func ContainerDefinition(containerType string) registry.ContainerDefinition {
	return registry.ContainerDefinition{
		Type:    containerType,
		Label:   "Markdown section",
		Columns: []int{ColumnPosition},
	}
}

func (i *Importer) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContextOr(ctx, i.logger)
}

// parsedFile is the result of reading and parsing one file.
type parsedFile struct {
	file ScannedFile
	hash string
	doc  Document
	err  error
}

func (i *Importer) parseFile(file ScannedFile) parsedFile {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return parsedFile{file: file, err: fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)}
	}
	return parsedFile{
		file: file,
		hash: contentHash(content),
		doc:  i.parser.Parse(content, file.RelPath),
	}
}

func contentHash(content []byte) string {
	return strconv.FormatUint(xxhash.Sum64(content), 16)
}

// ImportFile imports one file below root. It reports false when the stored
// page already matches the file content.
func (i *Importer) ImportFile(ctx context.Context, root, relPath string) (bool, error) {
	file := ScannedFile{
		RelPath: filepath.ToSlash(relPath),
		AbsPath: filepath.Join(root, filepath.FromSlash(relPath)),
	}
	parsed := i.parseFile(file)
	if parsed.err != nil {
		return false, parsed.err
	}
	return i.store(ctx, parsed)
}

// store writes a parsed file unless its hash is unchanged.
func (i *Importer) store(ctx context.Context, parsed parsedFile) (bool, error) {
	logger := i.getLogger(ctx)
	relPath := parsed.file.RelPath

	existing, err := i.pages.GetByPath(ctx, relPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to check existing page: %w", err)
	}
	if err == nil && existing.Hash == parsed.hash {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", relPath, "hash", parsed.hash)
		return false, nil
	}

	page, err := i.pages.GetOrCreateByPath(ctx, relPath)
	if err != nil {
		return false, fmt.Errorf("failed to get page: %w", err)
	}

	if _, err := i.elements.ReplacePage(ctx, page.ID, parsed.doc.Elements); err != nil {
		return false, fmt.Errorf("failed to store elements: %w", err)
	}

	// The hash goes last so a failed element write is retried on the next run.
	if err := i.pages.UpdateMeta(ctx, page.ID, parsed.doc.Title, parsed.hash); err != nil {
		return false, fmt.Errorf("failed to update page: %w", err)
	}

	logger.InfoContext(ctx, "imported page",
		"rel_path", relPath, "page_id", page.ID, "title", parsed.doc.Title, "elements", len(parsed.doc.Elements))
	return true, nil
}

// RemoveFile deletes the page imported from relPath. A page that was never
// imported is not an error.
func (i *Importer) RemoveFile(ctx context.Context, relPath string) error {
	err := i.pages.DeleteByPath(ctx, filepath.ToSlash(relPath))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to remove page: %w", err)
	}
	if err == nil {
		i.getLogger(ctx).InfoContext(ctx, "removed page", "rel_path", relPath)
	}
	return nil
}

// ImportAll imports every markdown file below root and removes pages whose
// file is gone. Files are parsed concurrently and written one at a time.
// Errors for individual files are logged and counted; the run continues.
func (i *Importer) ImportAll(ctx context.Context, root string) (Stats, error) {
	logger := i.getLogger(ctx).With("run_id", uuid.NewString())
	ctx = contextutil.WithLogger(ctx, logger)

	files, err := Scan(ctx, root)
	if err != nil {
		return Stats{}, err
	}

	logger.InfoContext(ctx, "starting import", "root", root, "total_files", len(files))

	parsed := make([]parsedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)
	for idx, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed[idx] = i.parseFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{Files: len(files)}
	seen := make(map[string]struct{}, len(files))
	for _, p := range parsed {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		seen[p.file.RelPath] = struct{}{}

		if p.err != nil {
			stats.Failed++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", p.file.RelPath, "error", p.err)
			continue
		}

		imported, err := i.store(ctx, p)
		switch {
		case err != nil:
			stats.Failed++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", p.file.RelPath, "error", err)
		case imported:
			stats.Imported++
		default:
			stats.Unchanged++
		}
	}

	removed, err := i.prune(ctx, seen)
	stats.Removed = removed
	if err != nil {
		return stats, err
	}

	logger.InfoContext(ctx, "import completed",
		"total_files", stats.Files, "imported", stats.Imported, "unchanged", stats.Unchanged,
		"removed", stats.Removed, "errors", stats.Failed)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("import completed with %d errors", stats.Failed)
	}
	return stats, nil
}

// prune deletes pages that are not in seen.
func (i *Importer) prune(ctx context.Context, seen map[string]struct{}) (int, error) {
	pages, err := i.pages.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pages: %w", err)
	}

	removed := 0
	for _, page := range pages {
		if _, ok := seen[page.RelPath]; ok {
			continue
		}
		if err := i.RemoveFile(ctx, page.RelPath); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
