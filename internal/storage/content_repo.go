package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sectiontoc/internal/toc"
)

// elementColumns are selected for every row handed to the TOC builder.
const elementColumns = "c.id, c.page_id, c.parent_id, c.type, c.title, c.header_layout, " +
	"c.section_index, c.col_pos, c.sorting, c.anchor"

// visibleClause restricts to elements that are neither deleted nor hidden and
// inside their publication window. It takes the current unix time twice.
const visibleClause = "c.deleted = 0 AND c.hidden = 0 " +
	"AND (c.starttime = 0 OR c.starttime <= ?) AND (c.endtime = 0 OR c.endtime > ?)"

// ContentRepo reads and writes content elements. It is the row source of the TOC builder.
type ContentRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ toc.RowSource = (*ContentRepo)(nil)

// ContentRepoOption configures a ContentRepo.
type ContentRepoOption func(*ContentRepo)

// WithClock sets the clock used for publication window checks.
func WithClock(now func() time.Time) ContentRepoOption {
	return func(r *ContentRepo) {
		r.now = now
	}
}

// NewContentRepo creates a new ContentRepo.
func NewContentRepo(db *sql.DB, opts ...ContentRepoOption) *ContentRepo {
	r := &ContentRepo{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindTopLevel returns the visible top-level elements of the given pages,
// ordered by page and sorting.
func (r *ContentRepo) FindTopLevel(ctx context.Context, pageIDs []int) ([]toc.Row, error) {
	ids := positive(pageIDs)
	if len(ids) == 0 {
		return []toc.Row{}, nil
	}

	now := r.now().Unix()
	args := append(intArgs(ids), now, now)
	query := "SELECT " + elementColumns + " FROM content_elements c" +
		" WHERE c.page_id IN (" + placeholders(len(ids)) + ") AND c.parent_id = 0 AND " + visibleClause +
		" ORDER BY c.page_id, c.sorting, c.id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top-level elements: %w", err)
	}
	return rows, nil
}

// FindAllDescendantsForPages returns every visible element nested at any depth
// below a visible top-level element of the given pages, ordered by parent,
// column position and sorting. A hidden container hides its whole subtree.
func (r *ContentRepo) FindAllDescendantsForPages(ctx context.Context, pageIDs []int) ([]toc.Row, error) {
	ids := positive(pageIDs)
	if len(ids) == 0 {
		return []toc.Row{}, nil
	}

	now := r.now().Unix()
	args := append(intArgs(ids), now, now, now, now)
	// UNION drops rows already visited, so parent loops in the data terminate.
	query := "WITH RECURSIVE tree(id) AS (" +
		" SELECT c.id FROM content_elements c" +
		" WHERE c.page_id IN (" + placeholders(len(ids)) + ") AND c.parent_id = 0 AND " + visibleClause +
		" UNION" +
		" SELECT c.id FROM content_elements c JOIN tree t ON c.parent_id = t.id" +
		" WHERE " + visibleClause +
		")" +
		" SELECT " + elementColumns + " FROM content_elements c" +
		" WHERE c.id IN (SELECT id FROM tree) AND c.parent_id <> 0" +
		" ORDER BY c.parent_id, c.col_pos, c.sorting, c.id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query descendant elements: %w", err)
	}
	return rows, nil
}

// FindContainerChildren returns the visible direct children of one container.
func (r *ContentRepo) FindContainerChildren(ctx context.Context, parentID int) ([]toc.Row, error) {
	if parentID <= 0 {
		return []toc.Row{}, nil
	}

	now := r.now().Unix()
	query := "SELECT " + elementColumns + " FROM content_elements c" +
		" WHERE c.parent_id = ? AND " + visibleClause +
		" ORDER BY c.col_pos, c.sorting, c.id"

	rows, err := r.query(ctx, query, parentID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query container children: %w", err)
	}
	return rows, nil
}

// Insert stores one element and returns its id.
func (r *ContentRepo) Insert(ctx context.Context, el ContentElement) (int, error) {
	id, err := withRetry(ctx, func() (int, error) {
		return insertElement(ctx, r.db, el)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert content element: %w", err)
	}
	return id, nil
}

// ReplacePage swaps all elements of a page for elements in one transaction.
// Parents must precede their children; ParentRef links are resolved to ids.
// It returns the ids in input order.
func (r *ContentRepo) ReplacePage(ctx context.Context, pageID int, elements []ContentElement) ([]int, error) {
	ids, err := withRetry(ctx, func() ([]int, error) {
		return r.replacePage(ctx, pageID, elements)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace page elements: %w", err)
	}
	return ids, nil
}

func (r *ContentRepo) replacePage(ctx context.Context, pageID int, elements []ContentElement) (ids []int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM content_elements WHERE page_id = ?", pageID); err != nil {
		return nil, err
	}

	ids = make([]int, len(elements))
	for i, el := range elements {
		el.PageID = pageID
		if el.ParentRef > 0 {
			if el.ParentRef > i {
				return nil, fmt.Errorf("element %d references parent %d which is not inserted yet", i+1, el.ParentRef)
			}
			el.ParentID = ids[el.ParentRef-1]
		}
		if ids[i], err = insertElement(ctx, tx, el); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertElement(ctx context.Context, db execer, el ContentElement) (int, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO content_elements
			(page_id, parent_id, type, title, header_layout, section_index, col_pos, sorting, anchor,
			 hidden, deleted, starttime, endtime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		el.PageID, el.ParentID, el.Type, el.Title, el.HeaderLayout, el.SectionIndex, el.ColumnPosition,
		el.Sorting, el.Anchor, el.Hidden, el.Deleted, el.StartTime, el.EndTime,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// query runs a select and scans every column of every row into a toc.Row.
func (r *ContentRepo) query(ctx context.Context, query string, args ...any) ([]toc.Row, error) {
	return withRetry(ctx, func() ([]toc.Row, error) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = rows.Close()
		}()
		return scanRows(rows)
	})
}

func scanRows(rows *sql.Rows) ([]toc.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []toc.Row{}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(toc.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func positive(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func intArgs(ids []int) []any {
	args := make([]any, len(ids), len(ids)+4)
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
