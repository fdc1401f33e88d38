package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PageRepo provides methods for page operations.
type PageRepo struct {
	db *sql.DB
}

// NewPageRepo creates a new PageRepo.
func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

const pageColumns = "id, rel_path, title, hash, updated_at"

func scanPage(row interface{ Scan(...any) error }) (Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.RelPath, &p.Title, &p.Hash, &p.UpdatedAt)
	return p, err
}

// GetByID gets a page by id. Returns ErrNotFound if it does not exist.
func (r *PageRepo) GetByID(ctx context.Context, id int) (Page, error) {
	page, err := scanPage(r.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to query page: %w", err)
	}
	return page, nil
}

// GetByPath gets a page by relative path. Returns ErrNotFound if it does not exist.
func (r *PageRepo) GetByPath(ctx context.Context, relPath string) (Page, error) {
	page, err := scanPage(r.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE rel_path = ?", relPath))
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to query page: %w", err)
	}
	return page, nil
}

// GetOrCreateByPath gets an existing page by relative path, or creates an empty one.
func (r *PageRepo) GetOrCreateByPath(ctx context.Context, relPath string) (Page, error) {
	page, err := r.GetByPath(ctx, relPath)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Page{}, err
	}

	_, err = withRetry(ctx, func() (sql.Result, error) {
		return r.db.ExecContext(ctx,
			"INSERT INTO pages (rel_path) VALUES (?) ON CONFLICT (rel_path) DO NOTHING", relPath)
	})
	if err != nil {
		return Page{}, fmt.Errorf("failed to create page: %w", err)
	}

	return r.GetByPath(ctx, relPath)
}

// UpdateMeta stores the title and content hash of a page and bumps updated_at.
func (r *PageRepo) UpdateMeta(ctx context.Context, id int, title, hash string) error {
	res, err := withRetry(ctx, func() (sql.Result, error) {
		return r.db.ExecContext(ctx,
			"UPDATE pages SET title = ?, hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			title, hash, id)
	})
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByPath removes a page and, through the foreign key, its content elements.
func (r *PageRepo) DeleteByPath(ctx context.Context, relPath string) error {
	res, err := withRetry(ctx, func() (sql.Result, error) {
		return r.db.ExecContext(ctx, "DELETE FROM pages WHERE rel_path = ?", relPath)
	})
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns all pages ordered by relative path.
func (r *PageRepo) ListAll(ctx context.Context) ([]Page, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+pageColumns+" FROM pages ORDER BY rel_path")
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var pages []Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return pages, nil
}
