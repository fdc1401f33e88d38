package storage

import (
	"context"
	"errors"
	"testing"
)

func TestPageRepo_GetOrCreateByPath(t *testing.T) {
	db := newTestDB(t)
	repo := NewPageRepo(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateByPath(ctx, "guide/intro.md")
	if err != nil {
		t.Fatalf("GetOrCreateByPath() error = %v", err)
	}
	if first.ID <= 0 {
		t.Errorf("GetOrCreateByPath() ID = %d, want positive", first.ID)
	}
	if first.RelPath != "guide/intro.md" {
		t.Errorf("RelPath = %q", first.RelPath)
	}
	if first.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	again, err := repo.GetOrCreateByPath(ctx, "guide/intro.md")
	if err != nil {
		t.Fatalf("GetOrCreateByPath() second call error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second call ID = %d, want %d", again.ID, first.ID)
	}
}

func TestPageRepo_UpdateMetaAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPageRepo(db)
	ctx := context.Background()

	page, err := repo.GetOrCreateByPath(ctx, "a.md")
	if err != nil {
		t.Fatalf("GetOrCreateByPath() error = %v", err)
	}

	if err := repo.UpdateMeta(ctx, page.ID, "Title A", "abc123"); err != nil {
		t.Fatalf("UpdateMeta() error = %v", err)
	}

	got, err := repo.GetByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Title A" || got.Hash != "abc123" {
		t.Errorf("GetByID() = %+v", got)
	}

	if err := repo.UpdateMeta(ctx, 9999, "x", "y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateMeta() on missing page error = %v, want ErrNotFound", err)
	}
}

func TestPageRepo_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPageRepo(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByPath(ctx, "missing.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPath() error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteByPath(ctx, "missing.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteByPath() error = %v, want ErrNotFound", err)
	}
}

func TestPageRepo_ListAllAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPageRepo(db)
	content := NewContentRepo(db)
	ctx := context.Background()

	for _, p := range []string{"b.md", "a.md"} {
		if _, err := repo.GetOrCreateByPath(ctx, p); err != nil {
			t.Fatalf("GetOrCreateByPath(%q) error = %v", p, err)
		}
	}

	pages, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(pages) != 2 || pages[0].RelPath != "a.md" || pages[1].RelPath != "b.md" {
		t.Fatalf("ListAll() = %+v", pages)
	}

	if _, err := content.Insert(ctx, ContentElement{PageID: pages[0].ID, Type: "text", Title: "X"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := repo.DeleteByPath(ctx, "a.md"); err != nil {
		t.Fatalf("DeleteByPath() error = %v", err)
	}

	var remaining int
	if err := db.QueryRow("SELECT COUNT(*) FROM content_elements").Scan(&remaining); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if remaining != 0 {
		t.Errorf("content elements left after page delete = %d, want 0", remaining)
	}
}
