package storage

import "time"

// Page represents an imported document. Its id is the page id content elements belong to.
type Page struct {
	ID        int
	RelPath   string // Relative path from the content root
	Title     string
	Hash      string // xxhash hex of the file content
	UpdatedAt time.Time
}

// ContentElement is one stored content element.
type ContentElement struct {
	ID             int
	PageID         int
	ParentID       int // 0 for top-level elements
	Type           string
	Title          string
	HeaderLayout   int
	SectionIndex   bool
	ColumnPosition int
	Sorting        int
	Anchor         string
	Hidden         bool
	Deleted        bool
	StartTime      int64 // Unix seconds, 0 = no start restriction
	EndTime        int64 // Unix seconds, 0 = no end restriction

	// ParentRef is the 1-based position of the parent within a ReplacePage batch.
	// It is resolved to ParentID on insert; 0 means top-level.
	ParentRef int
}
