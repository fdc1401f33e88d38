package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys and a busy timeout are set through the DSN so every pooled
// connection gets them.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			rel_path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			hash TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS content_elements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL,
			parent_id INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT 'text',
			title TEXT NOT NULL DEFAULT '',
			header_layout INTEGER NOT NULL DEFAULT 0,
			section_index INTEGER NOT NULL DEFAULT 1,
			col_pos INTEGER NOT NULL DEFAULT 0,
			sorting INTEGER NOT NULL DEFAULT 0,
			anchor TEXT NOT NULL DEFAULT '',
			hidden INTEGER NOT NULL DEFAULT 0,
			deleted INTEGER NOT NULL DEFAULT 0,
			starttime INTEGER NOT NULL DEFAULT 0,
			endtime INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (page_id) REFERENCES pages(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_content_elements_page
			ON content_elements (page_id, parent_id, sorting);`,
		`CREATE INDEX IF NOT EXISTS idx_content_elements_parent
			ON content_elements (parent_id, col_pos, sorting);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
