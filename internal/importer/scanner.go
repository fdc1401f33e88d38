package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScannedFile is a markdown document found below the content root.
type ScannedFile struct {
	RelPath string // Relative path from the content root, forward slashes
	AbsPath string
}

// Scan walks root and returns every markdown file. Dot-directories are skipped.
func Scan(ctx context.Context, root string) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isMarkdown(path) {
			return nil
		}

		relPath, err := relativePath(root, path)
		if err != nil {
			return err
		}

		files = append(files, ScannedFile{RelPath: relPath, AbsPath: path})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func relativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path for %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
