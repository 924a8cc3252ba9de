package reminder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"rulesaide/internal/parser"
)

type Result struct {
	Loaded  int
	Skipped int
	Errors  []error
}

// Load walks the given roots for markdown reminders. Files without
// frontmatter are skipped; malformed reminders are collected in the result
// without stopping the walk.
func Load(roots, excludes []string) (*Catalog, *Result, error) {
	files, err := walkMarkdownFiles(roots, excludes)
	if err != nil {
		return nil, nil, fmt.Errorf("walking reminder files: %w", err)
	}

	result := &Result{}
	reminders := make([]Reminder, 0, len(files))
	for _, path := range files {
		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrNoFrontmatter) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}
		reminders = append(reminders, Reminder{
			Title:      doc.Title,
			Trigger:    Trigger(doc.Trigger),
			Tags:       doc.Tags,
			Body:       doc.Body,
			SourceFile: path,
		})
		result.Loaded++
	}

	return NewCatalog(reminders), result, nil
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if isExcluded(path, excluded) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
