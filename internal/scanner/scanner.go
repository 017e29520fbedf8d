// Package scanner walks category folders and produces the file inventory the
// registry is built from. Classification is extension based and never fails:
// unrecognized extensions are inventoried as TypeUnknown so a stray file can
// not abort a scan. Only directory listings are read, never file contents.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"kartoteka/internal/dataroot"
	"kartoteka/internal/logging"
)

// Type is the detected file type of an inventory entry.
type Type string

const (
	TypeTabular  Type = "tabular"
	TypeText     Type = "text"
	TypeDocument Type = "document"
	TypeUnknown  Type = "unknown"
)

// FileEntry is one discovered file. Entries are never mutated after the scan;
// a re-scan rebuilds the inventory from scratch.
type FileEntry struct {
	// Path is the absolute file path.
	Path string
	// Name is the base name including extension.
	Name string
	// Category is the category key the file was found under.
	Category string
	Type     Type
	Size     int64
}

// Classify maps a file name to its detected type.
func Classify(name string) Type {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return TypeTabular
	case ".txt":
		return TypeText
	case ".docx":
		return TypeDocument
	default:
		return TypeUnknown
	}
}

// ScanCategory walks one category folder and returns its entries sorted by
// path. Hidden files and directories (dot prefixed) are skipped. The walk
// checks for cancellation between files; a context error aborts with the
// context's error and no partial result.
func ScanCategory(ctx context.Context, category dataroot.Category) ([]FileEntry, error) {
	var entries []FileEntry

	err := filepath.WalkDir(category.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if d.IsDir() {
			if path != category.Path && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, FileEntry{
			Path:     path,
			Name:     name,
			Category: category.Key,
			Type:     Classify(name),
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// ScanAll scans every category of the root. Categories run on a bounded worker
// pool (workers <= 1 means sequential); the combined inventory is returned in
// category order, paths sorted within each category, so repeated scans of an
// unchanged tree yield identical results regardless of worker count.
func ScanAll(ctx context.Context, root *dataroot.Root, workers int, logger *slog.Logger) ([]FileEntry, error) {
	log := logging.WithComponent(logger, "scanner")
	if workers < 1 {
		workers = 1
	}

	results := make([][]FileEntry, len(root.Categories))
	errs := make([]error, len(root.Categories))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, category := range root.Categories {
		wg.Add(1)
		go func(i int, category dataroot.Category) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = ScanCategory(ctx, category)
		}(i, category)
	}
	wg.Wait()

	var combined []FileEntry
	for i, category := range root.Categories {
		if errs[i] != nil {
			return nil, errs[i]
		}
		log.Debug("category scanned",
			logging.Args(
				logging.String(logging.FieldCategory, category.Key),
				logging.Int("files", len(results[i])),
			)...)
		combined = append(combined, results[i]...)
	}
	return combined, nil
}
