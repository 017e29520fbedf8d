// Package loader materializes registry descriptors into in-memory tables.
// Each dataset is read at most once per run: results are cached by logical
// name and the registry is immutable, so there is no invalidation. A failed
// load never disturbs previously loaded datasets.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"kartoteka/internal/config"
	"kartoteka/internal/logging"
	"kartoteka/internal/registry"
	"kartoteka/internal/scanner"
)

// Table is an ordered sequence of uniform records. Rows are padded or
// truncated to the column count so every record has the same width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// LoadError wraps a materialization failure for one dataset.
type LoadError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %q from %s: %v", e.Dataset, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads canonical sources into tables.
type Loader struct {
	cfg    *config.Config
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*Table
}

// New constructs a Loader with an empty cache.
func New(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "loader"),
		cache:  make(map[string]*Table),
	}
}

// Load materializes the descriptor's canonical source. Repeat calls for the
// same dataset return the identical cached table.
func (l *Loader) Load(ctx context.Context, desc *registry.Descriptor) (*Table, error) {
	l.mu.Lock()
	if table, ok := l.cache[desc.Name]; ok {
		l.mu.Unlock()
		return table, nil
	}
	l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := l.read(desc)
	if err != nil {
		return nil, &LoadError{Dataset: desc.Name, Path: desc.Canonical.Path, Err: err}
	}
	normalize(table)

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another goroutine may have loaded the same dataset meanwhile; keep the
	// first table so identity stays stable for callers.
	if existing, ok := l.cache[desc.Name]; ok {
		return existing, nil
	}
	l.cache[desc.Name] = table

	l.logger.Debug("dataset materialized",
		logging.Args(
			logging.String(logging.FieldDataset, desc.Name),
			logging.Int("rows", len(table.Rows)),
			logging.Int("columns", len(table.Columns)),
		)...)
	return table, nil
}

func (l *Loader) read(desc *registry.Descriptor) (*Table, error) {
	entry := desc.Canonical
	switch entry.Type {
	case scanner.TypeTabular:
		if isXLSX(entry.Name) {
			return readXLSX(entry.Path)
		}
		return l.readDelimited(entry)
	case scanner.TypeText:
		return l.readDelimited(entry)
	default:
		return nil, fmt.Errorf("unsupported structure: %s files cannot be loaded as tables", entry.Type)
	}
}

func (l *Loader) readDelimited(entry scanner.FileEntry) (*Table, error) {
	rules := l.cfg.SchemaFor(entry.Category)
	return readDelimited(entry.Path, rules)
}

// normalize pads or truncates every row to the header width.
func normalize(table *Table) {
	width := len(table.Columns)
	for i, row := range table.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			table.Rows[i] = padded
		case len(row) > width:
			table.Rows[i] = row[:width]
		}
	}
}

// Cell returns the value at (row, column name), or "" when absent.
func (t *Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// ColumnIndex returns the index of a named column, or -1.
func (t *Table) ColumnIndex(column string) int {
	for i, col := range t.Columns {
		if col == column {
			return i
		}
	}
	return -1
}
