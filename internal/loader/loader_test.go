package loader_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"kartoteka/internal/config"
	"kartoteka/internal/loader"
	"kartoteka/internal/logging"
	"kartoteka/internal/registry"
	"kartoteka/internal/scanner"
	"kartoteka/internal/testsupport"
)

func descriptorFor(t *testing.T, path, category string) *registry.Descriptor {
	t.Helper()
	name := filepath.Base(path)
	entry := scanner.FileEntry{
		Path:     path,
		Name:     name,
		Category: category,
		Type:     scanner.Classify(name),
	}
	return &registry.Descriptor{
		Name:      registry.LogicalName(name),
		Category:  category,
		Canonical: entry,
	}
}

func TestLoadCSV(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "lietojums.csv")
	testsupport.WriteCSV(t, path, ";",
		[]string{"lietotajs", "datums", "objekts"},
		[]string{"u1", "2024-01-02", "periodika"},
		[]string{"u2", "2024-01-03"},
	)

	table, err := loader.New(cfg, logging.NewNop()).Load(context.Background(), descriptorFor(t, path, config.CategoryUsage))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "lietotajs" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("unexpected row count: %d", len(table.Rows))
	}
	// Short rows are padded to the header width.
	if len(table.Rows[1]) != 3 || table.Rows[1][2] != "" {
		t.Fatalf("expected padded row, got %v", table.Rows[1])
	}
	if table.Cell(0, "objekts") != "periodika" {
		t.Fatalf("unexpected cell: %q", table.Cell(0, "objekts"))
	}
}

func TestLoadXLSX(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "saturs.xlsx")
	testsupport.WriteXLSX(t, path,
		[]string{"Nosaukums", "Gads"},
		[]string{"Avīze", "1925"},
	)

	table, err := loader.New(cfg, logging.NewNop()).Load(context.Background(), descriptorFor(t, path, config.CategoryContent))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Cell(0, "Nosaukums") != "Avīze" {
		t.Fatalf("unexpected cell: %q", table.Cell(0, "Nosaukums"))
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "eksports.csv")
	testsupport.WriteFile(t, path, "\uFEFFdatums;skatijumi\n2024-01-01;10\n")

	table, err := loader.New(cfg, logging.NewNop()).Load(context.Background(), descriptorFor(t, path, config.CategoryUsage))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Columns[0] != "datums" {
		t.Fatalf("expected BOM stripped from first column, got %q", table.Columns[0])
	}
}

func TestLoadWindows1257Text(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	content := "žanrs;autors\ndzeja;Aspazija\n"
	encoded, err := charmap.Windows1257.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "vecie.txt")
	testsupport.WriteFile(t, path, encoded)

	table, err := loader.New(cfg, logging.NewNop()).Load(context.Background(), descriptorFor(t, path, config.CategoryCriticism))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Columns[0] != "žanrs" {
		t.Fatalf("expected decoded header, got %q", table.Columns[0])
	}
}

func TestLoadCachesByIdentity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "stabils.csv")
	testsupport.WriteCSV(t, path, ";", []string{"a"}, []string{"1"})

	l := loader.New(cfg, logging.NewNop())
	desc := descriptorFor(t, path, config.CategoryUsage)

	first, err := l.Load(context.Background(), desc)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := l.Load(context.Background(), desc)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatal("expected identical cached table pointer")
	}
}

func TestLoadFailureLeavesCacheIntact(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "labs.csv")
	testsupport.WriteCSV(t, good, ";", []string{"a"}, []string{"1"})

	l := loader.New(cfg, logging.NewNop())
	goodDesc := descriptorFor(t, good, config.CategoryUsage)
	loaded, err := l.Load(context.Background(), goodDesc)
	if err != nil {
		t.Fatalf("load good: %v", err)
	}

	badDesc := descriptorFor(t, filepath.Join(dir, "nav.csv"), config.CategoryUsage)
	_, err = l.Load(context.Background(), badDesc)
	var loadErr *loader.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Dataset != "nav" {
		t.Fatalf("LoadError should name the dataset: %+v", loadErr)
	}

	again, err := l.Load(context.Background(), goodDesc)
	if err != nil || again != loaded {
		t.Fatalf("good dataset disturbed by failed load: %v", err)
	}
}

func TestLoadDocumentUnsupported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "apraksts.docx")
	testsupport.WriteFile(t, path, "doc")

	_, err := loader.New(cfg, logging.NewNop()).Load(context.Background(), descriptorFor(t, path, config.CategoryContent))
	var loadErr *loader.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError for document, got %v", err)
	}
}
