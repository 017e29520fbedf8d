package scanner_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"kartoteka/internal/config"
	"kartoteka/internal/dataroot"
	"kartoteka/internal/logging"
	"kartoteka/internal/scanner"
	"kartoteka/internal/testsupport"
)

func TestClassify(t *testing.T) {
	cases := map[string]scanner.Type{
		"lietojums.csv":         scanner.TypeTabular,
		"saturs.XLSX":           scanner.TypeTabular,
		"cleaned_records_2.txt": scanner.TypeText,
		"apraksts.docx":         scanner.TypeDocument,
		"piezimes.pdf":          scanner.TypeUnknown,
		"bez-paplasinajuma":     scanner.TypeUnknown,
	}
	for name, want := range cases {
		if got := scanner.Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestScanCategorySortedAndComplete(t *testing.T) {
	root := testsupport.NewDataRoot(t)
	dir := filepath.Join(root, dataroot.FolderUsage)
	testsupport.WriteFile(t, filepath.Join(dir, "b.csv"), "a;b\n")
	testsupport.WriteFile(t, filepath.Join(dir, "a.txt"), "x\n")
	testsupport.WriteFile(t, filepath.Join(dir, "sub", "c.pdf"), "pdf")
	testsupport.WriteFile(t, filepath.Join(dir, ".hidden"), "no")

	resolved, err := dataroot.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	category, _ := resolved.Category(config.CategoryUsage)

	entries, err := scanner.ScanCategory(context.Background(), category)
	if err != nil {
		t.Fatalf("ScanCategory: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
		if e.Category != config.CategoryUsage {
			t.Errorf("entry %q has category %q", e.Name, e.Category)
		}
	}
	want := []string{"a.txt", "b.csv", "c.pdf"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected entries: %v, want %v", names, want)
	}

	// A .pdf classifies as unknown but the scan still completes.
	if entries[2].Type != scanner.TypeUnknown {
		t.Fatalf("expected unknown type for c.pdf, got %q", entries[2].Type)
	}
}

func TestScanAllDeterministicAcrossWorkerCounts(t *testing.T) {
	root := testsupport.NewDataRoot(t)
	testsupport.WriteFile(t, filepath.Join(root, dataroot.FolderUsage, "logs.csv"), "a\n")
	testsupport.WriteFile(t, filepath.Join(root, dataroot.FolderContent, "saturs.xlsx"), "zz")
	testsupport.WriteFile(t, filepath.Join(root, dataroot.FolderCriticism, "recs.txt"), "x\n")

	resolved, err := dataroot.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	sequential, err := scanner.ScanAll(context.Background(), resolved, 1, logging.NewNop())
	if err != nil {
		t.Fatalf("ScanAll workers=1: %v", err)
	}
	parallel, err := scanner.ScanAll(context.Background(), resolved, 3, logging.NewNop())
	if err != nil {
		t.Fatalf("ScanAll workers=3: %v", err)
	}

	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("inventory differs across worker counts:\n%v\n%v", sequential, parallel)
	}
	if len(sequential) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sequential))
	}
	if sequential[0].Category != config.CategoryUsage || sequential[2].Category != config.CategoryCriticism {
		t.Fatalf("expected category order usage..criticism, got %v", sequential)
	}
}

func TestScanAllCancelled(t *testing.T) {
	root := testsupport.NewDataRoot(t)
	testsupport.WriteFile(t, filepath.Join(root, dataroot.FolderUsage, "a.csv"), "a\n")

	resolved, err := dataroot.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = scanner.ScanAll(ctx, resolved, 2, logging.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
