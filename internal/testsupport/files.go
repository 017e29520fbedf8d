package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Category folder names mirrored here so fixtures do not depend on the
// resolver package under test.
const (
	FolderUsage     = "Digitālās bibliotēkas lietojums"
	FolderContent   = "Digitālās bibliotēkas saturs"
	FolderCriticism = "Mākslu kritika"
)

// NewDataRoot creates a dataset root with the three empty category folders and
// returns its path.
func NewDataRoot(t testing.TB) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "data")
	for _, folder := range []string{FolderUsage, FolderContent, FolderCriticism} {
		if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", folder, err)
		}
	}
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCSV writes rows as a delimited file. Fields are joined naively; fixture
// values must not contain the delimiter.
func WriteCSV(t testing.TB, path string, delimiter string, rows ...[]string) {
	t.Helper()

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, delimiter))
		sb.WriteByte('\n')
	}
	WriteFile(t, path, sb.String())
}

// WriteXLSX writes rows to Sheet1 of a new workbook at path.
func WriteXLSX(t testing.TB, path string, rows ...[]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := book.SetSheetRow("Sheet1", cell, &values); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save xlsx %s: %v", path, err)
	}
}
