package schema_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"kartoteka/internal/config"
	"kartoteka/internal/logging"
	"kartoteka/internal/scanner"
	"kartoteka/internal/schema"
	"kartoteka/internal/testsupport"
)

func entryFor(path, category string) scanner.FileEntry {
	return scanner.FileEntry{
		Path:     path,
		Name:     filepath.Base(path),
		Category: category,
		Type:     scanner.Classify(filepath.Base(path)),
	}
}

func TestValidateHeaderWithRequiredColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSchema(config.CategoryCriticism, config.Schema{
		RequiredColumns: []string{"AUTORS (100)", "RAKSTA NOSAUKUMS (245)"},
		Delimiter:       ";",
	}))
	path := filepath.Join(t.TempDir(), "records.csv")
	testsupport.WriteFile(t, path, "AUTORS (100);RAKSTA NOSAUKUMS (245);AVOTA NOSAUKUMS (773)\nrow;row;row\n")

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryCriticism))
	if verdict.Status != schema.StatusValid {
		t.Fatalf("expected valid, got %+v", verdict)
	}
	if verdict.Delimiter != ";" || verdict.Encoding != "utf-8" {
		t.Fatalf("unexpected shape: %+v", verdict)
	}
	if len(verdict.Columns) != 3 {
		t.Fatalf("unexpected columns: %v", verdict.Columns)
	}
}

func TestValidateMissingRequiredColumnIsInvalid(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSchema(config.CategoryUsage, config.Schema{
		RequiredColumns: []string{"lietotajs", "datums"},
	}))
	path := filepath.Join(t.TempDir(), "logs.csv")
	testsupport.WriteFile(t, path, "lietotajs;cits\n1;2\n")

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryUsage))
	if verdict.Status != schema.StatusInvalid {
		t.Fatalf("expected invalid, got %+v", verdict)
	}
	if verdict.Reason == "" || verdict.Reason != "missing required columns: datums" {
		t.Fatalf("reason should name the column: %q", verdict.Reason)
	}
}

func TestValidateEmptyFileIsInvalid(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "empty.csv")
	testsupport.WriteFile(t, path, "")

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryUsage))
	if verdict.Status != schema.StatusInvalid || verdict.Reason != "empty file" {
		t.Fatalf("expected empty-file invalid, got %+v", verdict)
	}
}

func TestValidateDocumentIsSkipped(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	verdict := schema.New(cfg, logging.NewNop()).Validate(scanner.FileEntry{
		Path: "/nonexistent/apraksts.docx", Name: "apraksts.docx",
		Category: config.CategoryContent, Type: scanner.TypeDocument,
	})
	// Documents are never opened, so even a missing path yields skipped.
	if verdict.Status != schema.StatusSkipped {
		t.Fatalf("expected skipped, got %+v", verdict)
	}
}

func TestValidateGuessesWindows1257(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	header := "Mākslu žanrs;Autors\n"
	encoded, err := charmap.Windows1257.NewEncoder().String(header)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "vecie.csv")
	testsupport.WriteFile(t, path, encoded)

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryCriticism))
	if verdict.Status != schema.StatusWarnings {
		t.Fatalf("expected warnings for guessed encoding, got %+v", verdict)
	}
	if verdict.Encoding != "windows-1257" {
		t.Fatalf("expected windows-1257 guess, got %q", verdict.Encoding)
	}
	if verdict.Columns[0] != "Mākslu žanrs" {
		t.Fatalf("expected decoded column, got %q", verdict.Columns[0])
	}
}

func TestValidateConfiguredUTF8RejectsBadBytes(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSchema(config.CategoryCriticism, config.Schema{
		Encoding: "utf-8",
	}))
	path := filepath.Join(t.TempDir(), "bad.csv")
	testsupport.WriteFile(t, path, "kolonna\xe2;cita\n")

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryCriticism))
	if verdict.Status != schema.StatusInvalid {
		t.Fatalf("expected invalid for bad UTF-8, got %+v", verdict)
	}
}

func TestValidateXLSXHeader(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSchema(config.CategoryContent, config.Schema{
		RequiredColumns: []string{"Nosaukums"},
	}))
	path := filepath.Join(t.TempDir(), "saturs.xlsx")
	testsupport.WriteXLSX(t, path,
		[]string{"Nosaukums", "Gads"},
		[]string{"Avīze", "1925"},
	)

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryContent))
	if verdict.Status != schema.StatusValid {
		t.Fatalf("expected valid workbook, got %+v", verdict)
	}
	if len(verdict.Columns) != 2 || verdict.Columns[0] != "Nosaukums" {
		t.Fatalf("unexpected columns: %v", verdict.Columns)
	}
}

func TestValidateCorruptXLSXIsInvalidNotFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "corrupt.xlsx")
	testsupport.WriteFile(t, path, "this is not a zip archive")

	verdict := schema.New(cfg, logging.NewNop()).Validate(entryFor(path, config.CategoryContent))
	if verdict.Status != schema.StatusInvalid {
		t.Fatalf("expected invalid for corrupt workbook, got %+v", verdict)
	}
}

func TestValidateAllStopsBetweenFilesOnCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	validator := schema.New(cfg, logging.NewNop())

	dir := t.TempDir()
	var entries []scanner.FileEntry
	for _, name := range []string{"a.csv", "b.csv"} {
		path := filepath.Join(dir, name)
		testsupport.WriteFile(t, path, "x;y\n")
		entries = append(entries, entryFor(path, config.CategoryUsage))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verdicts, err := validator.ValidateAll(ctx, entries)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(verdicts) != 0 {
		t.Fatalf("expected no verdicts after immediate cancel, got %d", len(verdicts))
	}
}

func TestValidateAllIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	validator := schema.New(cfg, logging.NewNop())

	path := filepath.Join(t.TempDir(), "stable.csv")
	testsupport.WriteFile(t, path, "a;b;b\n1;2;3\n")
	entries := []scanner.FileEntry{entryFor(path, config.CategoryUsage)}

	first, err := validator.ValidateAll(context.Background(), entries)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := validator.ValidateAll(context.Background(), entries)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	fv, sv := first[path], second[path]
	if fv.Status != schema.StatusWarnings || sv.Status != schema.StatusWarnings {
		t.Fatalf("expected duplicate-column warnings, got %+v / %+v", fv, sv)
	}
	if len(fv.Issues) != len(sv.Issues) || fv.Issues[0] != sv.Issues[0] {
		t.Fatalf("verdicts differ across runs: %+v vs %+v", fv, sv)
	}
}
