package registry_test

import (
	"errors"
	"testing"

	"kartoteka/internal/config"
	"kartoteka/internal/registry"
	"kartoteka/internal/scanner"
	"kartoteka/internal/schema"
)

func entry(path, name, category string) scanner.FileEntry {
	return scanner.FileEntry{
		Path:     path,
		Name:     name,
		Category: category,
		Type:     scanner.Classify(name),
		Size:     10,
	}
}

func TestBuildReconcilesFormatsIntoOneDataset(t *testing.T) {
	entries := []scanner.FileEntry{
		entry("/d/Mākslu kritika/cleaned_records_2.txt", "cleaned_records_2.txt", config.CategoryCriticism),
		entry("/d/Mākslu kritika/cleaned_records_2.xlsx", "cleaned_records_2.xlsx", config.CategoryCriticism),
	}
	verdicts := map[string]schema.Verdict{
		entries[0].Path: {Status: schema.StatusValid},
		entries[1].Path: {Status: schema.StatusValid},
	}

	reg := registry.Build(entries, verdicts)
	if reg.Len() != 1 {
		t.Fatalf("expected one dataset, got %v", reg.Datasets())
	}

	desc, err := reg.Describe("cleaned_records_2")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if desc.Canonical.Name != "cleaned_records_2.xlsx" {
		t.Fatalf("expected xlsx canonical, got %q", desc.Canonical.Name)
	}
	if len(desc.Alternates) != 1 || desc.Alternates[0].Name != "cleaned_records_2.txt" {
		t.Fatalf("expected txt alternate, got %+v", desc.Alternates)
	}
}

func TestLogicalNameNormalization(t *testing.T) {
	cases := map[string]string{
		"Cleaned_Records_2.xlsx": "cleaned_records_2",
		"  Lietojums  2023 .csv": "lietojums 2023",
		"bez-paplasinajuma":      "bez-paplasinajuma",
	}
	for in, want := range cases {
		if got := registry.LogicalName(in); got != want {
			t.Errorf("LogicalName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDescribeUnknownDataset(t *testing.T) {
	reg := registry.Build(nil, nil)

	_, err := reg.Describe("nonexistent")
	var unknown *registry.UnknownDatasetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownDatasetError, got %v", err)
	}
	if unknown.Name != "nonexistent" {
		t.Fatalf("error should carry the name, got %q", unknown.Name)
	}
}

func TestCrossCategoryNameCollisionDisambiguates(t *testing.T) {
	entries := []scanner.FileEntry{
		entry("/d/u/statistika.csv", "statistika.csv", config.CategoryUsage),
		entry("/d/s/statistika.csv", "statistika.csv", config.CategoryContent),
	}
	verdicts := map[string]schema.Verdict{
		entries[0].Path: {Status: schema.StatusValid},
		entries[1].Path: {Status: schema.StatusValid},
	}

	reg := registry.Build(entries, verdicts)
	names := reg.Datasets()
	if len(names) != 2 {
		t.Fatalf("expected two datasets, got %v", names)
	}
	for _, name := range names {
		if name != "usage/statistika" && name != "content/statistika" {
			t.Fatalf("expected category-qualified names, got %v", names)
		}
	}
}

func TestStatusReportDeterministic(t *testing.T) {
	entries := []scanner.FileEntry{
		entry("/d/u/a.csv", "a.csv", config.CategoryUsage),
		entry("/d/u/b.pdf", "b.pdf", config.CategoryUsage),
		entry("/d/k/c.txt", "c.txt", config.CategoryCriticism),
	}
	verdicts := map[string]schema.Verdict{
		"/d/u/a.csv": {Status: schema.StatusWarnings, Issues: []string{"encoding guessed as windows-1257"}},
		"/d/u/b.pdf": {Status: schema.StatusSkipped},
		"/d/k/c.txt": {Status: schema.StatusInvalid, Reason: "empty file"},
	}

	first := registry.Build(entries, verdicts).StatusReport()
	second := registry.Build(entries, verdicts).StatusReport()

	if first.String() != second.String() {
		t.Fatalf("report not byte-identical:\n%q\n%q", first.String(), second.String())
	}

	usage := first.Categories[0]
	if usage.Key != config.CategoryUsage || usage.Files != 2 || usage.Warnings != 1 || usage.Skipped != 1 {
		t.Fatalf("unexpected usage report: %+v", usage)
	}
	criticism := first.Categories[2]
	if criticism.Invalid != 1 {
		t.Fatalf("unexpected criticism report: %+v", criticism)
	}
	if first.Datasets != 3 {
		t.Fatalf("unexpected dataset count: %d", first.Datasets)
	}
}
