package catalog

import (
	"time"

	"kartoteka/internal/registry"
	"kartoteka/internal/scanner"
	"kartoteka/internal/schema"
)

// Run is one recorded scan run with its aggregate counts.
type Run struct {
	ID         string
	DataRoot   string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Valid      int
	Warnings   int
	Invalid    int
	Skipped    int
	Datasets   int
}

// FileRecord is one file's outcome within a run.
type FileRecord struct {
	Category string
	Path     string
	Name     string
	Type     string
	Size     int64
	Status   string
	Detail   string
}

// NewRun builds a Run from a status report.
func NewRun(id, dataRoot string, started, finished time.Time, report registry.Report) Run {
	run := Run{
		ID:         id,
		DataRoot:   dataRoot,
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Datasets:   report.Datasets,
	}
	for _, cat := range report.Categories {
		run.Files += cat.Files
		run.Valid += cat.Valid
		run.Warnings += cat.Warnings
		run.Invalid += cat.Invalid
		run.Skipped += cat.Skipped
	}
	return run
}

// NewFileRecords flattens the inventory and verdicts into rows for persistence,
// preserving scan order.
func NewFileRecords(entries []scanner.FileEntry, verdicts map[string]schema.Verdict) []FileRecord {
	records := make([]FileRecord, 0, len(entries))
	for _, entry := range entries {
		verdict := verdicts[entry.Path]
		detail := verdict.Reason
		if detail == "" && len(verdict.Issues) > 0 {
			detail = verdict.Issues[0]
		}
		records = append(records, FileRecord{
			Category: entry.Category,
			Path:     entry.Path,
			Name:     entry.Name,
			Type:     string(entry.Type),
			Size:     entry.Size,
			Status:   string(verdict.Status),
			Detail:   detail,
		})
	}
	return records
}
