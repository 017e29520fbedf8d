package registry

import (
	"fmt"
	"strings"

	"kartoteka/internal/config"
	"kartoteka/internal/schema"
)

// CategoryReport summarizes one category's scan outcome.
type CategoryReport struct {
	Key      string
	Files    int
	Valid    int
	Warnings int
	Invalid  int
	Skipped  int
	Datasets int
}

// Report is the externally consumed summary of a scan run. Its construction
// and String rendering are deterministic for a fixed filesystem snapshot.
type Report struct {
	Categories []CategoryReport
	Datasets   int
}

// StatusReport aggregates per-category verdict counts in the fixed category
// order.
func (r *Registry) StatusReport() Report {
	report := Report{Datasets: len(r.names)}

	datasetsPerCategory := make(map[string]int)
	for _, name := range r.names {
		datasetsPerCategory[r.byName[name].Category]++
	}

	for _, key := range config.CategoryKeys() {
		cat := CategoryReport{Key: key, Datasets: datasetsPerCategory[key]}
		for _, file := range r.fileReports[key] {
			cat.Files++
			switch file.Verdict.Status {
			case schema.StatusValid:
				cat.Valid++
			case schema.StatusWarnings:
				cat.Warnings++
			case schema.StatusInvalid:
				cat.Invalid++
			default:
				cat.Skipped++
			}
		}
		report.Categories = append(report.Categories, cat)
	}
	return report
}

// FileReports returns the per-file outcomes for one category, in scan order.
func (r *Registry) FileReports(key string) []FileReport {
	reports := r.fileReports[key]
	out := make([]FileReport, len(reports))
	copy(out, reports)
	return out
}

// String renders the report as stable plain text, one line per category.
func (rep Report) String() string {
	var sb strings.Builder
	for _, cat := range rep.Categories {
		fmt.Fprintf(&sb, "%s: files=%d valid=%d warnings=%d invalid=%d skipped=%d datasets=%d\n",
			cat.Key, cat.Files, cat.Valid, cat.Warnings, cat.Invalid, cat.Skipped, cat.Datasets)
	}
	fmt.Fprintf(&sb, "total datasets: %d\n", rep.Datasets)
	return sb.String()
}
