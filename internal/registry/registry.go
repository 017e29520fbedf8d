// Package registry groups validated file entries into a catalog of logical
// datasets. A logical dataset is the format-independent unit: the same records
// exported as both .txt and .xlsx form one dataset with one canonical source
// and the other representations kept as alternates.
//
// A registry is built once per run and read-only afterward.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"kartoteka/internal/scanner"
	"kartoteka/internal/schema"
)

// Descriptor is one named, validated, queryable dataset.
type Descriptor struct {
	// Name is the logical dataset name (normalized filename stem).
	Name string
	// Category is the category key the dataset belongs to.
	Category string
	// Canonical is the preferred source file for loading.
	Canonical scanner.FileEntry
	// Verdict is the canonical source's validation verdict.
	Verdict schema.Verdict
	// Alternates are other representations of the same dataset, ordered by
	// descending preference.
	Alternates []scanner.FileEntry
}

// UnknownDatasetError reports a Describe call for a name that was never
// registered.
type UnknownDatasetError struct {
	Name string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset %q", e.Name)
}

// Registry is the immutable run-scoped dataset catalog.
type Registry struct {
	names       []string
	byName      map[string]*Descriptor
	fileReports map[string][]FileReport
}

// FileReport is one file's outcome in the status report.
type FileReport struct {
	Entry   scanner.FileEntry
	Verdict schema.Verdict
}

// Build groups entries by logical name within each category and picks a
// canonical representation per dataset. The result is deterministic for a
// fixed inventory: names are sorted, alternates ordered by preference then
// path.
func Build(entries []scanner.FileEntry, verdicts map[string]schema.Verdict) *Registry {
	groups := make(map[string][]scanner.FileEntry)
	order := make(map[string]string) // group key -> display name

	for _, entry := range entries {
		logical := LogicalName(entry.Name)
		key := entry.Category + "/" + logical
		groups[key] = append(groups[key], entry)
		order[key] = logical
	}

	// Display names are the bare logical name unless it appears in more than
	// one category, in which case the category key disambiguates.
	nameCounts := make(map[string]int)
	for key := range groups {
		nameCounts[order[key]]++
	}

	reg := &Registry{
		byName:      make(map[string]*Descriptor, len(groups)),
		fileReports: make(map[string][]FileReport),
	}

	for key, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			pi, pj := preference(group[i]), preference(group[j])
			if pi != pj {
				return pi < pj
			}
			return group[i].Path < group[j].Path
		})

		name := order[key]
		if nameCounts[name] > 1 {
			name = key
		}

		canonical := group[0]
		desc := &Descriptor{
			Name:       name,
			Category:   canonical.Category,
			Canonical:  canonical,
			Verdict:    verdicts[canonical.Path],
			Alternates: group[1:],
		}
		reg.byName[name] = desc
		reg.names = append(reg.names, name)
	}
	sort.Strings(reg.names)

	for _, entry := range entries {
		reg.fileReports[entry.Category] = append(reg.fileReports[entry.Category], FileReport{
			Entry:   entry,
			Verdict: verdicts[entry.Path],
		})
	}

	return reg
}

// LogicalName normalizes a file name to its format-independent dataset name:
// the stem with surrounding whitespace trimmed, internal runs of whitespace
// collapsed, lowercased.
func LogicalName(fileName string) string {
	stem := fileName
	if idx := strings.LastIndexByte(fileName, '.'); idx > 0 {
		stem = fileName[:idx]
	}
	return strings.ToLower(strings.Join(strings.Fields(stem), " "))
}

// preference orders representations for canonical selection. Lower is better.
func preference(entry scanner.FileEntry) int {
	switch strings.ToLower(entry.Name[strings.LastIndexByte(entry.Name, '.')+1:]) {
	case "xlsx":
		return 0
	case "csv":
		return 1
	case "txt":
		return 2
	case "docx":
		return 3
	default:
		return 4
	}
}

// Datasets returns all logical dataset names in sorted order.
func (r *Registry) Datasets() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Describe returns the descriptor for a logical dataset name.
func (r *Registry) Describe(name string) (*Descriptor, error) {
	desc, ok := r.byName[name]
	if !ok {
		return nil, &UnknownDatasetError{Name: name}
	}
	return desc, nil
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int { return len(r.names) }
