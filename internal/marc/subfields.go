package marc

import (
	"regexp"
	"sort"
	"strings"

	"kartoteka/internal/loader"
)

// subfieldPattern matches $$ followed by a single code character and the
// content up to the next $$.
var subfieldPattern = regexp.MustCompile(`\$\$([a-z0-9])([^$]*)`)

// ParseSubfields extracts MARC subfields from a $$-delimited cell. Empty
// content after trimming is dropped. Repeated codes keep the last occurrence.
func ParseSubfields(text string) map[string]string {
	if text == "" || text == "NA" {
		return nil
	}
	matches := subfieldPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	result := make(map[string]string, len(matches))
	for _, match := range matches {
		if content := strings.TrimSpace(match[2]); content != "" {
			result[match[1]] = content
		}
	}
	return result
}

// ExpandColumn appends one "<column>_<code>" column per subfield code found
// anywhere in the named column. Missing source columns are a no-op; the raw
// exports are inconsistent about which MARC fields they carry.
func ExpandColumn(table *loader.Table, column string) {
	src := table.ColumnIndex(column)
	if src < 0 {
		return
	}

	parsed := make([]map[string]string, len(table.Rows))
	codes := make(map[string]struct{})
	for i, row := range table.Rows {
		parsed[i] = ParseSubfields(row[src])
		for code := range parsed[i] {
			codes[code] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	for _, code := range sorted {
		table.Columns = append(table.Columns, column+"_"+code)
		for i := range table.Rows {
			table.Rows[i] = append(table.Rows[i], parsed[i][code])
		}
	}
}
