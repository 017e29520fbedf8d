package marc

import (
	"fmt"
	"sort"
	"strings"

	"kartoteka/internal/loader"
)

// Columns dropped outright from the wide export.
var columnsToRemove = []string{
	"UDK (080)",
	"UDK - 2 (080)",
	"ILUSTRĀCIJAS (300)",
	"SATURA VEIDS (336)",
	"SATURA VEIDS 2 (336)",
	"BIBLIOGRĀFIJA (504)",
}

// MARC fields whose $$-packed cells get expanded into subfield columns.
var keyColumns = []string{
	"AUTORS (100)",
	"RAKSTA NOSAUKUMS (245)",
	"PRIEKŠMETS - TEMATS (650)",
	"PRIEKŠMETS - ŽANRS (655)",
	"RECENZĒTAIS IZDEVUMS (787)",
	"RECENZĒTAIS IZDEVUMS (500)",
	"RECENZĒTĀ FILMA VAI IZRĀDE (630)",
	"AVOTA NOSAUKUMS (773)",
	"ELEKTRONISKĀ ADRESE (856)",
	"PAPILDRAKSTS (700)",
	"PAPILDRAKSTS - 2 (700)",
	"NEKONTROLĒTS PERSONAS VĀRDS (720)",
	"NEKONTROLĒTS PERSONAS VĀRDS - 2 (720)",
	"NEKONTROLĒTS PERSONAS VĀRDS - 3 (720)",
	"NEKONTROLĒTS PERSONAS VĀRDS - 4 (720)",
	"NEKONTROLĒTS PERSONAS VĀRDS - 5 (720)",
	"PRIEKŠMETS - INSTITŪCIJA (610)",
}

// authorTypes are the 100_4 relator codes kept for analysis.
var authorTypes = map[string]struct{}{"aut": {}, "rev": {}}

// Filter reasons recorded on rows that fall out of the pipeline.
const (
	reasonAuthorType = "Author type not 'aut' or 'rev'"
	reasonNotReview  = "Not a review, book review, or history/criticism"
)

// finalProcessedColumns is the ordered set of subfield columns the cleaned
// output starts with, when present in the expanded data.
var finalProcessedColumns = []string{
	"AUTORS (100)_4",
	"AUTORS (100)_a",
	"AUTORS (100)_c",
	"AUTORS (100)_d",
	"PAPILDRAKSTS (700)_4",
	"PAPILDRAKSTS (700)_a",
	"PAPILDRAKSTS (700)_c",
	"PAPILDRAKSTS (700)_d",
	"PAPILDRAKSTS - 2 (700)_4",
	"PAPILDRAKSTS - 2 (700)_a",
	"PAPILDRAKSTS - 2 (700)_c",
	"PAPILDRAKSTS - 2 (700)_d",
	"RAKSTA NOSAUKUMS (245)_a",
	"RAKSTA NOSAUKUMS (245)_b",
	"RAKSTA NOSAUKUMS (245)_c",
	"RECENZĒTAIS IZDEVUMS (787)_a",
	"RECENZĒTAIS IZDEVUMS (787)_t",
	"RECENZĒTAIS IZDEVUMS (787)_d",
	"RECENZĒTAIS IZDEVUMS (500)_a",
	"RECENZĒTĀ FILMA VAI IZRĀDE (630)_a",
	"RECENZĒTĀ FILMA VAI IZRĀDE (630)_g",
	"RECENZĒTĀ FILMA VAI IZRĀDE (630)_f",
	"AVOTA NOSAUKUMS (773)_t",
	"AVOTA NOSAUKUMS (773)_g",
	"ELEKTRONISKĀ ADRESE (856)_u",
	"PRIEKŠMETS - TEMATS (650)_a",
	"PRIEKŠMETS - ŽANRS (655)_a",
	"PRIEKŠMETS - ŽANRS (655)_x",
	"PRIEKŠMETS - INSTITŪCIJA (610)_a",
	"PRIEKŠMETS - INSTITŪCIJA (610)_g",
}

// personColumns are the _a name columns flipped to "Name Surname" and merged
// into visas_personas.
var personColumns = []string{
	"AUTORS (100)_a",
	"PAPILDRAKSTS (700)_a",
	"PAPILDRAKSTS - 2 (700)_a",
	"NEKONTROLĒTS PERSONAS VĀRDS (720)_a",
	"NEKONTROLĒTS PERSONAS VĀRDS - 2 (720)_a",
	"NEKONTROLĒTS PERSONAS VĀRDS - 3 (720)_a",
	"NEKONTROLĒTS PERSONAS VĀRDS - 4 (720)_a",
	"NEKONTROLĒTS PERSONAS VĀRDS - 5 (720)_a",
}

func uncontrolledNameColumns() []string {
	subfields := []string{"_4", "_a", "_c", "_d"}
	var columns []string
	for i := 1; i <= 5; i++ {
		suffix := ""
		if i > 1 {
			suffix = fmt.Sprintf(" - %d", i)
		}
		base := fmt.Sprintf("NEKONTROLĒTS PERSONAS VĀRDS%s (720)", suffix)
		for _, sub := range subfields {
			columns = append(columns, base+sub)
		}
	}
	return columns
}

// Stats summarizes one cleaning run.
type Stats struct {
	Input            int
	FilteredByAuthor int
	FilteredByReview int
	Kept             int
}

// Result holds the cleaned table, the filtered-out rows (with a filter_reason
// column) and the run stats.
type Result struct {
	Clean       *loader.Table
	FilteredOut *loader.Table
	Stats       Stats
}

// Clean runs the full pipeline on the wide export. keepOtherColumns carries
// the unprocessed source columns through to the output, after the processed
// ones.
func Clean(input *loader.Table, keepOtherColumns bool) (*Result, error) {
	table := cloneTable(input)
	dropColumns(table, columnsToRemove)

	isKey := make(map[string]struct{}, len(keyColumns))
	for _, col := range keyColumns {
		isKey[col] = struct{}{}
	}

	var keepColumns []string
	for _, col := range table.Columns {
		if _, ok := isKey[col]; !ok {
			keepColumns = append(keepColumns, col)
		}
	}
	sort.Strings(keepColumns)

	for _, col := range keyColumns {
		ExpandColumn(table, col)
	}

	finalColumns := append([]string{}, finalProcessedColumns...)
	finalColumns = append(finalColumns, uncontrolledNameColumns()...)
	if keepOtherColumns {
		finalColumns = append(finalColumns, keepColumns...)
	}
	working := selectColumns(table, finalColumns)

	if working.ColumnIndex("AUTORS (100)_4") < 0 {
		return nil, fmt.Errorf("input has no AUTORS (100) subfields; is this the wide criticism export?")
	}

	stats := Stats{Input: len(working.Rows)}
	filteredOut := &loader.Table{Columns: append(append([]string{}, working.Columns...), "filter_reason")}
	var kept [][]string
	// The filtered-out file lists all author-type rejections first, then the
	// non-review rejections, regardless of source order.
	var byAuthor, byReview [][]string

	authorIdx := working.ColumnIndex("AUTORS (100)_4")
	genreIdx := working.ColumnIndex("PRIEKŠMETS - ŽANRS (655)_a")
	broaderIdx := working.ColumnIndex("PRIEKŠMETS - ŽANRS (655)_x")

	for _, row := range working.Rows {
		if _, ok := authorTypes[row[authorIdx]]; !ok {
			stats.FilteredByAuthor++
			byAuthor = append(byAuthor, append(append([]string{}, row...), reasonAuthorType))
			continue
		}
		if !isReview(cell(row, genreIdx), cell(row, broaderIdx)) {
			stats.FilteredByReview++
			byReview = append(byReview, append(append([]string{}, row...), reasonNotReview))
			continue
		}
		kept = append(kept, row)
	}
	filteredOut.Rows = append(byAuthor, byReview...)
	working.Rows = kept
	stats.Kept = len(kept)

	harmonize(working)

	return &Result{Clean: working, FilteredOut: filteredOut, Stats: stats}, nil
}

func isReview(genre, broader string) bool {
	genreLower := strings.ToLower(genre)
	return strings.Contains(genreLower, "recenzija") ||
		strings.Contains(genreLower, "grāmatu apskati") ||
		strings.Contains(strings.ToLower(broader), "vēsture un kritika")
}

// harmonize applies the per-row transformations and appends the derived
// columns. Order matters: the combined 245_ab column uses the title before
// its trailing colon is stripped, mirroring the established outputs.
func harmonize(table *loader.Table) {
	for _, col := range personColumns {
		applyColumn(table, col, FlipName)
	}

	visasPersonas := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		var persons []string
		for _, col := range personColumns {
			if idx := table.ColumnIndex(col); idx >= 0 && row[idx] != "" {
				persons = append(persons, row[idx])
			}
		}
		visasPersonas[i] = strings.Join(persons, "; ")
	}

	titleIdx := table.ColumnIndex("RAKSTA NOSAUKUMS (245)_a")
	subtitleIdx := table.ColumnIndex("RAKSTA NOSAUKUMS (245)_b")
	combined := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		combined[i] = strings.TrimSpace(cell(row, titleIdx) + " " + cell(row, subtitleIdx))
	}

	applyColumn(table, "PRIEKŠMETS - ŽANRS (655)_a", stripDots)
	applyColumn(table, "PRIEKŠMETS - INSTITŪCIJA (610)_a", stripDots)
	applyColumn(table, "RAKSTA NOSAUKUMS (245)_a", func(s string) string {
		return strings.TrimSpace(strings.TrimRight(s, ": /"))
	})
	applyColumn(table, "PRIEKŠMETS - INSTITŪCIJA (610)_a", func(s string) string {
		if s == "Latvijas Nacionālā opera" {
			return "Latvijas Nacionālā opera un balets"
		}
		return s
	})

	issue500Idx := table.ColumnIndex("RECENZĒTAIS IZDEVUMS (500)_a")
	author787Idx := table.ColumnIndex("RECENZĒTAIS IZDEVUMS (787)_a")
	title787Idx := table.ColumnIndex("RECENZĒTAIS IZDEVUMS (787)_t")
	publisher787Idx := table.ColumnIndex("RECENZĒTAIS IZDEVUMS (787)_d")
	film630Idx := table.ColumnIndex("RECENZĒTĀ FILMA VAI IZRĀDE (630)_a")
	institutionIdx := table.ColumnIndex("PRIEKŠMETS - INSTITŪCIJA (610)_a")
	genreIdx := table.ColumnIndex("PRIEKŠMETS - ŽANRS (655)_a")

	authors := make([]string, len(table.Rows))
	works := make([]string, len(table.Rows))
	publishers := make([]string, len(table.Rows))
	reviewTypes := make([]string, len(table.Rows))

	for i, row := range table.Rows {
		subtitle := cell(row, subtitleIdx)
		note500 := cell(row, issue500Idx)

		// The 787 linking field wins; the free-text 500 note is the fallback,
		// and film/performance credits from 245/630 fill remaining gaps.
		author := firstNonEmpty(FlipName(cell(row, author787Idx)), ExtractAuthor500(note500))
		work := firstNonEmpty(cell(row, title787Idx), ExtractTitle500(note500))
		publisher := firstNonEmpty(cell(row, publisher787Idx), ExtractPublisher500(note500))

		authors[i] = firstNonEmpty(author, ExtractDirector(subtitle))
		works[i] = firstNonEmpty(work, ExtractQuotedTitle(subtitle), cell(row, film630Idx))
		if idx := strings.IndexByte(works[i], ':'); idx >= 0 {
			works[i] = strings.TrimSpace(works[i][:idx])
		}

		publishers[i] = firstNonEmpty(publisher, cell(row, institutionIdx))
		if strings.Contains(publishers[i], ":") {
			after := strings.SplitN(publishers[i], ":", 2)[1]
			publishers[i] = strings.TrimSpace(strings.SplitN(after, ",", 2)[0])
		}

		reviewTypes[i] = ReviewType(cell(row, genreIdx))
	}

	appendColumn(table, "visas_personas", visasPersonas)
	appendColumn(table, "RAKSTA NOSAUKUMS (245)_ab", combined)
	appendColumn(table, "recenzeta_darba_autors", authors)
	appendColumn(table, "recenzetais_darbs", works)
	appendColumn(table, "publicetajs_vai_institucija", publishers)
	appendColumn(table, "recenzijas_tips", reviewTypes)
}

func stripDots(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ".", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func applyColumn(table *loader.Table, column string, fn func(string) string) {
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range table.Rows {
		if row[idx] != "" {
			row[idx] = fn(row[idx])
		}
	}
}

func appendColumn(table *loader.Table, name string, values []string) {
	table.Columns = append(table.Columns, name)
	for i := range table.Rows {
		table.Rows[i] = append(table.Rows[i], values[i])
	}
}

func cloneTable(t *loader.Table) *loader.Table {
	clone := &loader.Table{Columns: append([]string{}, t.Columns...)}
	clone.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		clone.Rows[i] = append([]string{}, row...)
	}
	return clone
}

func dropColumns(table *loader.Table, names []string) {
	drop := make(map[int]struct{}, len(names))
	for _, name := range names {
		if idx := table.ColumnIndex(name); idx >= 0 {
			drop[idx] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return
	}

	var columns []string
	for i, col := range table.Columns {
		if _, ok := drop[i]; !ok {
			columns = append(columns, col)
		}
	}
	for r, row := range table.Rows {
		var cells []string
		for i, value := range row {
			if _, ok := drop[i]; !ok {
				cells = append(cells, value)
			}
		}
		table.Rows[r] = cells
	}
	table.Columns = columns
}

// selectColumns builds a new table with the named columns, skipping names not
// present. Missing cells become "".
func selectColumns(table *loader.Table, names []string) *loader.Table {
	var indices []int
	var columns []string
	for _, name := range names {
		if idx := table.ColumnIndex(name); idx >= 0 {
			indices = append(indices, idx)
			columns = append(columns, name)
		}
	}

	out := &loader.Table{Columns: columns}
	out.Rows = make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		cells := make([]string, len(indices))
		for i, idx := range indices {
			if idx < len(row) {
				cells[i] = row[idx]
			}
		}
		out.Rows[r] = cells
	}
	return out
}
