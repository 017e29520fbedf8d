package schema

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSXHeader opens a workbook and reads the first row of its first sheet.
// Workbooks are always UTF-8 internally, so no encoding guess is needed.
func readXLSXHeader(path string) Verdict {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("open workbook: %v", err)}
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return Verdict{Status: StatusInvalid, Reason: "workbook has no sheets"}
	}

	rows, err := book.Rows(sheets[0])
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("read sheet %q: %v", sheets[0], err)}
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return Verdict{Status: StatusInvalid, Reason: "empty sheet"}
	}
	header, err := rows.Columns()
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("read header row: %v", err)}
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}
	return Verdict{Encoding: "utf-8", Columns: columns}
}
