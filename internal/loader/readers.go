package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"kartoteka/internal/config"
)

func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

func readDelimited(path string, rules config.Schema) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := decodingReader(file, path, rules.Encoding)
	if err != nil {
		return nil, err
	}

	delimiter := rules.Delimiter
	if delimiter == "" {
		buffered := bufio.NewReaderSize(reader, 64*1024)
		header, err := buffered.Peek(64 * 1024)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, fmt.Errorf("peek header: %w", err)
		}
		line := string(header)
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		delimiter = sniffDelimiter(line)
		reader = buffered
	}

	cr := csv.NewReader(reader)
	cr.Comma = []rune(delimiter)[0]
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF"))
	}
	return &Table{Columns: columns, Rows: records[1:]}, nil
}

// decodingReader wraps the file in a charset decoder. With no configured
// encoding the file is sampled: valid UTF-8 passes through, anything else is
// decoded as Windows-1257.
func decodingReader(file *os.File, path, configured string) (io.Reader, error) {
	var dec *encoding.Decoder
	switch configured {
	case "", "utf-8", "utf8":
		sample := make([]byte, 64*1024)
		n, err := file.Read(sample)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("sample %s: %w", path, err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", path, err)
		}
		if utf8.Valid(trimPartialRune(sample[:n])) {
			return file, nil
		}
		if configured != "" {
			return nil, fmt.Errorf("configured encoding utf-8 but content is not valid UTF-8")
		}
		dec = charmap.Windows1257.NewDecoder()
	case "windows-1257":
		dec = charmap.Windows1257.NewDecoder()
	case "iso-8859-13":
		dec = charmap.ISO8859_13.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding %q", configured)
	}
	return transform.NewReader(file, dec), nil
}

// trimPartialRune drops trailing bytes that may be a UTF-8 rune cut off by the
// sample boundary.
func trimPartialRune(sample []byte) []byte {
	for i := 0; i < 3 && len(sample) > 0; i++ {
		r, size := utf8.DecodeLastRune(sample)
		if r != utf8.RuneError || size != 1 {
			return sample
		}
		sample = sample[:len(sample)-1]
	}
	return sample
}

func sniffDelimiter(header string) string {
	best := ";"
	bestCount := strings.Count(header, ";")
	for _, candidate := range []string{",", "\t", "|"} {
		if count := strings.Count(header, candidate); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

func readXLSX(path string) (*Table, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}
	return &Table{Columns: columns, Rows: records[1:]}, nil
}
