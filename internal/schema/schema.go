// Package schema validates the structure of tabular and text files against
// optional per-category rules. Validation is partial-failure tolerant:
// an invalid file is recorded with a reason and the scan moves on. Documents
// and unknown types are exempt and pass through as metadata-only entries.
package schema

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"kartoteka/internal/config"
	"kartoteka/internal/logging"
	"kartoteka/internal/scanner"
)

// Status is the tri-state validation verdict.
type Status string

const (
	StatusValid    Status = "valid"
	StatusWarnings Status = "valid_with_warnings"
	StatusInvalid  Status = "invalid"
	// StatusSkipped marks documents and unknown types, which are exempt
	// from schema validation.
	StatusSkipped Status = "skipped"
)

// Verdict is the validation result for one file entry.
type Verdict struct {
	Status Status
	// Issues holds warnings when Status is StatusWarnings.
	Issues []string
	// Reason explains an invalid verdict.
	Reason string
	// Encoding is the detected or configured text encoding.
	Encoding string
	// Delimiter is the detected or configured field delimiter.
	Delimiter string
	// Columns is the parsed header row, when one could be read.
	Columns []string
}

// headerLimit bounds how much of a file is read to find the header row.
const headerLimit = 64 * 1024

// Validator checks file entries against the configured category rules.
type Validator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a Validator. Categories without configured rules still get
// their headers read so the registry can report columns and encodings, but
// nothing is enforced.
func New(cfg *config.Config, logger *slog.Logger) *Validator {
	return &Validator{cfg: cfg, logger: logging.WithComponent(logger, "schema")}
}

// Validate inspects one entry and returns its verdict. Only tabular and text
// entries have their contents read, and only up to the header row.
func (v *Validator) Validate(entry scanner.FileEntry) Verdict {
	switch entry.Type {
	case scanner.TypeTabular, scanner.TypeText:
	default:
		return Verdict{Status: StatusSkipped}
	}

	rules := v.cfg.SchemaFor(entry.Category)

	var verdict Verdict
	if isXLSX(entry.Name) {
		verdict = readXLSXHeader(entry.Path)
	} else {
		verdict = readDelimitedHeader(entry.Path, rules)
	}
	if verdict.Status == StatusInvalid {
		v.logger.Warn("file failed validation",
			logging.Args(
				logging.String(logging.FieldCategory, entry.Category),
				logging.String(logging.FieldPath, entry.Path),
				logging.String("reason", verdict.Reason),
			)...)
		return verdict
	}

	verdict.Issues = append(verdict.Issues, headerIssues(verdict.Columns)...)

	if missing := missingColumns(verdict.Columns, rules.RequiredColumns); len(missing) > 0 {
		verdict.Status = StatusInvalid
		verdict.Reason = fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))
		verdict.Issues = nil
		return verdict
	}

	if len(verdict.Issues) > 0 {
		verdict.Status = StatusWarnings
	} else {
		verdict.Status = StatusValid
	}
	return verdict
}

// ValidateAll validates every entry, checking for cancellation between files.
// A cancelled context returns the verdicts collected so far along with the
// context error; a partial inventory is still usable for reporting.
func (v *Validator) ValidateAll(ctx context.Context, entries []scanner.FileEntry) (map[string]Verdict, error) {
	verdicts := make(map[string]Verdict, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return verdicts, err
		}
		verdicts[entry.Path] = v.Validate(entry)
	}
	return verdicts, nil
}

func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

func readDelimitedHeader(path string, rules config.Schema) Verdict {
	file, err := os.Open(path)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("open: %v", err)}
	}
	defer file.Close()

	buf := make([]byte, headerLimit)
	n, err := file.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("read: %v", err)}
		}
		return Verdict{Status: StatusInvalid, Reason: "empty file"}
	}
	raw := buf[:n]

	var issues []string
	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		raw = raw[3:]
		issues = append(issues, "UTF-8 byte order mark present")
	}

	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})

	decoded, encodingName, err := decodeHeader(line, rules.Encoding)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: err.Error()}
	}
	if rules.Encoding == "" && encodingName != "utf-8" {
		issues = append(issues, fmt.Sprintf("encoding guessed as %s", encodingName))
	}

	delimiter := rules.Delimiter
	if delimiter == "" {
		delimiter = sniffDelimiter(decoded)
	}

	columns, err := splitHeader(decoded, delimiter)
	if err != nil {
		return Verdict{Status: StatusInvalid, Reason: fmt.Sprintf("parse header: %v", err)}
	}

	return Verdict{
		Issues:    issues,
		Encoding:  encodingName,
		Delimiter: delimiter,
		Columns:   columns,
	}
}

// decodeHeader decodes the header bytes using the configured encoding, or
// guesses one. UTF-8 is assumed when the bytes are valid UTF-8; otherwise
// Windows-1257 is the pragmatic guess for Latvian library exports.
func decodeHeader(line []byte, configured string) (string, string, error) {
	switch configured {
	case "", "utf-8", "utf8":
		if utf8.Valid(line) {
			return string(line), "utf-8", nil
		}
		if configured != "" {
			return "", "", fmt.Errorf("configured encoding utf-8 but header is not valid UTF-8")
		}
		decoded, err := charmap.Windows1257.NewDecoder().Bytes(line)
		if err != nil {
			return "", "", fmt.Errorf("decode header: %v", err)
		}
		return string(decoded), "windows-1257", nil
	case "windows-1257":
		decoded, err := charmap.Windows1257.NewDecoder().Bytes(line)
		if err != nil {
			return "", "", fmt.Errorf("decode windows-1257 header: %v", err)
		}
		return string(decoded), "windows-1257", nil
	case "iso-8859-13":
		decoded, err := charmap.ISO8859_13.NewDecoder().Bytes(line)
		if err != nil {
			return "", "", fmt.Errorf("decode iso-8859-13 header: %v", err)
		}
		return string(decoded), "iso-8859-13", nil
	default:
		return "", "", fmt.Errorf("unsupported encoding %q", configured)
	}
}

// sniffDelimiter picks the candidate that splits the header into the most
// fields. Semicolon wins ties; LNB exports favor it.
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

func splitHeader(header, delimiter string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(header))
	reader.Comma = []rune(delimiter)[0]
	reader.LazyQuotes = true
	record, err := reader.Read()
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(record))
	for i, col := range record {
		columns[i] = strings.TrimSpace(col)
	}
	return columns, nil
}

func headerIssues(columns []string) []string {
	var issues []string
	seen := make(map[string]struct{}, len(columns))
	empty := 0
	for _, col := range columns {
		if col == "" {
			empty++
			continue
		}
		if _, dup := seen[col]; dup {
			issues = append(issues, fmt.Sprintf("duplicate column %q", col))
		}
		seen[col] = struct{}{}
	}
	if empty > 0 {
		issues = append(issues, fmt.Sprintf("%d unnamed columns", empty))
	}
	return issues
}

func missingColumns(columns, required []string) []string {
	if len(required) == 0 {
		return nil
	}
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
