package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"kartoteka/internal/preflight"
	"kartoteka/internal/registry"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// renderReportTable turns a status report into the per-category summary table.
func renderReportTable(rep registry.Report) string {
	headers := []string{"Category", "Files", "Valid", "Warnings", "Invalid", "Skipped", "Datasets"}
	rows := make([][]string, 0, len(rep.Categories))
	for _, cat := range rep.Categories {
		rows = append(rows, []string{
			cat.Key,
			strconv.Itoa(cat.Files),
			strconv.Itoa(cat.Valid),
			strconv.Itoa(cat.Warnings),
			strconv.Itoa(cat.Invalid),
			strconv.Itoa(cat.Skipped),
			strconv.Itoa(cat.Datasets),
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	return renderTable(headers, rows, aligns) + fmt.Sprintf("\nTotal datasets: %d\n", rep.Datasets)
}

// renderPreflight prints one line per check, colorized when the writer is a
// terminal.
func renderPreflight(w io.Writer, results []preflight.Result) {
	colorize := shouldColorize(w)
	for _, result := range results {
		label := "FAIL"
		color := ansiRed
		if result.Passed {
			label = "OK"
			color = ansiGreen
		}
		line := fmt.Sprintf("  [%-4s] %-20s %s", label, result.Name, result.Detail)
		if colorize {
			line = color + line + ansiReset
		}
		fmt.Fprintln(w, line)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// truncateCell shortens a value for table display.
func truncateCell(value string, max int) string {
	value = strings.Join(strings.Fields(value), " ")
	if max <= 0 || len(value) <= max {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
