package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"kartoteka/internal/logging"
)

func TestConsoleHandlerIncludesComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logging.WithComponent(logger, "scanner").Info("walk complete",
		logging.Args(logging.String(logging.FieldCategory, "usage"), logging.Int("files", 4))...)

	line := buf.String()
	if !strings.Contains(line, " INFO scanner: walk complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "category=usage") || !strings.Contains(line, "files=4") {
		t.Fatalf("missing attrs in console line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("found", logging.Args(logging.String(logging.FieldPath, "Mākslu kritika/a b.csv"))...)
	if !strings.Contains(buf.String(), `path="Mākslu kritika/a b.csv"`) {
		t.Fatalf("expected quoted path, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("scan", logging.Args(logging.String(logging.FieldRunID, "abc"))...)
	out := buf.String()
	if !strings.Contains(out, `"msg":"scan"`) || !strings.Contains(out, `"run_id":"abc"`) {
		t.Fatalf("unexpected json line: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
