package logging

import (
	"log/slog"
	"time"
)

// Standardized structured logging keys.
const (
	// FieldComponent identifies the emitting component (scanner, registry, ...).
	FieldComponent = "component"
	// FieldCategory is the category key (usage, content, criticism).
	FieldCategory = "category"
	// FieldDataset is the logical dataset name.
	FieldDataset = "dataset"
	// FieldRunID is the scan run identifier.
	FieldRunID = "run_id"
	// FieldPath is a filesystem path under discussion.
	FieldPath = "path"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs to the variadic any form slog methods expect.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// WithComponent tags a logger with the standard component field.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
