// Package errs defines the sentinel error markers shared across kartoteka
// components and a helper for wrapping failures with component context.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEnvironment marks failures of the runtime environment itself
	// (unreadable directories, missing tooling). Fatal before any scan.
	ErrEnvironment = errors.New("environment error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks data that failed schema validation.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks lookups for names that were never registered.
	ErrNotFound = errors.New("not found")
	// ErrLoad marks materialization failures (bad encoding, corrupt file).
	ErrLoad = errors.New("load error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrEnvironment
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
