package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category keys used to attach schema rules and report scan results. They
// identify the three fixed data collections independent of their Latvian
// folder names.
const (
	CategoryUsage     = "usage"
	CategoryContent   = "content"
	CategoryCriticism = "criticism"
)

// CategoryKeys returns the fixed category keys in report order.
func CategoryKeys() []string {
	return []string{CategoryUsage, CategoryContent, CategoryCriticism}
}

var supportedEncodings = map[string]struct{}{
	"":             {},
	"utf-8":        {},
	"utf8":         {},
	"windows-1257": {},
	"iso-8859-13":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSchemas(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSchemas() error {
	known := map[string]struct{}{
		CategoryUsage:     {},
		CategoryContent:   {},
		CategoryCriticism: {},
	}
	for key, schema := range c.Schemas {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("schemas.%s: unknown category key (expected one of %s)",
				key, strings.Join(CategoryKeys(), ", "))
		}
		if _, ok := supportedEncodings[schema.Encoding]; !ok {
			return fmt.Errorf("schemas.%s.encoding: unsupported encoding %q", key, schema.Encoding)
		}
		if schema.Delimiter != "" && utf8.RuneCountInString(schema.Delimiter) != 1 {
			return fmt.Errorf("schemas.%s.delimiter: must be a single character, got %q", key, schema.Delimiter)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
