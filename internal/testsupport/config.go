// Package testsupport provides shared fixtures for kartoteka tests: temp-dir
// configs and canned category folder layouts.
package testsupport

import (
	"path/filepath"
	"testing"

	"kartoteka/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The data root is created with all three category folders.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataRoot = NewDataRoot(t)
	cfg.Paths.CleanedDir = filepath.Join(base, "cleaned")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithWorkers sets the scan worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.Workers = n
	}
}

// WithSchema attaches schema rules for one category key.
func WithSchema(key string, schema config.Schema) ConfigOption {
	return func(cfg *config.Config) {
		if cfg.Schemas == nil {
			cfg.Schemas = map[string]config.Schema{}
		}
		cfg.Schemas[key] = schema
	}
}
