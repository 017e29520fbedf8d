package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeSchemas()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("KARTOTEKA_DATA_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataRoot = value
	}

	var err error
	if strings.TrimSpace(c.Paths.DataRoot) == "" {
		c.Paths.DataRoot = defaultDataRoot
	}
	if c.Paths.DataRoot, err = expandPath(c.Paths.DataRoot); err != nil {
		return fmt.Errorf("paths.data_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.CleanedDir) == "" {
		c.Paths.CleanedDir = defaultCleanedDir
	}
	if c.Paths.CleanedDir, err = expandPath(c.Paths.CleanedDir); err != nil {
		return fmt.Errorf("paths.cleaned_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		c.Paths.CatalogDir = defaultCatalogDir
	}
	if c.Paths.CatalogDir, err = expandPath(c.Paths.CatalogDir); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = defaultWorkers
	}
	if c.Scan.Workers > maxWorkers {
		c.Scan.Workers = maxWorkers
	}
}

func (c *Config) normalizeSchemas() {
	if len(c.Schemas) == 0 {
		return
	}
	normalized := make(map[string]Schema, len(c.Schemas))
	for key, schema := range c.Schemas {
		schema.Encoding = strings.ToLower(strings.TrimSpace(schema.Encoding))
		schema.Delimiter = strings.TrimSpace(schema.Delimiter)
		columns := make([]string, 0, len(schema.RequiredColumns))
		for _, col := range schema.RequiredColumns {
			if trimmed := strings.TrimSpace(col); trimmed != "" {
				columns = append(columns, trimmed)
			}
		}
		schema.RequiredColumns = columns
		normalized[strings.ToLower(strings.TrimSpace(key))] = schema
	}
	c.Schemas = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
