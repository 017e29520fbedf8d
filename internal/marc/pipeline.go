package marc

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kartoteka/internal/config"
	"kartoteka/internal/errs"
	"kartoteka/internal/loader"
	"kartoteka/internal/logging"
	"kartoteka/internal/registry"
)

// DefaultDataset is the logical name of the wide criticism export the
// pipeline cleans when no dataset is named explicitly.
const DefaultDataset = "cleaned-records-33-wide"

// Output file names under the cleaned directory.
const (
	CleanFile       = "recenzijas_clean.csv"
	FilteredOutFile = "recenzijas_filtered_out.csv"
)

// Pipeline loads the criticism export through the registry and writes the
// cleaned and filtered-out CSVs.
type Pipeline struct {
	cfg    *config.Config
	loader *loader.Loader
	logger *slog.Logger
}

// NewPipeline constructs a Pipeline sharing the given loader's cache.
func NewPipeline(cfg *config.Config, ld *loader.Loader, logger *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, loader: ld, logger: logging.WithComponent(logger, "marc")}
}

// Run cleans the named dataset (DefaultDataset when empty) and writes both
// outputs. Returns the result for reporting.
func (p *Pipeline) Run(ctx context.Context, reg *registry.Registry, dataset string, keepOtherColumns bool) (*Result, error) {
	if dataset == "" {
		dataset = DefaultDataset
	}

	desc, err := reg.Describe(dataset)
	if err != nil {
		return nil, errs.Wrap(errs.ErrNotFound, "marc", "describe", dataset, err)
	}

	table, err := p.loader.Load(ctx, desc)
	if err != nil {
		return nil, err
	}

	p.logger.Info("cleaning records",
		logging.Args(
			logging.String(logging.FieldDataset, dataset),
			logging.Int("rows", len(table.Rows)),
		)...)

	result, err := Clean(table, keepOtherColumns)
	if err != nil {
		return nil, errs.Wrap(errs.ErrValidation, "marc", "clean", dataset, err)
	}

	if err := os.MkdirAll(p.cfg.Paths.CleanedDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cleaned directory: %w", err)
	}
	cleanPath := filepath.Join(p.cfg.Paths.CleanedDir, CleanFile)
	if err := writeCSV(cleanPath, result.Clean); err != nil {
		return nil, fmt.Errorf("write %s: %w", cleanPath, err)
	}
	filteredPath := filepath.Join(p.cfg.Paths.CleanedDir, FilteredOutFile)
	if err := writeCSV(filteredPath, result.FilteredOut); err != nil {
		return nil, fmt.Errorf("write %s: %w", filteredPath, err)
	}

	p.logger.Info("cleaning complete",
		logging.Args(
			logging.Int("input", result.Stats.Input),
			logging.Int("kept", result.Stats.Kept),
			logging.Int("filtered_author", result.Stats.FilteredByAuthor),
			logging.Int("filtered_review", result.Stats.FilteredByReview),
		)...)

	return result, nil
}

func writeCSV(path string, table *loader.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
