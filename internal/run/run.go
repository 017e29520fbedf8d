// Package run orchestrates one scan: resolve the data root, inventory the
// category folders, validate, and build the registry. Persistence to the
// catalog is a separate step so read-only commands can scan without taking
// the catalog lock.
package run

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kartoteka/internal/catalog"
	"kartoteka/internal/config"
	"kartoteka/internal/dataroot"
	"kartoteka/internal/logging"
	"kartoteka/internal/registry"
	"kartoteka/internal/scanner"
	"kartoteka/internal/schema"
)

// Outcome is the result of one scan run.
type Outcome struct {
	RunID      string
	Root       *dataroot.Root
	Entries    []scanner.FileEntry
	Verdicts   map[string]schema.Verdict
	Registry   *registry.Registry
	Report     registry.Report
	StartedAt  time.Time
	FinishedAt time.Time
}

// Scan performs resolve + scan + validate + register without persisting.
func Scan(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Outcome, error) {
	log := logging.WithComponent(logger, "run")
	started := time.Now()

	root, err := dataroot.Resolve(cfg.Paths.DataRoot)
	if err != nil {
		return nil, err
	}

	entries, err := scanner.ScanAll(ctx, root, cfg.Scan.Workers, logger)
	if err != nil {
		return nil, err
	}

	verdicts, err := schema.New(cfg, logger).ValidateAll(ctx, entries)
	if err != nil {
		return nil, err
	}

	reg := registry.Build(entries, verdicts)
	outcome := &Outcome{
		RunID:      uuid.NewString(),
		Root:       root,
		Entries:    entries,
		Verdicts:   verdicts,
		Registry:   reg,
		Report:     reg.StatusReport(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	log.Info("scan complete",
		logging.Args(
			logging.String(logging.FieldRunID, outcome.RunID),
			logging.Int("files", len(entries)),
			logging.Int("datasets", outcome.Report.Datasets),
		)...)

	return outcome, nil
}

// ScanAndRecord scans and persists the run to the catalog.
func ScanAndRecord(ctx context.Context, cfg *config.Config, store *catalog.Store, logger *slog.Logger) (*Outcome, error) {
	outcome, err := Scan(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	run := catalog.NewRun(outcome.RunID, outcome.Root.Path, outcome.StartedAt, outcome.FinishedAt, outcome.Report)
	records := catalog.NewFileRecords(outcome.Entries, outcome.Verdicts)
	if err := store.RecordRun(ctx, run, records); err != nil {
		return nil, err
	}
	return outcome, nil
}
