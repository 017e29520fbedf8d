package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"kartoteka/internal/loader"
	"kartoteka/internal/marc"
	"kartoteka/internal/preflight"
	"kartoteka/internal/run"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var dataset string
	var keepOtherColumns bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the criticism records and write the review CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !skipPreflight {
				results := preflight.Run(cfg)
				renderPreflight(out, results)
				if !preflight.AllPassed(results) {
					return errors.New("preflight checks failed")
				}
			}

			outcome, err := run.Scan(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			ld := loader.New(cfg, logger)
			pipeline := marc.NewPipeline(cfg, ld, logger)
			result, err := pipeline.Run(cmd.Context(), outcome.Registry, dataset, keepOtherColumns)
			if err != nil {
				return err
			}

			stats := result.Stats
			fmt.Fprintf(out, "Cleaned %d records: %d kept, %d filtered by author type, %d filtered as non-reviews\n",
				stats.Input, stats.Kept, stats.FilteredByAuthor, stats.FilteredByReview)
			fmt.Fprintf(out, "Wrote %s\n", filepath.Join(cfg.Paths.CleanedDir, marc.CleanFile))
			fmt.Fprintf(out, "Wrote %s\n", filepath.Join(cfg.Paths.CleanedDir, marc.FilteredOutFile))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Dataset to clean (defaults to the wide criticism export)")
	cmd.Flags().BoolVar(&keepOtherColumns, "keep-other-columns", true, "Keep source columns that are not part of the processed set")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before cleaning")
	return cmd
}
