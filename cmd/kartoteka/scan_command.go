package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kartoteka/internal/catalog"
	"kartoteka/internal/preflight"
	"kartoteka/internal/run"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Inventory the data root, validate files, and record the run",
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

			var outcome *run.Outcome
			err = ctx.withStore(func(store *catalog.Store) error {
				var scanErr error
				outcome, scanErr = run.ScanAndRecord(cmd.Context(), cfg, store, logger)
				return scanErr
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Run %s recorded: %d files, %d datasets\n",
				outcome.RunID, len(outcome.Entries), outcome.Report.Datasets)
			fmt.Fprintln(out, renderReportTable(outcome.Report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before scanning")
	return cmd
}
