package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kartoteka/internal/loader"
	"kartoteka/internal/logging"
)

const previewCellWidth = 40

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var rowLimit int

	cmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Load a dataset and print its first rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			reg, err := scanRegistry(ctx, cmd)
			if err != nil {
				return err
			}
			desc, err := reg.Describe(args[0])
			if err != nil {
				return err
			}

			table, err := loader.New(cfg, logger).Load(cmd.Context(), desc)
			if err != nil {
				return err
			}

			limit := rowLimit
			if limit <= 0 || limit > len(table.Rows) {
				limit = len(table.Rows)
			}

			headers := make([]string, len(table.Columns))
			for i, column := range table.Columns {
				headers[i] = truncateCell(column, previewCellWidth)
			}
			rows := make([][]string, 0, limit)
			for _, row := range table.Rows[:limit] {
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = truncateCell(cell, previewCellWidth)
				}
				rows = append(rows, cells)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			fmt.Fprintf(out, "%d of %d rows from %s\n", limit, len(table.Rows), desc.Canonical.Path)

			logger.Debug("preview rendered",
				logging.Args(
					logging.String(logging.FieldDataset, desc.Name),
					logging.Int("rows", limit),
				)...)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rowLimit, "rows", "n", 10, "Number of rows to show (0 for all)")
	return cmd
}
