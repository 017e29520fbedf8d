package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kartoteka/internal/catalog"
	"kartoteka/internal/config"
	"kartoteka/internal/schema"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var historyLimit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest recorded run and scan history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				cmdCtx := cmd.Context()

				last, err := store.LastRun(cmdCtx)
				if err != nil {
					return fmt.Errorf("read last run: %w", err)
				}
				if last == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet; run `kartoteka scan` first")
					return nil
				}

				history, err := store.History(cmdCtx, historyLimit)
				if err != nil {
					return fmt.Errorf("read history: %w", err)
				}
				files, err := store.RunFiles(cmdCtx, last.ID)
				if err != nil {
					return fmt.Errorf("read run files: %w", err)
				}

				if jsonOutput {
					return writeJSON(cmd, statusPayload{LastRun: last, Files: files, History: history})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Last run %s at %s\n", last.ID, last.FinishedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Data root: %s\n", last.DataRoot)
				fmt.Fprintln(out, renderRunTable(last, files))

				if len(history) > 1 {
					fmt.Fprintln(out, "History:")
					fmt.Fprintln(out, renderHistoryTable(history))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of tables")
	cmd.Flags().IntVar(&historyLimit, "history", 10, "Number of past runs to include")
	return cmd
}

type statusPayload struct {
	LastRun *catalog.Run         `json:"last_run"`
	Files   []catalog.FileRecord `json:"files"`
	History []catalog.Run        `json:"history"`
}

// renderRunTable rebuilds the per-category breakdown from the persisted file
// records.
func renderRunTable(run *catalog.Run, files []catalog.FileRecord) string {
	type counts struct {
		files, valid, warnings, invalid, skipped int
	}
	perCategory := make(map[string]*counts)
	for _, key := range config.CategoryKeys() {
		perCategory[key] = &counts{}
	}
	for _, file := range files {
		cat, ok := perCategory[file.Category]
		if !ok {
			cat = &counts{}
			perCategory[file.Category] = cat
		}
		cat.files++
		switch schema.Status(file.Status) {
		case schema.StatusValid:
			cat.valid++
		case schema.StatusWarnings:
			cat.warnings++
		case schema.StatusInvalid:
			cat.invalid++
		default:
			cat.skipped++
		}
	}

	headers := []string{"Category", "Files", "Valid", "Warnings", "Invalid", "Skipped"}
	rows := make([][]string, 0, len(config.CategoryKeys()))
	for _, key := range config.CategoryKeys() {
		cat := perCategory[key]
		rows = append(rows, []string{
			key,
			strconv.Itoa(cat.files),
			strconv.Itoa(cat.valid),
			strconv.Itoa(cat.warnings),
			strconv.Itoa(cat.invalid),
			strconv.Itoa(cat.skipped),
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
	return renderTable(headers, rows, aligns) + fmt.Sprintf("\nDatasets: %d\n", run.Datasets)
}

func renderHistoryTable(runs []catalog.Run) string {
	headers := []string{"Finished", "Run", "Files", "Valid", "Invalid", "Datasets"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.FinishedAt.Format("2006-01-02 15:04:05"),
			run.ID,
			strconv.Itoa(run.Files),
			strconv.Itoa(run.Valid),
			strconv.Itoa(run.Invalid),
			strconv.Itoa(run.Datasets),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	return renderTable(headers, rows, aligns)
}
