package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kartoteka/internal/registry"
	"kartoteka/internal/run"
)

func newDatasetsCommand(ctx *commandContext) *cobra.Command {
	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "Inspect the logical dataset catalog",
	}

	datasetsCmd.AddCommand(newDatasetsListCommand(ctx))
	datasetsCmd.AddCommand(newDatasetsShowCommand(ctx))

	return datasetsCmd
}

func newDatasetsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logical datasets across all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := scanRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			if jsonOutput {
				payload := make([]datasetSummary, 0, reg.Len())
				for _, name := range reg.Datasets() {
					desc, err := reg.Describe(name)
					if err != nil {
						return err
					}
					payload = append(payload, newDatasetSummary(desc))
				}
				return writeJSON(cmd, payload)
			}

			headers := []string{"Dataset", "Category", "Canonical", "Status", "Alternates"}
			rows := make([][]string, 0, reg.Len())
			for _, name := range reg.Datasets() {
				desc, err := reg.Describe(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					desc.Name,
					desc.Category,
					desc.Canonical.Name,
					string(desc.Verdict.Status),
					strconv.Itoa(len(desc.Alternates)),
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newDatasetsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one dataset's sources and validation verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := scanRegistry(ctx, cmd)
			if err != nil {
				return err
			}
			desc, err := reg.Describe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dataset:   %s\n", desc.Name)
			fmt.Fprintf(out, "Category:  %s\n", desc.Category)
			fmt.Fprintf(out, "Canonical: %s (%s, %s)\n",
				desc.Canonical.Path, desc.Canonical.Type, formatSize(desc.Canonical.Size))
			fmt.Fprintf(out, "Status:    %s\n", desc.Verdict.Status)
			if desc.Verdict.Reason != "" {
				fmt.Fprintf(out, "Reason:    %s\n", desc.Verdict.Reason)
			}
			for _, issue := range desc.Verdict.Issues {
				fmt.Fprintf(out, "Issue:     %s\n", issue)
			}
			if len(desc.Verdict.Columns) > 0 {
				fmt.Fprintf(out, "Columns:   %s\n", strings.Join(desc.Verdict.Columns, ", "))
			}
			for _, alt := range desc.Alternates {
				fmt.Fprintf(out, "Alternate: %s (%s, %s)\n", alt.Path, alt.Type, formatSize(alt.Size))
			}
			return nil
		},
	}
}

type datasetSummary struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Canonical  string   `json:"canonical"`
	Status     string   `json:"status"`
	Alternates []string `json:"alternates,omitempty"`
}

func newDatasetSummary(desc *registry.Descriptor) datasetSummary {
	summary := datasetSummary{
		Name:      desc.Name,
		Category:  desc.Category,
		Canonical: desc.Canonical.Path,
		Status:    string(desc.Verdict.Status),
	}
	for _, alt := range desc.Alternates {
		summary.Alternates = append(summary.Alternates, alt.Path)
	}
	return summary
}

// scanRegistry runs a fresh in-memory scan without touching the catalog.
func scanRegistry(ctx *commandContext, cmd *cobra.Command) (*registry.Registry, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	outcome, err := run.Scan(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return outcome.Registry, nil
}
