package cmd

import (
	"fmt"

	"github.com/nconklindev/castmerge/internal/processor"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [input.xlsx] [template.xlsx]",
	Short: "Reorder an edited sheet to match a template's columns",
	Long: `Rearrange the first sheet of the input to the template's column order.
Template columns missing from the input are added empty; input-only columns
are dropped unless --preserve-unknown-columns is set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := proc.Export(processor.ExportRequest{
			Input:                  args[0],
			Template:               args[1],
			OutputFile:             exportOutput,
			PreserveUnknownColumns: proc.Config().Export.PreserveUnknownColumns,
		})

		res := outcome.ExportResult
		return report(outcome.Outcome, outcome,
			fmt.Sprintf("✓ Formatted into %s", res.OutputFile),
			fmt.Sprintf("  rows: %d  columns: %d -> %d (%d added)",
				res.RowsProcessed, res.ColumnsInInput, res.ColumnsInOutput, res.ColumnsAdded),
		)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output workbook (default: <prefix><input name>.xlsx next to the input)")
	exportCmd.Flags().Bool("preserve-unknown-columns", false, "keep input columns the template does not have")
	exportCmd.Flags().String("prefix", "", "prefix for the default output name (overrides export.output_prefix)")

	v.BindPFlag("export.preserve_unknown_columns", exportCmd.Flags().Lookup("preserve-unknown-columns"))
	v.BindPFlag("export.output_prefix", exportCmd.Flags().Lookup("prefix"))
}
