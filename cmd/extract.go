package cmd

import (
	"fmt"

	"github.com/nconklindev/castmerge/internal/processor"

	"github.com/spf13/cobra"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract-missing [import.xlsx] [output.xlsx]",
	Short: "Pull out the import rows whose flag is still empty in a processed output",
	Long: `Find every style ID whose flag column (columns.flag) is empty in the
processed output and write the import workbook's Types sheet together with
the matching Values rows. Nothing is written when no flag is missing.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := proc.ExtractMissing(processor.ExtractRequest{
			Input:      args[0],
			Output:     args[1],
			ResultFile: extractOutput,
		})

		res := outcome.ExtractResult
		if outcome.Success && res.MissingCount == 0 {
			return report(outcome.Outcome, outcome, "✓ Every row has a flag, nothing to extract")
		}
		return report(outcome.Outcome, outcome,
			fmt.Sprintf("✓ Extracted into %s", res.OutputFile),
			fmt.Sprintf("  style IDs missing a flag: %d  rows: %d  types rows: %d",
				res.MissingCount, res.RowsExtracted, res.TypesRows),
		)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", processor.DefaultExtractFilename, "result workbook")
	extractCmd.Flags().String("flag-column", "", "flag column (overrides columns.flag)")

	v.BindPFlag("columns.flag", extractCmd.Flags().Lookup("flag-column"))
}
