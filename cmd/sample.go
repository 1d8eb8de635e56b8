package cmd

import (
	"fmt"

	"github.com/nconklindev/castmerge/internal/processor"

	"github.com/spf13/cobra"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "merge-sample [output.xlsx] [sample.xlsx]",
	Short: "Overwrite output rows with the reviewed rows of a sample",
	Long: `For every style ID present in both files, copy the sample's values into
the output for the columns both files share. Output rows without a sample
row are kept as they are; sample-only rows are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := proc.MergeSample(processor.SampleRequest{
			Output:     args[0],
			Sample:     args[1],
			ResultFile: sampleOutput,
		})

		res := outcome.SampleResult
		return report(outcome.Outcome, outcome,
			fmt.Sprintf("✓ Merged sample into %s", res.OutputFile),
			fmt.Sprintf("  rows updated: %d of %d", res.RowsUpdated, res.TotalRows),
		)
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", processor.DefaultSampleFilename, "result workbook")
}
