package cmd

import (
	"fmt"
	"strings"

	"github.com/nconklindev/castmerge/internal/processor"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [size-chart.xlsx] [product-details.xlsx]",
	Short: "Merge a size chart and product details workbook into Types/Values",
	Long: `Merge every size chart sheet with the product details sheet of the same
name. Sizes are aggregated per style ID, columns are unified across sheets,
and the result is written as a Types sheet followed by a Values sheet.

File arguments default to import.size_chart_filename and
import.product_details_filename.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := proc.Config()

		req := processor.ImportRequest{
			SizeChart:      cfg.Import.SizeChartFilename,
			ProductDetails: cfg.Import.ProductDetailsFilename,
			OutputFile:     cfg.Import.OutputFilename,
			ExcludeSheets:  cfg.Import.ExcludeSheets,
		}
		if len(args) > 0 {
			req.SizeChart = args[0]
		}
		if len(args) > 1 {
			req.ProductDetails = args[1]
		}

		var bar *uiprogress.Bar
		if !jsonOutput {
			req.OnSheet = func(done, total int, sheet string) {
				if bar == nil {
					uiprogress.Start()
					bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
					bar.PrependFunc(func(b *uiprogress.Bar) string {
						return fmt.Sprintf("Sheets %d/%d: ", b.Current(), b.Total)
					})
				}
				bar.Set(done)
			}
		}

		outcome := proc.Import(req)
		if bar != nil {
			uiprogress.Stop()
		}

		res := outcome.ImportResult
		lines := []string{
			fmt.Sprintf("✓ Merged into %s", res.OutputFile),
			fmt.Sprintf("  rows: %d  columns: %d  sheets: %d", res.RowsProcessed, res.ColumnsCount, res.SheetsProcessed),
		}
		if len(res.SheetsSkipped) > 0 {
			lines = append(lines, "  skipped (no style ID column): "+strings.Join(res.SheetsSkipped, ", "))
		}
		return report(outcome.Outcome, outcome, lines...)
	},
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "output workbook (overrides import.output_filename)")
	importCmd.Flags().StringSlice("exclude", nil, "size chart sheets to skip, comma-separated (overrides import.exclude_sheets)")

	v.BindPFlag("import.output_filename", importCmd.Flags().Lookup("output"))
	v.BindPFlag("import.exclude_sheets", importCmd.Flags().Lookup("exclude"))
}
