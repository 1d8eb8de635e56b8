package processor

import (
	"path/filepath"
	"strings"

	"github.com/nconklindev/castmerge/internal/formatter"
	"github.com/nconklindev/castmerge/internal/merge"
	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// DefaultExtractFilename and DefaultSampleFilename name the results of the
// extract and sample operations when no output is given.
const (
	DefaultExtractFilename = "styles_with_missing_ai_flag.xlsx"
	DefaultSampleFilename  = "output_rewritten.xlsx"
)

type ImportRequest struct {
	SizeChart      string
	ProductDetails string
	// OutputFile defaults to the configured import output filename.
	OutputFile string
	// ExcludeSheets defaults to the configured list when nil.
	ExcludeSheets []string
	OnSheet       func(done, total int, sheet string)
}

type ImportOutcome struct {
	Outcome
	types.ImportResult
}

// Import merges a size chart workbook with a product details workbook into
// a Types/Values workbook.
func (p *Processor) Import(req ImportRequest) ImportOutcome {
	output := req.OutputFile
	if output == "" {
		output = p.cfg.Import.OutputFilename
	}
	exclude := req.ExcludeSheets
	if exclude == nil {
		exclude = p.cfg.Import.ExcludeSheets
	}

	r := p.begin("import",
		"size_chart", req.SizeChart,
		"product_details", req.ProductDetails,
		"output", output,
		"exclude_sheets", exclude)

	if err := p.checkInput(req.SizeChart, "Size chart file", excelExtensions); err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}
	if err := p.checkInput(req.ProductDetails, "Product details file", excelExtensions); err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}
	if err := checkOutput(output, "Output file"); err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}

	if err := workbook.Validate(req.SizeChart, "Size chart file"); err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.Validate(req.ProductDetails, "Product details file"); err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}

	result, err := merge.MergeFiles(req.SizeChart, req.ProductDetails, output, merge.Options{
		ExcludeSheets: exclude,
		OnSheet:       req.OnSheet,
		Logger:        r.logger,
	})
	if err != nil {
		return ImportOutcome{Outcome: r.fail(err)}
	}

	return ImportOutcome{
		Outcome: r.succeed(
			"rows_processed", result.RowsProcessed,
			"columns_count", result.ColumnsCount,
			"sheets_processed", result.SheetsProcessed,
			"sheets_skipped", len(result.SheetsSkipped)),
		ImportResult: *result,
	}
}

type ExportRequest struct {
	Input    string
	Template string
	// OutputFile defaults to the input name with the configured prefix, next
	// to the input.
	OutputFile string
	// PreserveUnknownColumns keeps input-only columns after the template's.
	PreserveUnknownColumns bool
}

type ExportOutcome struct {
	Outcome
	types.ExportResult
}

// Export reindexes an input sheet to a template's columns.
func (p *Processor) Export(req ExportRequest) ExportOutcome {
	output := req.OutputFile
	if output == "" {
		output = p.ExportOutputName(req.Input)
	}

	r := p.begin("export",
		"input", req.Input,
		"template", req.Template,
		"output", output,
		"preserve_unknown_columns", req.PreserveUnknownColumns)

	if err := p.checkInput(req.Input, "Input file", tableExtensions); err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}
	if err := p.checkInput(req.Template, "Template file", tableExtensions); err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}
	if err := checkOutput(output, "Output file"); err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.ValidateData(req.Input, "Input file"); err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.ValidateColumns(req.Template, "Template file"); err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}

	result, err := formatter.Export(req.Input, req.Template, output, req.PreserveUnknownColumns)
	if err != nil {
		return ExportOutcome{Outcome: r.fail(err)}
	}

	return ExportOutcome{
		Outcome: r.succeed(
			"rows_processed", result.RowsProcessed,
			"columns_in_output", result.ColumnsInOutput,
			"columns_added", result.ColumnsAdded),
		ExportResult: *result,
	}
}

// ExportOutputName derives the default export output for input: the
// configured prefix plus the input's base name, always as .xlsx.
func (p *Processor) ExportOutputName(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
	return filepath.Join(filepath.Dir(input), p.cfg.Export.OutputPrefix+base)
}

type ExtractRequest struct {
	// Input is an import workbook with Types and Values sheets.
	Input string
	// Output is the processed sheet carrying the flag column.
	Output     string
	ResultFile string
}

type ExtractOutcome struct {
	Outcome
	types.ExtractResult
}

// ExtractMissing writes the rows of Input whose key has no flag in Output.
func (p *Processor) ExtractMissing(req ExtractRequest) ExtractOutcome {
	result := req.ResultFile
	if result == "" {
		result = DefaultExtractFilename
	}

	r := p.begin("extract-missing",
		"input", req.Input,
		"output", req.Output,
		"result", result,
		"key_column", p.cfg.Columns.StyleID,
		"flag_column", p.cfg.Columns.Flag)

	if err := p.checkInput(req.Input, "Input file", excelExtensions); err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}
	if err := p.checkInput(req.Output, "Output file", excelExtensions); err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}
	if err := checkOutput(result, "Result file"); err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.Validate(req.Input, "Input file"); err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.Validate(req.Output, "Output file"); err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}

	res, err := formatter.ExtractMissing(req.Input, req.Output, result, p.cfg.Columns.StyleID, p.cfg.Columns.Flag)
	if err != nil {
		return ExtractOutcome{Outcome: r.fail(err)}
	}

	if res.MissingCount == 0 {
		r.logger.Info("no rows with a missing flag, nothing written")
	}

	return ExtractOutcome{
		Outcome: r.succeed(
			"rows_extracted", res.RowsExtracted,
			"missing_count", res.MissingCount),
		ExtractResult: *res,
	}
}

type SampleRequest struct {
	// Output is the main sheet to update.
	Output     string
	Sample     string
	ResultFile string
}

type SampleOutcome struct {
	Outcome
	types.SampleResult
}

// MergeSample overwrites Output rows with the Sample rows sharing their key.
func (p *Processor) MergeSample(req SampleRequest) SampleOutcome {
	result := req.ResultFile
	if result == "" {
		result = DefaultSampleFilename
	}

	r := p.begin("merge-sample",
		"output", req.Output,
		"sample", req.Sample,
		"result", result,
		"key_column", p.cfg.Columns.StyleID)

	if err := p.checkInput(req.Output, "Output file", tableExtensions); err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}
	if err := p.checkInput(req.Sample, "Sample file", tableExtensions); err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}
	if err := checkOutput(result, "Result file"); err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.Validate(req.Output, "Output file"); err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}
	if err := workbook.Validate(req.Sample, "Sample file"); err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}

	res, err := formatter.MergeSample(req.Output, req.Sample, result, p.cfg.Columns.StyleID)
	if err != nil {
		return SampleOutcome{Outcome: r.fail(err)}
	}

	return SampleOutcome{
		Outcome: r.succeed(
			"rows_updated", res.RowsUpdated,
			"total_rows", res.TotalRows),
		SampleResult: *res,
	}
}
