package merge

import (
	"fmt"
	"log/slog"

	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// DefaultExcludeSheets are skipped unless the caller says otherwise.
var DefaultExcludeSheets = []string{"masterdata"}

// Source is a workbook the merge reads sheets from.
type Source interface {
	SheetNames() []string
	HasSheet(name string) bool
	ReadSheet(name string) (*types.Table, error)
}

// Options tunes a merge run.
type Options struct {
	// ExcludeSheets are size chart sheet names dropped before any processing.
	// Nil means DefaultExcludeSheets.
	ExcludeSheets []string
	// OnSheet, when set, is called after each sheet is handled.
	OnSheet func(done, total int, sheet string)
	Logger  *slog.Logger
}

// Output is a finished merge, ready to be written.
type Output struct {
	Types           *types.Table
	Values          *types.Table
	SheetsProcessed int
	SheetsSkipped   []string
}

// Run merges every included sheet of sizeChart with the same-named sheet of
// productDetails and assembles the Types and Values sheets.
func Run(sizeChart, productDetails Source, opts Options) (*Output, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exclude := opts.ExcludeSheets
	if exclude == nil {
		exclude = DefaultExcludeSheets
	}

	sheets := IncludedSheets(sizeChart.SheetNames(), exclude)
	if len(sheets) == 0 {
		return nil, types.ErrNoValidSheets
	}

	canon := NewCanonicalizer()
	var (
		tables  []*types.Table
		skipped []string
	)

	for i, sheet := range sheets {
		size, err := sizeChart.ReadSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read size chart sheet %s: %w", sheet, err)
		}

		var product *types.Table
		if productDetails.HasSheet(sheet) {
			if product, err = productDetails.ReadSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to read product details sheet %s: %w", sheet, err)
			}
		}

		outcome, err := MergeSheet(size, product, i == 0, canon)
		if err != nil {
			return nil, err
		}

		switch {
		case outcome.Skipped:
			logger.Info("skipping sheet without style ID column", "sheet", sheet)
			skipped = append(skipped, sheet)
		default:
			logger.Debug("merged sheet", "sheet", sheet,
				"rows", len(outcome.Table.Rows), "aggregated", outcome.Aggregated)
			tables = append(tables, outcome.Table)
		}

		if opts.OnSheet != nil {
			opts.OnSheet(i+1, len(sheets), sheet)
		}
	}

	columns := canon.Columns()
	values, err := Assemble(tables, columns)
	if err != nil {
		return nil, err
	}

	return &Output{
		Types:           BuildTypesSheet(columns),
		Values:          values,
		SheetsProcessed: len(sheets),
		SheetsSkipped:   skipped,
	}, nil
}

// IncludedSheets returns names minus the excluded ones, order preserved.
func IncludedSheets(names, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	var out []string
	for _, n := range names {
		if !skip[n] {
			out = append(out, n)
		}
	}
	return out
}

// Save writes the Types sheet then the Values sheet to outputFile.
func (o *Output) Save(outputFile string) error {
	return workbook.WriteSheets(outputFile, o.Types, o.Values)
}

// MergeFiles opens both workbooks, runs the merge and saves the result.
func MergeFiles(sizeChartPath, productDetailsPath, outputFile string, opts Options) (*types.ImportResult, error) {
	sizeChart, err := workbook.Open(sizeChartPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Size chart file", Err: err}
	}
	defer sizeChart.Close()

	productDetails, err := workbook.Open(productDetailsPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Product details file", Err: err}
	}
	defer productDetails.Close()

	out, err := Run(sizeChart, productDetails, opts)
	if err != nil {
		return nil, err
	}

	if err := out.Save(outputFile); err != nil {
		return nil, err
	}

	return &types.ImportResult{
		OutputFile:      outputFile,
		RowsProcessed:   len(out.Values.Rows),
		ColumnsCount:    len(out.Values.Columns),
		SheetsProcessed: out.SheetsProcessed,
		SheetsSkipped:   out.SheetsSkipped,
	}, nil
}
