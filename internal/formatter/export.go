// Package formatter holds the single-table operations that run around an
// import: reshaping an edited Values sheet to a template, pulling out rows
// that still need work, and folding a reviewed sample back in.
package formatter

import (
	"errors"
	"fmt"

	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// OutputSheet names the sheet of single-sheet results.
const OutputSheet = "Sheet1"

// Reindex returns input rearranged to target's column order. Target columns
// the input lacks are filled with empty text. Input-only columns are dropped
// unless preserveExtras is set, in which case they follow the target columns.
func Reindex(input *types.Table, target []string, preserveExtras bool) *types.Table {
	columns := make([]string, 0, len(target))
	columns = append(columns, target...)

	if preserveExtras {
		inTarget := make(map[string]bool, len(target))
		for _, c := range target {
			inTarget[c] = true
		}
		for _, c := range input.Columns {
			if !inTarget[c] {
				columns = append(columns, c)
			}
		}
	}

	src := make([]int, len(columns))
	for i, c := range columns {
		src[i] = input.ColumnIndex(c)
	}

	out := types.NewTable(input.Name, columns)
	for _, row := range input.Rows {
		cells := make([]types.Cell, len(columns))
		for i, idx := range src {
			if idx < 0 {
				cells[i] = types.Text("")
				continue
			}
			cells[i] = row[idx]
		}
		out.AppendRow(cells)
	}
	return out
}

// Export reads the first sheet of inputPath, reindexes it to the columns of
// templatePath's first sheet and writes the result to outputFile.
func Export(inputPath, templatePath, outputFile string, preserveExtras bool) (*types.ExportResult, error) {
	template, err := workbook.ReadFirstSheet(templatePath)
	if err != nil {
		return nil, &types.ValidationError{File: "Template file", Err: err}
	}
	if len(template.Columns) == 0 {
		return nil, errors.New("template file has no columns to match against")
	}

	input, err := workbook.ReadFirstSheet(inputPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Input file", Err: err}
	}
	if len(input.Columns) == 0 {
		return nil, errors.New("input file has no columns to process")
	}

	out := Reindex(input, template.Columns, preserveExtras)
	out.Name = OutputSheet

	if err := workbook.WriteSheets(outputFile, out); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	added := 0
	for _, c := range out.Columns {
		if !input.HasColumn(c) {
			added++
		}
	}

	return &types.ExportResult{
		OutputFile:      outputFile,
		RowsProcessed:   len(out.Rows),
		ColumnsInInput:  len(input.Columns),
		ColumnsInOutput: len(out.Columns),
		ColumnsAdded:    added,
	}, nil
}
