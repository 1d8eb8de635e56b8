package formatter

import (
	"fmt"
	"strings"

	"github.com/nconklindev/castmerge/internal/merge"
	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// MissingKeys returns the keys of rows whose flag cell is absent or blank
// after trimming, in first-seen order. Rows without a key are ignored.
func MissingKeys(output *types.Table, flagColumn, keyColumn string) ([]string, error) {
	flagIdx := output.ColumnIndex(flagColumn)
	if flagIdx < 0 {
		return nil, &types.MissingColumnError{Where: "Output file", Column: flagColumn}
	}
	keyIdx := output.ColumnIndex(keyColumn)
	if keyIdx < 0 {
		return nil, &types.MissingColumnError{Where: "Output file", Column: keyColumn}
	}

	seen := make(map[string]bool)
	var keys []string
	for _, row := range output.Rows {
		if strings.TrimSpace(row[flagIdx].String()) != "" {
			continue
		}
		key := row[keyIdx]
		if !key.Valid || seen[key.Value] {
			continue
		}
		seen[key.Value] = true
		keys = append(keys, key.Value)
	}
	return keys, nil
}

// SelectRows returns the rows of values whose key is in keys, order kept.
func SelectRows(values *types.Table, keyColumn string, keys []string) (*types.Table, error) {
	keyIdx := values.ColumnIndex(keyColumn)
	if keyIdx < 0 {
		return nil, &types.MissingColumnError{Where: "Values sheet", Column: keyColumn}
	}

	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	out := types.NewTable(values.Name, values.Columns)
	for _, row := range values.Rows {
		if key := row[keyIdx]; key.Valid && wanted[key.Value] {
			out.AppendRow(row)
		}
	}
	return out, nil
}

// ExtractMissing finds the keys flagged as missing in outputPath's first
// sheet and writes inputPath's Types sheet with the matching Values rows to
// resultFile. Nothing is written when no key is missing.
func ExtractMissing(inputPath, outputPath, resultFile, keyColumn, flagColumn string) (*types.ExtractResult, error) {
	output, err := workbook.ReadFirstSheet(outputPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Output file", Err: err}
	}

	keys, err := MissingKeys(output, flagColumn, keyColumn)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return &types.ExtractResult{OutputFile: resultFile}, nil
	}

	input, err := workbook.Open(inputPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Input file", Err: err}
	}
	defer input.Close()

	values, err := readRequiredSheet(input, merge.ValuesSheet)
	if err != nil {
		return nil, err
	}
	typesSheet, err := readRequiredSheet(input, merge.TypesSheet)
	if err != nil {
		return nil, err
	}

	filtered, err := SelectRows(values, keyColumn, keys)
	if err != nil {
		return nil, err
	}

	if err := workbook.WriteSheets(resultFile, typesSheet, filtered); err != nil {
		return nil, fmt.Errorf("failed to write extracted rows: %w", err)
	}

	return &types.ExtractResult{
		OutputFile:    resultFile,
		RowsExtracted: len(filtered.Rows),
		TypesRows:     len(typesSheet.Rows),
		MissingCount:  len(keys),
	}, nil
}

func readRequiredSheet(wb *workbook.Workbook, name string) (*types.Table, error) {
	if !wb.HasSheet(name) {
		return nil, fmt.Errorf("%w: input file must contain a '%s' sheet", types.ErrMissingSheet, name)
	}
	return wb.ReadSheet(name)
}
