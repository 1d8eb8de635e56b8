package formatter

import (
	"fmt"

	"github.com/nconklindev/castmerge/internal/types"
	"github.com/nconklindev/castmerge/internal/workbook"
)

// Overwrite copies sample values into main for every key present in both.
// Only columns the two tables share are touched; main-only rows stay as they
// are and sample-only rows are dropped. A key repeated in sample takes its
// last row. It returns the merged copy and the number of distinct keys
// updated.
func Overwrite(main, sample *types.Table, keyColumn string) (*types.Table, int, error) {
	mainKey := main.ColumnIndex(keyColumn)
	if mainKey < 0 {
		return nil, 0, &types.MissingColumnError{Where: "Output file", Column: keyColumn}
	}
	sampleKey := sample.ColumnIndex(keyColumn)
	if sampleKey < 0 {
		return nil, 0, &types.MissingColumnError{Where: "Sample file", Column: keyColumn}
	}

	// pairs of (main index, sample index) for shared non-key columns
	var shared [][2]int
	for i, c := range main.Columns {
		if i == mainKey {
			continue
		}
		if j := sample.ColumnIndex(c); j >= 0 {
			shared = append(shared, [2]int{i, j})
		}
	}

	updates := make(map[string][]types.Cell)
	for _, row := range sample.Rows {
		if key := row[sampleKey]; key.Valid {
			updates[key.Value] = row
		}
	}

	out := main.Clone()
	updated := make(map[string]bool)
	for _, row := range out.Rows {
		key := row[mainKey]
		if !key.Valid {
			continue
		}
		src, ok := updates[key.Value]
		if !ok {
			continue
		}
		for _, p := range shared {
			row[p[0]] = src[p[1]]
		}
		updated[key.Value] = true
	}

	return out, len(updated), nil
}

// MergeSample overwrites the rows of outputPath's first sheet with the rows
// of samplePath that share a key and writes the result to resultFile.
func MergeSample(outputPath, samplePath, resultFile, keyColumn string) (*types.SampleResult, error) {
	main, err := workbook.ReadFirstSheet(outputPath)
	if err != nil {
		return nil, &types.ValidationError{File: "Output file", Err: err}
	}
	sample, err := workbook.ReadFirstSheet(samplePath)
	if err != nil {
		return nil, &types.ValidationError{File: "Sample file", Err: err}
	}

	merged, updated, err := Overwrite(main, sample, keyColumn)
	if err != nil {
		return nil, err
	}
	merged.Name = OutputSheet

	if err := workbook.WriteSheets(resultFile, merged); err != nil {
		return nil, fmt.Errorf("failed to write merged sample: %w", err)
	}

	return &types.SampleResult{
		OutputFile:  resultFile,
		RowsUpdated: updated,
		TotalRows:   len(merged.Rows),
	}, nil
}
