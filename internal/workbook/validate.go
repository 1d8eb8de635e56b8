package workbook

import (
	"errors"
	"fmt"
	"os"

	"github.com/nconklindev/castmerge/internal/types"
)

// Validate checks that a source workbook can be merged: it opens, has at
// least one sheet, its first sheet has columns, and it is not a lone empty
// sheet.
func Validate(filePath, label string) error {
	return validate(filePath, label, rowsUnlessSingleSheet)
}

// ValidateData is Validate for single-sheet operations, where the first sheet
// must also hold at least one data row.
func ValidateData(filePath, label string) error {
	return validate(filePath, label, rowsRequired)
}

// ValidateColumns checks only that the first sheet has a header row. A
// template needs its column list, not its data.
func ValidateColumns(filePath, label string) error {
	return validate(filePath, label, rowsOptional)
}

type rowPolicy int

const (
	rowsUnlessSingleSheet rowPolicy = iota
	rowsRequired
	rowsOptional
)

func validate(filePath, label string, rows rowPolicy) error {
	if _, err := os.Stat(filePath); err != nil {
		return err
	}

	wb, err := Open(filePath)
	if err != nil {
		if errors.Is(err, types.ErrUnsupportedFile) {
			return &types.ValidationError{File: label, Err: err}
		}
		return &types.ValidationError{File: label, Err: fmt.Errorf("error reading file: %w", err)}
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) == 0 {
		return &types.ValidationError{File: label, Err: types.ErrNoSheets}
	}

	first, err := wb.ReadSheet(names[0])
	if err != nil {
		return &types.ValidationError{File: label, Err: fmt.Errorf("error reading file: %w", err)}
	}

	if len(first.Columns) == 0 {
		return &types.ValidationError{File: label, Err: types.ErrNoColumns}
	}
	if len(first.Rows) > 0 || rows == rowsOptional {
		return nil
	}
	if rows == rowsRequired || len(names) == 1 {
		return &types.ValidationError{File: label, Err: types.ErrNoData}
	}

	return nil
}
