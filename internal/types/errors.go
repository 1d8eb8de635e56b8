package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSheets           = errors.New("workbook has no sheets")
	ErrNoColumns          = errors.New("sheet has no columns")
	ErrNoData             = errors.New("sheet contains no data")
	ErrNoValidSheets      = errors.New("no valid sheets found in size chart after exclusions")
	ErrNoValidData        = errors.New("no valid data found in any sheet, check that files contain style ID columns")
	ErrEmptyResult        = errors.New("no data produced after merging, check input file formats")
	ErrIdentifierNotFound = errors.New("style ID column not found")
	ErrMissingColumn      = errors.New("required column missing")
	ErrMissingSheet       = errors.New("required sheet missing")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrUnsupportedFile    = errors.New("unsupported file type")
)

// ValidationError reports an unreadable or structurally empty source file.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IdentifierError reports a size chart sheet without a recognizable style ID
// column. Columns holds what was found so the user can rename the right one.
type IdentifierError struct {
	Sheet   string
	Columns []string
}

// maxReportedColumns bounds the column sample in IdentifierError messages.
const maxReportedColumns = 5

func (e *IdentifierError) Error() string {
	shown := e.Columns
	if len(shown) > maxReportedColumns {
		shown = shown[:maxReportedColumns]
	}
	list := strings.Join(shown, ", ")
	if len(e.Columns) > maxReportedColumns {
		list += ", ..."
	}
	return fmt.Sprintf("could not find style ID column in '%s'. Expected column like 'style_id', 'SKU', or 'styleId'. "+
		"Found: [%s]. Rename your identifier column to match one of these patterns", e.Sheet, list)
}

func (e *IdentifierError) Unwrap() error {
	return ErrIdentifierNotFound
}

// MissingColumnError names a column an operation requires but did not find.
type MissingColumnError struct {
	Where  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s must contain '%s' column", e.Where, e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}
