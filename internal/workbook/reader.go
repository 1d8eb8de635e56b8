package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/castmerge/internal/types"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over an xlsx file or a single csv file.
// Sheets are parsed on demand and every cell is loaded as text.
type Workbook struct {
	Path   string
	file   *excelize.File
	sheets []string
	tables map[string]*types.Table
}

// Open opens an .xlsx or .csv file. A csv file exposes one sheet named after
// the file.
func Open(filePath string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv":
		return openCSV(filePath)
	case ".xlsx", ".xlsm", ".xls":
		return openXLSX(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFile, ext)
	}
}

func openXLSX(filePath string) (*Workbook, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open excel file: %w", err)
	}

	return &Workbook{
		Path:   filePath,
		file:   f,
		sheets: f.GetSheetList(),
		tables: make(map[string]*types.Table),
	}, nil
}

func openCSV(filePath string) (*Workbook, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return &Workbook{
		Path:   filePath,
		sheets: []string{name},
		tables: map[string]*types.Table{name: TableFromRows(name, records)},
	}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// HasSheet reports whether a sheet with exactly this name exists.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// ReadSheet parses the named sheet. The returned table is shared between
// calls and must not be mutated.
func (w *Workbook) ReadSheet(name string) (*types.Table, error) {
	if t, ok := w.tables[name]; ok {
		return t, nil
	}
	if !w.HasSheet(name) || w.file == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrMissingSheet, name)
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	t := TableFromRows(name, rows)
	w.tables[name] = t
	return t, nil
}

// ReadFirstSheet parses the first sheet of the workbook.
func (w *Workbook) ReadFirstSheet() (*types.Table, error) {
	if len(w.sheets) == 0 {
		return nil, types.ErrNoSheets
	}
	return w.ReadSheet(w.sheets[0])
}

// ReadFirstSheet opens filePath and returns its first sheet.
func ReadFirstSheet(filePath string) (*types.Table, error) {
	wb, err := Open(filePath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return wb.ReadFirstSheet()
}

// TableFromRows builds a table from raw rows. The first non-blank row is the
// header; blank header cells become "Unnamed: <index>" and repeated names get
// ".1", ".2" suffixes. Blank data cells are absent and trailing blank rows are
// dropped.
func TableFromRows(name string, rows [][]string) *types.Table {
	for len(rows) > 0 && lastNonEmpty(rows[0]) < 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return types.NewTable(name, nil)
	}

	width := 0
	for _, row := range rows {
		if n := lastNonEmpty(row) + 1; n > width {
			width = n
		}
	}

	header := make([]string, width)
	for i := range header {
		if i < len(rows[0]) {
			header[i] = rows[0][i]
		}
	}

	t := types.NewTable(name, uniqueHeaders(header))

	data := rows[1:]
	last := len(data) - 1
	for last >= 0 && lastNonEmpty(data[last]) < 0 {
		last--
	}

	for _, row := range data[:last+1] {
		cells := make([]types.Cell, width)
		for i := 0; i < width && i < len(row); i++ {
			if row[i] != "" {
				cells[i] = types.Text(row[i])
			}
		}
		t.AppendRow(cells)
	}

	return t
}

func uniqueHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool)
	counts := make(map[string]int)
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = h + "." + strconv.Itoa(counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// lastNonEmpty returns the index of the last non-blank cell, or -1.
func lastNonEmpty(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if strings.TrimSpace(row[i]) != "" {
			return i
		}
	}
	return -1
}
