package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/castmerge/internal/types"

	"github.com/xuri/excelize/v2"
)

// WriteSheets writes each table as one sheet, named after the table, in the
// given order. Each sheet starts with the table's columns as its header row.
// A failed write leaves outputFile as it was.
func WriteSheets(outputFile string, tables ...*types.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", t.Name, err)
		}

		if err := writeTable(f, t); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := save(f, outputFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFile, err)
	}

	return nil
}

// save writes f next to outputFile and renames it into place, so an earlier
// file at outputFile survives a failed write.
func save(f *excelize.File, outputFile string) error {
	tmp, err := os.CreateTemp(filepath.Dir(outputFile), ".castmerge-*.xlsx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), outputFile)
}

func writeTable(f *excelize.File, t *types.Table) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return fmt.Errorf("failed to create stream writer for %s: %w", t.Name, err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", t.Name, err)
	}

	for r, row := range t.Rows {
		values := make([]interface{}, len(row))
		for i, c := range row {
			// blank cells stay unset so readers see them as empty
			if c.String() != "" {
				values[i] = c.Value
			}
		}

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, t.Name, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", t.Name, err)
	}

	return nil
}
