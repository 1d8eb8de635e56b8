package merge

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/nconklindev/castmerge/internal/types"
)

// table builds a test table; empty strings become absent cells.
func table(name string, columns []string, rows ...[]string) *types.Table {
	t := types.NewTable(name, columns)
	for _, r := range rows {
		cells := make([]types.Cell, len(r))
		for i, v := range r {
			if v != "" {
				cells[i] = types.Text(v)
			}
		}
		t.AppendRow(cells)
	}
	return t
}

// memWorkbook is an in-memory Source.
type memWorkbook struct {
	names  []string
	sheets map[string]*types.Table
}

func newMemWorkbook(tables ...*types.Table) *memWorkbook {
	wb := &memWorkbook{sheets: make(map[string]*types.Table)}
	for _, t := range tables {
		wb.names = append(wb.names, t.Name)
		wb.sheets[t.Name] = t
	}
	return wb
}

func (m *memWorkbook) SheetNames() []string { return m.names }

func (m *memWorkbook) HasSheet(name string) bool {
	_, ok := m.sheets[name]
	return ok
}

func (m *memWorkbook) ReadSheet(name string) (*types.Table, error) {
	t, ok := m.sheets[name]
	if !ok {
		return nil, fmt.Errorf("no sheet %s", name)
	}
	return t, nil
}

// rowByID finds the row whose idColumn cell equals id.
func rowByID(t *testing.T, tbl *types.Table, idColumn, id string) map[string]types.Cell {
	t.Helper()
	idx := tbl.ColumnIndex(idColumn)
	if idx < 0 {
		t.Fatalf("column %q not in %v", idColumn, tbl.Columns)
	}
	for _, row := range tbl.Rows {
		if row[idx].Valid && row[idx].Value == id {
			out := make(map[string]types.Cell, len(row))
			for i, c := range row {
				out[tbl.Columns[i]] = c
			}
			return out
		}
	}
	t.Fatalf("no row with %s=%s", idColumn, id)
	return nil
}

func assertColumns(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("columns = %q; want %q", got, want)
	}
}
