package types

// Cell is one text value of a table. An absent cell (Valid == false) means no
// value was ever produced, which is different from a value that is blank.
type Cell struct {
	Value string
	Valid bool
}

// Absent is the cell used wherever a table has no value.
var Absent = Cell{}

// Text wraps s as a present cell.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// String returns the cell value, or "" for an absent cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Table is a named, ordered list of columns and rows. Every row has exactly
// len(Columns) cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// Empty reports whether the table has no rows or no columns.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0 || len(t.Columns) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Cell returns the value at row r of the named column, or Absent.
func (t *Table) Cell(r int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 || r < 0 || r >= len(t.Rows) {
		return Absent
	}
	return t.Rows[r][idx]
}

// Values returns a copy of the named column's cells.
func (t *Table) Values(column string) []Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// WithColumn returns a copy of the table in which the named column holds
// values. The column is replaced if present, otherwise appended.
func (t *Table) WithColumn(name string, values []Cell) *Table {
	out := t.Clone()
	idx := out.ColumnIndex(name)
	if idx < 0 {
		out.Columns = append(out.Columns, name)
		idx = len(out.Columns) - 1
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], Absent)
		}
	}
	for i := range out.Rows {
		if i < len(values) {
			out.Rows[i][idx] = values[i]
		} else {
			out.Rows[i][idx] = Absent
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Name, t.Columns)
	out.Rows = make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]Cell, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// Strings returns the rows as plain text, absent cells rendered empty.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		for j, c := range row {
			r[j] = c.String()
		}
		out[i] = r
	}
	return out
}

// ImportResult describes a finished size chart / product details merge.
type ImportResult struct {
	OutputFile      string   `json:"output_file,omitempty"`
	RowsProcessed   int      `json:"rows_processed"`
	ColumnsCount    int      `json:"columns_count"`
	SheetsProcessed int      `json:"sheets_processed"`
	SheetsSkipped   []string `json:"sheets_skipped,omitempty"`
}

// ExportResult describes a template reindex.
type ExportResult struct {
	OutputFile      string `json:"output_file,omitempty"`
	RowsProcessed   int    `json:"rows_processed"`
	ColumnsInInput  int    `json:"columns_in_input"`
	ColumnsInOutput int    `json:"columns_in_output"`
	ColumnsAdded    int    `json:"columns_added"`
}

// ExtractResult describes a missing-flag extraction.
type ExtractResult struct {
	OutputFile    string `json:"output_file,omitempty"`
	RowsExtracted int    `json:"rows_extracted"`
	TypesRows     int    `json:"types_rows"`
	MissingCount  int    `json:"missing_count"`
}

// SampleResult describes a sample overwrite.
type SampleResult struct {
	OutputFile  string `json:"output_file,omitempty"`
	RowsUpdated int    `json:"rows_updated"`
	TotalRows   int    `json:"total_rows"`
}
