package merge

import "github.com/nconklindev/castmerge/internal/types"

// ValuesSheet is the name of the merged record sheet.
const ValuesSheet = "Values"

// Assemble stacks the per-sheet tables into one table whose columns are
// exactly columns, in that order. Cells a sheet did not have, or had absent,
// become empty text.
func Assemble(tables []*types.Table, columns []string) (*types.Table, error) {
	if len(tables) == 0 {
		return nil, types.ErrNoValidData
	}

	out := types.NewTable(ValuesSheet, columns)
	for _, t := range tables {
		source := make([]int, len(columns))
		for i, c := range columns {
			source[i] = t.ColumnIndex(c)
		}

		for _, row := range t.Rows {
			cells := make([]types.Cell, len(columns))
			for i, idx := range source {
				if idx >= 0 && row[idx].Valid {
					cells[i] = row[idx]
				} else {
					cells[i] = types.Text("")
				}
			}
			out.AppendRow(cells)
		}
	}

	if len(out.Rows) == 0 {
		return nil, types.ErrEmptyResult
	}
	return out, nil
}
