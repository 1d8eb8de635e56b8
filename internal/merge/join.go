package merge

import "github.com/nconklindev/castmerge/internal/types"

// outerJoin joins left and right on key, keeping rows found on only one side.
// The result has left's columns followed by right's remaining columns. When
// both sides carry the same column, left's value is kept and right's fills
// it only where left is absent. Right is expected to hold each key once;
// later duplicates are ignored.
func outerJoin(left, right *types.Table, key string) *types.Table {
	columns := append([]string(nil), left.Columns...)
	rightTo := make([]int, len(right.Columns))
	for i, c := range right.Columns {
		idx := indexOf(columns, c)
		if idx < 0 {
			columns = append(columns, c)
			idx = len(columns) - 1
		}
		rightTo[i] = idx
	}

	out := types.NewTable(left.Name, columns)

	rightKey := right.ColumnIndex(key)
	byKey := make(map[string]int)
	for r, row := range right.Rows {
		if k := row[rightKey]; k.Valid {
			if _, dup := byKey[k.Value]; !dup {
				byKey[k.Value] = r
			}
		}
	}

	leftKey := left.ColumnIndex(key)
	matched := make(map[int]bool)
	for _, row := range left.Rows {
		cells := make([]types.Cell, len(columns))
		copy(cells, row)

		if k := row[leftKey]; k.Valid {
			if r, ok := byKey[k.Value]; ok {
				matched[r] = true
				fill(cells, right.Rows[r], rightTo)
			}
		}
		out.AppendRow(cells)
	}

	for r, row := range right.Rows {
		if matched[r] {
			continue
		}
		if k := row[rightKey]; k.Valid && byKey[k.Value] != r {
			continue
		}
		cells := make([]types.Cell, len(columns))
		fill(cells, row, rightTo)
		out.AppendRow(cells)
	}

	return out
}

func fill(dst, src []types.Cell, to []int) {
	for i, c := range src {
		if !dst[to[i]].Valid {
			dst[to[i]] = c
		}
	}
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
